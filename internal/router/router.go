package router

import (
	"github.com/gin-gonic/gin"

	"salaryengine/internal/handler"
	"salaryengine/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	payrollH *handler.PayrollHandler,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Stateless calculation and validation
	v1.GET("/rates", payrollH.Rates)
	v1.POST("/contributions", payrollH.Contributions)
	v1.POST("/analytics", payrollH.Analytics)
	v1.POST("/evaluate", payrollH.Evaluate)
	v1.POST("/validate", payrollH.ValidateAll)
	v1.POST("/validate/:field", payrollH.ValidateField)
	v1.POST("/register/export", payrollH.ExportRegister)

	// Form editing sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Open)
	sessions.GET("/:id", sessionH.Get)
	sessions.PUT("/:id/fields/:field", sessionH.UpdateField)
	sessions.POST("/:id/submit", sessionH.Submit)
	sessions.POST("/:id/flush", sessionH.Flush)
	sessions.DELETE("/:id", sessionH.Close)

	return r
}
