package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salaryengine/internal/config"
	"salaryengine/internal/handler"
	"salaryengine/internal/logger"
	"salaryengine/internal/ratesheet"
	"salaryengine/internal/router"
	"salaryengine/internal/service"
	"salaryengine/internal/validator/salary"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	rates, err := ratesheet.Resolve(&cfg.Rates)
	if err != nil {
		return fmt.Errorf("failed to load rate configuration: %w", err)
	}
	ceiling, err := cfg.Validation.Ceiling()
	if err != nil {
		return fmt.Errorf("invalid validation config: %w", err)
	}

	// Initialize services
	payrollSvc, err := service.NewPayrollService(rates, salary.Options{SalaryCeiling: ceiling})
	if err != nil {
		return err
	}
	sessionSvc := service.NewSessionService(payrollSvc, service.PipelineConfig{
		Debounce:  cfg.Validation.Debounce,
		CacheSize: cfg.Validation.CacheSize,
	})

	// Initialize handlers
	payrollH := handler.NewPayrollHandler(payrollSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	healthH := handler.NewHealthHandler(payrollSvc)

	// Setup router
	r := router.Setup(cfg.Server.AllowedOrigins, payrollH, sessionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server", "open_sessions", sessionSvc.Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
