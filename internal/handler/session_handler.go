package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salaryengine/internal/domain"
	"salaryengine/internal/service"
)

// SessionHandler handles stateful form editing sessions.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Open handles POST /api/v1/sessions
// @Summary Open a form session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body FormRequest false "Initial form values"
// @Success 201 {object} APIResponse{data=service.SessionState}
// @Failure 400 {object} APIResponse "Unknown field"
// @Router /sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req FormRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	st, err := h.sessions.Open(c.Request.Context(), req.Values)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, st)
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get a form session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=service.SessionState}
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// UpdateField handles PUT /api/v1/sessions/:id/fields/:field
// A change trigger answers 202 while its validation is still pending.
// @Summary Update a field in a form session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param field path string true "Field name"
// @Param request body UpdateFieldRequest true "New value and trigger"
// @Success 200 {object} APIResponse{data=service.SessionState}
// @Success 202 {object} APIResponse{data=service.SessionState} "Validation pending"
// @Failure 400 {object} APIResponse "Unknown field or trigger"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/fields/{field} [put]
func (h *SessionHandler) UpdateField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	trigger, valid := domain.ParseTrigger(req.Trigger)
	if !valid {
		HandleError(c, domain.ErrInvalidTrigger)
		return
	}

	st, err := h.sessions.UpdateField(c.Request.Context(), id, domain.Field(c.Param("field")), req.Value, trigger)
	if err != nil {
		HandleError(c, err)
		return
	}
	if st.Pending > 0 {
		RespondAccepted(c, st)
		return
	}
	RespondOK(c, st)
}

// Submit handles POST /api/v1/sessions/:id/submit
// @Summary Validate every field of a form session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=service.SessionState}
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.sessions.Submit(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// Flush handles POST /api/v1/sessions/:id/flush
// @Summary Run pending validations of a form session now
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=service.SessionState}
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/flush [post]
func (h *SessionHandler) Flush(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.sessions.Flush(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// Close handles DELETE /api/v1/sessions/:id
// @Summary Close a form session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Close(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session closed"})
}

// sessionID parses the :id path parameter. On failure the error response is
// already written.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
