package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"salaryengine/internal/domain"
	"salaryengine/internal/validator"
)

// SessionState is a snapshot of an editing session returned to callers.
type SessionState struct {
	ID      uuid.UUID                               `json:"id"`
	Values  domain.FormValues                       `json:"values"`
	Fields  map[domain.Field]*validator.FieldStatus `json:"fields"`
	Pending int                                     `json:"pending"`
	Cache   validator.CacheStats                    `json:"cache"`
	Result  Evaluation                              `json:"result"`
	Updated time.Time                               `json:"updated_at"`
}

// SessionService manages stateful form editing sessions. Each session owns a
// validation pipeline, so field states and debouncing are tracked per session.
type SessionService interface {
	Open(ctx context.Context, initial domain.FormValues) (*SessionState, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionState, error)
	UpdateField(ctx context.Context, id uuid.UUID, field domain.Field, value string, trigger domain.ValidationTrigger) (*SessionState, error)
	Submit(ctx context.Context, id uuid.UUID) (*SessionState, error)
	Flush(ctx context.Context, id uuid.UUID) (*SessionState, error)
	Close(ctx context.Context, id uuid.UUID) error
	Count() int
}

type formSession struct {
	id       uuid.UUID
	pipeline *validator.Pipeline

	mu      sync.Mutex
	values  domain.FormValues
	updated time.Time
}

type sessionService struct {
	payroll PayrollService
	cfg     PipelineConfig
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*formSession
}

// NewSessionService creates a SessionService backed by an in-memory store.
func NewSessionService(payroll PayrollService, cfg PipelineConfig) SessionService {
	return &sessionService{
		payroll:  payroll,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*formSession),
	}
}

func (s *sessionService) Open(ctx context.Context, initial domain.FormValues) (*SessionState, error) {
	values := make(domain.FormValues, len(initial))
	for f, v := range initial {
		if err := values.Set(f, v); err != nil {
			return nil, err
		}
	}

	sess := &formSession{
		id:       uuid.New(),
		pipeline: s.payroll.NewPipeline(s.cfg),
		values:   values,
		updated:  s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	slog.Info("service.Session: opened", "session_id", sess.id, "fields", len(values))
	return s.snapshot(ctx, sess), nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*SessionState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sess), nil
}

// UpdateField stores value and validates according to trigger: a change is
// debounced, a blur is validated at once, a submit validates the whole form.
// Contributions are recomputed on every update.
func (s *sessionService) UpdateField(ctx context.Context, id uuid.UUID, field domain.Field, value string, trigger domain.ValidationTrigger) (*SessionState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if err := sess.values.Set(field, value); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.updated = s.now()
	form := sess.values.Clone()
	sess.mu.Unlock()

	switch trigger {
	case domain.TriggerChanged:
		if err := sess.pipeline.ValidateFieldDebounced(field, form, trigger, nil); err != nil {
			return nil, err
		}
	case domain.TriggerBlurred:
		if _, err := sess.pipeline.ValidateField(field, form, trigger); err != nil {
			return nil, err
		}
	case domain.TriggerSubmitted:
		sess.pipeline.ValidateAll(form)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTrigger, trigger)
	}
	return s.snapshot(ctx, sess), nil
}

func (s *sessionService) Submit(ctx context.Context, id uuid.UUID) (*SessionState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	form := sess.values.Clone()
	sess.mu.Unlock()

	errs := sess.pipeline.ValidateAll(form)
	slog.Info("service.Session: submitted", "session_id", id, "errors", len(errs))
	return s.snapshot(ctx, sess), nil
}

// Flush runs any debounced validations of the session now.
func (s *sessionService) Flush(ctx context.Context, id uuid.UUID) (*SessionState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.pipeline.Flush()
	return s.snapshot(ctx, sess), nil
}

func (s *sessionService) Close(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.pipeline.Close()
	slog.Info("service.Session: closed", "session_id", id)
	return nil
}

func (s *sessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *sessionService) lookup(id uuid.UUID) (*formSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) snapshot(ctx context.Context, sess *formSession) *SessionState {
	sess.mu.Lock()
	form := sess.values.Clone()
	updated := sess.updated
	sess.mu.Unlock()

	errs := sess.pipeline.Errors()
	return &SessionState{
		ID:      sess.id,
		Values:  form,
		Fields:  validator.ComputeFieldStatuses(sess.pipeline.States(), errs),
		Pending: sess.pipeline.Pending(),
		Cache:   sess.pipeline.CacheStats(),
		Result:  s.payroll.Evaluate(ctx, form, errs),
		Updated: updated,
	}
}
