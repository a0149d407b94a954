package validator

import (
	"fmt"
	"log/slog"
	"sync"

	"salaryengine/internal/domain"
)

// Pipeline runs field validation for one editing session. It owns the field
// state machine, the result cache and the debouncer. The error set of a field
// is always replaced as a whole.
//
// Every request takes a sequence number when it is issued. A field result is
// recorded only if no newer request has already recorded that field, so a
// debounced run over an older snapshot never overwrites a newer outcome.
type Pipeline struct {
	checker   *Checker
	cache     *Cache
	debouncer *Debouncer

	mu     sync.Mutex
	seq    uint64
	stamps map[domain.Field]uint64
	states map[domain.Field]domain.FieldState
	errs   map[domain.Field]domain.ValidationError
}

// NewPipeline creates a pipeline. A nil cache disables caching.
func NewPipeline(checker *Checker, cache *Cache, debouncer *Debouncer) *Pipeline {
	if debouncer == nil {
		debouncer = NewDebouncer(DefaultDebounce)
	}
	return &Pipeline{
		checker:   checker,
		cache:     cache,
		debouncer: debouncer,
		stamps:    make(map[domain.Field]uint64),
		states:    make(map[domain.Field]domain.FieldState),
		errs:      make(map[domain.Field]domain.ValidationError),
	}
}

// ValidateField validates field against form and re-evaluates every dependent
// field that is already touched. Synthetic fields are always re-evaluated so
// that a rate-sum violation surfaces as soon as either rate changes. A pending
// debounced request for field is dropped.
func (p *Pipeline) ValidateField(field domain.Field, form domain.FormValues, trigger domain.ValidationTrigger) (*domain.ValidationError, error) {
	if !p.checker.Knows(field) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	p.debouncer.Cancel(string(field))

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validate(field, form, trigger, p.next()), nil
}

// ValidateFieldDebounced schedules validation of field on a copy of form. Only
// the latest request per field within the debounce window runs; cb, when set,
// receives the field's outcome once it has run.
func (p *Pipeline) ValidateFieldDebounced(field domain.Field, form domain.FormValues, trigger domain.ValidationTrigger, cb func(*domain.ValidationError, error)) error {
	if !p.checker.Knows(field) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	snapshot := form.Clone()

	p.mu.Lock()
	seq := p.next()
	p.mu.Unlock()

	p.debouncer.Schedule(string(field), func() {
		p.mu.Lock()
		res := p.validate(field, snapshot, trigger, seq)
		p.mu.Unlock()
		if cb != nil {
			cb(res, nil)
		}
	})
	return nil
}

// ValidateAll revalidates every field without the cache, replaces the whole
// error set and marks every field as touched. Pending debounced validations
// are dropped since they ran against older values.
func (p *Pipeline) ValidateAll(form domain.FormValues) map[domain.Field]domain.ValidationError {
	p.debouncer.CancelAll()

	p.mu.Lock()
	defer p.mu.Unlock()

	seq := p.next()
	all := p.checker.CheckAll(form)
	p.errs = make(map[domain.Field]domain.ValidationError, len(all))
	for _, f := range p.checker.Fields() {
		p.stamps[f] = seq
		if e, ok := all[f]; ok {
			p.errs[f] = e
			p.states[f] = domain.FieldStateInvalid
		} else {
			p.states[f] = domain.FieldStateValid
		}
	}

	slog.Debug("validator.Pipeline: form validated", "errors", len(all))
	return copyErrors(all)
}

// Errors returns a copy of the current error set.
func (p *Pipeline) Errors() map[domain.Field]domain.ValidationError {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyErrors(p.errs)
}

// State returns the state of field.
func (p *Pipeline) State(field domain.Field) domain.FieldState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state(field)
}

// States returns the state of every known field.
func (p *Pipeline) States() map[domain.Field]domain.FieldState {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[domain.Field]domain.FieldState, len(p.checker.Fields()))
	for _, f := range p.checker.Fields() {
		out[f] = p.state(f)
	}
	return out
}

// Flush runs pending debounced validations now.
func (p *Pipeline) Flush() {
	p.debouncer.Flush()
}

// Pending returns the number of debounced validations waiting to run.
func (p *Pipeline) Pending() int {
	return p.debouncer.Pending()
}

// CacheStats reports cache usage. It is zero when caching is disabled.
func (p *Pipeline) CacheStats() CacheStats {
	if p.cache == nil {
		return CacheStats{}
	}
	return p.cache.Stats()
}

// Close stops the debouncer and empties the cache. Pending validations are
// discarded.
func (p *Pipeline) Close() {
	p.debouncer.Stop()
	if p.cache != nil {
		p.cache.Clear()
	}
}

func (p *Pipeline) next() uint64 {
	p.seq++
	return p.seq
}

// validate runs one request issued at seq. The caller holds p.mu.
func (p *Pipeline) validate(field domain.Field, form domain.FormValues, trigger domain.ValidationTrigger, seq uint64) *domain.ValidationError {
	if p.stamps[field] > seq {
		slog.Debug("validator.Pipeline: superseded request dropped", "field", field, "trigger", trigger)
		return p.current(field)
	}

	useCache := trigger != domain.TriggerSubmitted
	p.record(field, p.evaluate(field, form, useCache), seq)

	for _, dep := range p.checker.Dependents(field) {
		if p.state(dep) == domain.FieldStateUntouched && domain.IsInput(dep) {
			continue
		}
		p.record(dep, p.evaluate(dep, form, useCache), seq)
	}

	slog.Debug("validator.Pipeline: field validated",
		"field", field, "trigger", trigger, "state", p.states[field])
	return p.current(field)
}

func (p *Pipeline) evaluate(field domain.Field, form domain.FormValues, useCache bool) *domain.ValidationError {
	if p.cache == nil {
		return p.checker.CheckField(field, form)
	}
	key := p.checker.Key(field, form)
	if useCache {
		if res, ok := p.cache.Get(key); ok {
			return res
		}
	}
	res := p.checker.CheckField(field, form)
	p.cache.Set(key, res)
	return res
}

func (p *Pipeline) record(field domain.Field, result *domain.ValidationError, seq uint64) {
	if p.stamps[field] > seq {
		return
	}
	p.stamps[field] = seq
	if result == nil {
		delete(p.errs, field)
		p.states[field] = domain.FieldStateValid
		return
	}
	p.errs[field] = *result
	p.states[field] = domain.FieldStateInvalid
}

func (p *Pipeline) current(field domain.Field) *domain.ValidationError {
	e, ok := p.errs[field]
	if !ok {
		return nil
	}
	return &e
}

func (p *Pipeline) state(field domain.Field) domain.FieldState {
	if s, ok := p.states[field]; ok {
		return s
	}
	return domain.FieldStateUntouched
}

func copyErrors(in map[domain.Field]domain.ValidationError) map[domain.Field]domain.ValidationError {
	out := make(map[domain.Field]domain.ValidationError, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
