package validator

// Registry maps rule keys to rules and keeps registration order, which is
// also evaluation order.
type Registry struct {
	rules map[string]Reporter
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Reporter)}
}

// Register adds a rule to the registry. Registering a key twice replaces the
// earlier rule in place.
func (r *Registry) Register(rule Reporter) {
	key := rule.RuleKey()
	if _, exists := r.rules[key]; !exists {
		r.order = append(r.order, key)
	}
	r.rules[key] = rule
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Reporter {
	return r.rules[key]
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Reporter {
	out := make([]Reporter, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.rules[key])
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.order)
}
