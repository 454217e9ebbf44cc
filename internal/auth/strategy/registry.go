package strategy

import "fmt"

// Registry holds all configured strategies and allows lookup by name.
// It performs no auth logic itself.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies by name.
// Strategy names must be unique.
func NewRegistry(list ...Strategy) *Registry {
	m := make(map[string]Strategy)
	for _, s := range list {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}
}

// Get returns the strategy by name or an error if not registered.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown auth strategy: %s", name)
	}
	return s, nil
}
