package ml

import "sync/atomic"

// Registry owns the currently active model snapshot. Reads are lock-free;
// retraining swaps in a new immutable Model atomically, so in-flight
// predictions keep using the snapshot they loaded.
type Registry struct {
	current atomic.Pointer[Model]
}

// NewRegistry creates an empty registry with no active model.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load returns the active model, or nil when none has been validated yet.
func (r *Registry) Load() *Model {
	return r.current.Load()
}

// Swap installs a new validated model. Passing nil clears the registry.
func (r *Registry) Swap(m *Model) {
	r.current.Store(m)
}
