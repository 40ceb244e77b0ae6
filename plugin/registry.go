package plugin

import (
	"fmt"
	"sync"

	"github.com/c360/healthdcat/errors"
)

// Registry manages the available pipeline stages by name. It is populated
// once at process start by a trusted bootstrap routine and is read-only
// afterward, so concurrent conversions can resolve stages without
// coordination beyond the internal read lock.
//
// Duplicate names are rejected: re-registering a name fails with
// ErrDuplicateName rather than silently replacing the earlier plugin.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin under its own name. Registration mutates
// process-wide state; there is no removal operation.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return errors.WrapInvalid(errors.ErrInvalidPlugin, "Registry", "Register", "plugin validation")
	}
	name := p.Name()
	if name == "" {
		return errors.WrapInvalid(errors.ErrInvalidPlugin, "Registry", "Register", "plugin name validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrDuplicateName, name),
			"Registry", "Register", "duplicate name check")
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.plugins[name]
	if !exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrUnknownPlugin, name),
			"Registry", "Get", "plugin lookup")
	}
	return p, nil
}

// List returns plugin names in registration order. The listing is for
// discovery and diagnostics only; pipeline execution order is always supplied
// explicitly by the caller.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}
