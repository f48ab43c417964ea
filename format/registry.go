package format

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds registered formats.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Exporter
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Exporter),
	}
}

// Register adds a format to the registry.
func (r *Registry) Register(f Exporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[strings.ToLower(f.Name())] = f
}

// Get retrieves a format by code, case-insensitively.
func (r *Registry) Get(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// List returns all registered format codes, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds a format to the default registry.
func Register(f Exporter) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Exporter, error) {
	return DefaultRegistry.Get(name)
}

// List returns the codes registered in the default registry.
func List() []string {
	return DefaultRegistry.List()
}
