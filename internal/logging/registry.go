// internal/logging/registry.go
package logging

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry caches configured loggers by name. The first Get for a name
// builds the logger; later calls return the same handle and ignore their
// config. Create one per application and Close it at shutdown.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	notices *zap.Logger
	metrics *Metrics
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithNoticeLogger sets the logger that receives "Last log repeated N
// times." notices. It defaults to bare messages on stderr.
func WithNoticeLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.notices = l
	}
}

// WithMetrics records logger activity in m.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{loggers: make(map[string]*Logger)}
	for _, opt := range opts {
		opt(r)
	}
	if r.notices == nil {
		r.notices = NewNoticeLogger(os.Stderr)
	}
	return r
}

// Get returns the logger registered under name, building it from cfg on
// first use. A nil cfg means NewDefaultConfig. Nothing is cached when
// construction fails.
func (r *Registry) Get(name string, cfg *Config) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l, nil
	}
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	l, err := newLogger(name, cfg, r.notices, r.metrics)
	if err != nil {
		return nil, err
	}
	r.loggers[name] = l
	return l, nil
}

// Lookup returns a registered logger without creating one.
func (r *Registry) Lookup(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// Names returns registered logger names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close syncs and closes every registered logger and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for name, l := range r.loggers {
		err = multierr.Append(err, l.Close())
		delete(r.loggers, name)
	}
	return err
}
