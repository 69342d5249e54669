package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
)

// Registry holds the registered format drivers and implements the discovery
// contract with the surrounding file-recognition layer: format lookup by id
// and autoload matching by filename.
type Registry struct {
	logger  interfaces.Logger
	entries []*registryEntry
	byID    map[string]*registryEntry
}

type registryEntry struct {
	driver      Driver
	globs       []glob.Glob
	unavailable error
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger attaches a logger to registration and lookups.
func WithRegistryLogger(logger interfaces.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger: logging.NoOp(),
		byID:   map[string]*registryEntry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates the driver descriptor, compiles its autoload patterns
// and runs its capability probe once. A failed probe keeps the format listed
// but marks it unavailable: Get surfaces ErrFormatUnavailable with the probe
// reason instead of a deep failure at first use.
func (r *Registry) Register(d Driver) error {
	if d == nil {
		return fmt.Errorf("convert: cannot register nil driver")
	}
	info := d.Info()
	if err := info.Validate(); err != nil {
		return fmt.Errorf("convert: invalid descriptor for %q: %w", info.ID, err)
	}
	if _, exists := r.byID[info.ID]; exists {
		return fmt.Errorf("convert: format %q already registered", info.ID)
	}

	entry := &registryEntry{driver: d}
	for _, pattern := range info.Autoload {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return fmt.Errorf("convert: bad autoload pattern %q for %q: %w", pattern, info.ID, err)
		}
		entry.globs = append(entry.globs, g)
	}

	if info.Probe != nil {
		if err := info.Probe(); err != nil {
			entry.unavailable = err
			r.logger.Warn("convert.format.unavailable", "format", info.ID, "reason", err)
		}
	}

	r.entries = append(r.entries, entry)
	r.byID[info.ID] = entry
	r.logger.Debug("convert.format.registered", "format", info.ID, "available", entry.unavailable == nil)
	return nil
}

// Get returns the driver registered under id.
func (r *Registry) Get(id string) (Driver, error) {
	entry, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	if entry.unavailable != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFormatUnavailable, id, entry.unavailable)
	}
	return entry.driver, nil
}

// Detect matches filename against every available format's autoload patterns
// in registration order and returns the first match.
func (r *Registry) Detect(filename string) (Driver, bool) {
	name := strings.ToLower(filepath.Base(filename))
	for _, entry := range r.entries {
		if entry.unavailable != nil {
			continue
		}
		for _, g := range entry.globs {
			if g.Match(name) {
				return entry.driver, true
			}
		}
	}
	return nil, false
}

// Formats lists every registered descriptor, including unavailable ones.
func (r *Registry) Formats() []Info {
	infos := make([]Info, 0, len(r.entries))
	for _, entry := range r.entries {
		infos = append(infos, entry.driver.Info())
	}
	return infos
}
