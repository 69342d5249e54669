// Package convert adapts non-translation file formats (HTML, OpenDocument,
// IDML, Windows RC) into a uniform translation-unit representation and merges
// edited units back into a structurally faithful copy of the original file.
//
// Convert formats always use an intermediate representation: loading runs a
// full reconversion of the native file, and saving always merges against the
// original file as template. A store is never saved standalone from scratch.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
	"github.com/goliatone/go-convert/store"
)

// File binds a loaded unit store to its driver, destination path and template
// reference. No concurrent edits to the same File are modeled; concurrency
// control is delegated to the caller.
type File struct {
	driver   Driver
	store    *store.Store
	path     string
	template string
	logger   interfaces.Logger
}

// Option configures a File during Load.
type Option func(*File)

// WithTemplate sets the template file merged against at save time. Defaults
// to the loaded path when loading from the filesystem.
func WithTemplate(path string) Option {
	return func(f *File) {
		f.template = path
	}
}

// WithPath sets the destination path used by Save when it differs from the
// loaded source.
func WithPath(path string) Option {
	return func(f *File) {
		f.path = path
	}
}

// WithLogger attaches a logger to load/save operations.
func WithLogger(logger interfaces.Logger) Option {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Load opens path for binary read, runs the driver's converter and populates
// targets: every non-header unit gets target = source and rich target = rich
// source, so a fresh store is immediately "fully translated" as a baseline.
// Converter errors propagate as load failures; no partial store is returned.
func Load(d Driver, path string, opts ...Option) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("convert: open %q: %w", path, err)
	}
	defer src.Close()

	return LoadReader(d, path, src, append([]Option{WithTemplate(path), WithPath(path)}, opts...)...)
}

// LoadReader is Load for an already open byte stream. name is the originating
// filename used for location/context tagging; callers that intend to Save
// must supply WithTemplate and WithPath since a bare stream has neither.
func LoadReader(d Driver, name string, r io.Reader, opts ...Option) (*File, error) {
	if d == nil {
		return nil, errors.New("convert: driver cannot be nil")
	}
	if r == nil {
		return nil, errors.New("convert: source cannot be nil")
	}

	f := &File{driver: d, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(f)
	}

	s, err := d.Convert(name, r)
	if err != nil {
		return nil, err
	}

	for _, u := range s.Units() {
		if u.IsHeader() {
			continue
		}
		u.Target = u.Source
		u.RichTarget = u.RichSource
	}

	f.store = s
	f.logger.Debug("convert.load", "format", d.Info().ID, "source", name, "units", s.Len())
	return f, nil
}

// Store exposes the intermediate unit store for editing.
func (f *File) Store() *store.Store {
	return f.store
}

// Driver returns the format driver the file was loaded with.
func (f *File) Driver() Driver {
	return f.driver
}

// Template returns the template reference used at save time.
func (f *File) Template() string {
	return f.template
}

// Units returns adapters over the store's unit sequence, using the adapter
// variant the format descriptor selects.
func (f *File) Units() []UnitAdapter {
	info := f.driver.Info()
	units := f.store.Units()
	adapters := make([]UnitAdapter, 0, len(units))
	for _, u := range units {
		adapters = append(adapters, AdapterFor(info, u, u))
	}
	return adapters
}

// Save merges the edited store against the template and writes the result to
// the destination path atomically: content is staged to a temporary file in
// the same directory and swapped in only on full success, so a failed save
// leaves the previous destination intact.
func (f *File) Save() error {
	if f.path == "" {
		return errors.New("convert: no destination path; load from a file or set WithPath")
	}
	if err := store.SaveAtomic(f.path, f.SaveContent); err != nil {
		return err
	}
	f.logger.Info("convert.save", "format", f.driver.Info().ID, "path", f.path)
	return nil
}

// SaveContent merges the edited store against the required template file and
// writes finished native bytes to w.
func (f *File) SaveContent(w io.Writer) error {
	if f.template == "" {
		return ErrTemplateRequired
	}
	return f.driver.Merge(f.store, f.template, w)
}

// AddUnit always fails: the unit set is immutable post-conversion.
func (f *File) AddUnit(*store.Unit) error {
	return fmt.Errorf("%w: add unit", ErrNotSupported)
}

// CreateUnit always fails: the unit set is immutable post-conversion.
func (f *File) CreateUnit(key, source string) error {
	return fmt.Errorf("%w: create unit", ErrNotSupported)
}

// CreateNewFile handles creation of a new translation file for a target
// language. Convert formats have no schema-only skeleton to generate from:
// without a base the operation fails with ErrNotSupported, otherwise base is
// byte-copied to filename.
func CreateNewFile(filename, language, base string) error {
	if base == "" {
		return fmt.Errorf("%w: create new file without base", ErrNotSupported)
	}
	if _, err := NormalizeLanguage(language, ""); language != "" && err != nil {
		return fmt.Errorf("convert: invalid language %q: %w", language, err)
	}
	return copyFile(base, filename)
}

// IsValidBaseForNew checks whether base can seed new translation files by
// attempting a full trial load. Any error is reported to the sink and mapped
// to false; it never propagates to the caller.
func IsValidBaseForNew(d Driver, base string, reporter interfaces.ErrorReporter) bool {
	if base == "" {
		return false
	}
	if reporter == nil {
		reporter = logging.DiscardReporter{}
	}
	if _, err := Load(d, base); err != nil {
		reporter.Report(err, map[string]any{
			"cause":  "file parse error",
			"format": d.Info().ID,
			"base":   base,
		})
		return false
	}
	return true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("convert: open base %q: %w", src, err)
	}
	defer in.Close()

	return store.SaveAtomic(dst, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("convert: copy base: %w", err)
		}
		return nil
	})
}
