// Package rc implements the Windows resource script convert format. String
// resources become translation units keyed by their resource path; merging
// re-serialises the template with translated strings and the resolved
// LANGUAGE tags, encoding the result as Windows-1252 or, when any codepoint
// falls outside that charmap, as UTF-16LE behind a byte-order-mark.
package rc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/internal/identity"
	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/internal/rcparse"
	"github.com/goliatone/go-convert/pkg/interfaces"
	"github.com/goliatone/go-convert/store"
)

const (
	defaultLang    = "LANG_ENGLISH"
	defaultSubLang = "SUBLANG_DEFAULT"
)

// Driver is the Windows RC format driver.
type Driver struct {
	logger interfaces.Logger
}

var _ convert.Driver = (*Driver)(nil)

// Option configures the driver.
type Option func(*Driver)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New returns an RC driver.
func New(opts ...Option) *Driver {
	d := &Driver{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Info implements convert.Driver. Language tags are forced to BCP-47 style
// regardless of the host's default; the parser capability is gated behind an
// explicit probe so a missing capability surfaces as "feature unavailable"
// at registration, not as a deep failure at first use.
func (d *Driver) Info() convert.Info {
	return convert.Info{
		Name:           "RC file",
		ID:             "rc",
		MediaType:      "text/plain",
		Extension:      "rc",
		Autoload:       []string{"*.rc"},
		SameEdit:       true,
		LanguageFormat: "bcp",
		Probe:          rcparse.Available,
	}
}

// Convert implements convert.Driver: the resource script is parsed into
// statement/string-table structures and each string resource becomes a unit
// whose location carries the resource key, so the merge pass can resolve
// edits against a re-parsed template.
func (d *Driver) Convert(name string, r io.Reader) (*store.Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rc: read %s: %w", name, err)
	}
	text, err := rcparse.Decode(raw)
	if err != nil {
		return nil, err
	}
	parsed, err := rcparse.Parse(text)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(name)
	s := store.New()
	for _, res := range parsed.Strings {
		u := &store.Unit{
			ID:        identity.FileUnitUUID(base, res.Key).String(),
			Source:    res.Value,
			Locations: []string{res.Key},
		}
		if err := s.Append(u); err != nil {
			return nil, err
		}
	}

	d.logger.Debug("rc.convert", "source", base, "lang", parsed.Lang, "units", s.Len())
	return s, nil
}

// Merge implements convert.Driver. Output language tags default to
// LANG_ENGLISH/SUBLANG_DEFAULT; a LANGUAGE statement in the template
// overrides the language and, when present, the sublanguage.
func (d *Driver) Merge(s *store.Store, templatePath string, w io.Writer) error {
	if templatePath == "" {
		return convert.ErrTemplateRequired
	}
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("rc: read template %q: %w", templatePath, err)
	}
	text, err := rcparse.Decode(raw)
	if err != nil {
		return err
	}
	parsed, err := rcparse.Parse(text)
	if err != nil {
		return err
	}

	lang := defaultLang
	sublang := defaultSubLang
	if parsed.Lang != "" {
		lang = parsed.Lang
		if parsed.SubLang != "" {
			sublang = parsed.SubLang
		}
	}

	// The resolved tags replace the arguments of an existing LANGUAGE
	// statement only; a template without one is rendered without one.
	units := unitsByKey(s)
	rendered := parsed.Render(func(key string) (string, bool) {
		u, ok := units[key]
		if !ok || u.Fuzzy || u.Target == "" {
			return "", false
		}
		return u.Target, true
	}, lang, sublang)

	encoded, err := rcparse.Encode(rendered)
	if err != nil {
		return err
	}
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("rc: write output: %w", err)
	}

	d.logger.Debug("rc.merge", "template", templatePath, "lang", lang, "sublang", sublang)
	return nil
}

// unitsByKey indexes non-header units by their resource key location.
func unitsByKey(s *store.Store) map[string]*store.Unit {
	index := make(map[string]*store.Unit, s.Len())
	for _, u := range s.Units() {
		if u.IsHeader() || len(u.Locations) == 0 {
			continue
		}
		index[u.Locations[0]] = u
	}
	return index
}
