// Package html implements the HTML convert format: visible text runs become
// translation units and edited targets are substituted back into the original
// markup, token by token, leaving tags, attributes and entity usage outside
// the replaced runs byte-identical.
package html

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/internal/identity"
	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
	"github.com/goliatone/go-convert/store"
)

// skipContent lists elements whose text content is never translatable.
var skipContent = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Driver is the HTML format driver.
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

// New returns an HTML driver.
func New(opts ...Option) *Driver {
	d := &Driver{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Info implements convert.Driver.
func (d *Driver) Info() convert.Info {
	return convert.Info{
		Name:            "HTML file",
		ID:              "html",
		Autoload:        []string{"*.htm", "*.html"},
		MediaType:       "text/html",
		Extension:       "html",
		CheckFlags:      []string{"safe-html", "strict-same"},
		SameEdit:        true,
		FilenameContext: true,
	}
}

// Convert implements convert.Driver: every visible text run becomes one unit,
// tagged with the input's basename as auxiliary context.
func (d *Driver) Convert(name string, r io.Reader) (*store.Store, error) {
	base := filepath.Base(name)
	s := store.New()

	ordinal := 0
	err := walkText(r, func(text string) error {
		ordinal++
		u := &store.Unit{
			ID:        identity.FileUnitUUID(base, fmt.Sprintf("text:%d", ordinal)).String(),
			Source:    text,
			Locations: []string{fmt.Sprintf("%s:%d", base, ordinal)},
		}
		return s.Append(u)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Debug("html.convert", "source", base, "units", s.Len())
	return s, nil
}

// Merge implements convert.Driver: the template is re-tokenised and each
// visible text run is replaced with the corresponding unit's target. Units
// still flagged fuzzy are skipped, keeping the template text. Output is
// UTF-8.
func (d *Driver) Merge(s *store.Store, templatePath string, w io.Writer) error {
	template, err := readFile(templatePath)
	if err != nil {
		return err
	}

	units := contentUnits(s)
	index := 0

	z := xhtml.NewTokenizer(strings.NewReader(string(template)))
	var skipDepth int
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			if z.Err() == io.EOF {
				return nil
			}
			return fmt.Errorf("html: merge parse: %w", z.Err())
		}
		raw := append([]byte(nil), z.Raw()...)

		switch tt {
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			if skipContent[string(name)] {
				skipDepth++
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if skipDepth > 0 && skipContent[string(name)] {
				skipDepth--
			}
		case xhtml.TextToken:
			if skipDepth > 0 {
				break
			}
			trimmed := strings.TrimSpace(xhtml.UnescapeString(string(raw)))
			if trimmed == "" {
				break
			}
			if index < len(units) {
				u := units[index]
				index++
				// A target equal to the source is the untranslated baseline;
				// leaving the raw run alone preserves its entity spelling.
				if !u.Fuzzy && u.Target != "" && u.Source == trimmed && u.Target != trimmed {
					raw = substituteRun(raw, u.Target)
				}
			}
		}

		if _, err := w.Write(raw); err != nil {
			return fmt.Errorf("html: write output: %w", err)
		}
	}
}

// walkText streams visible, non-empty text runs in document order.
func walkText(r io.Reader, visit func(text string) error) error {
	z := xhtml.NewTokenizer(r)
	var skipDepth int
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			if z.Err() == io.EOF {
				return nil
			}
			return fmt.Errorf("html: parse: %w", z.Err())
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			if skipContent[string(name)] {
				skipDepth++
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if skipDepth > 0 && skipContent[string(name)] {
				skipDepth--
			}
		case xhtml.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(z.Token().Data)
			if text == "" {
				continue
			}
			if err := visit(text); err != nil {
				return err
			}
		}
	}
}

// substituteRun replaces the trimmed body of a raw text token while keeping
// its surrounding whitespace, so indentation and line breaks survive.
func substituteRun(raw []byte, target string) []byte {
	text := string(raw)
	prefix := text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))]
	suffix := text[len(strings.TrimRightFunc(text, unicode.IsSpace)):]
	return []byte(prefix + xhtml.EscapeString(target) + suffix)
}

func contentUnits(s *store.Store) []*store.Unit {
	var units []*store.Unit
	for _, u := range s.Units() {
		if u.IsHeader() {
			continue
		}
		units = append(units, u)
	}
	return units
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, convert.ErrTemplateRequired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("html: read template %q: %w", path, err)
	}
	return data, nil
}
