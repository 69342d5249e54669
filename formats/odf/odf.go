// Package odf implements the OpenDocument convert format. An ODF package is
// a zip of XML parts; the structural extraction pass classifies elements as
// translatable, inline or no-translate and yields one unit per extracted
// text run, tagged with its source part so filename-context adapters can
// disambiguate. Merging rewrites only the text-bearing parts back into a
// copy of the template container.
package odf

import (
	"fmt"
	"io"
	"strings"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/internal/archive"
	"github.com/goliatone/go-convert/internal/extract"
	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
	"github.com/goliatone/go-convert/store"
)

// parseState carries the OpenDocument element tables. Paragraphs and
// headings root segments; character-level markup is inline; declaration and
// tracking blocks never contain translatable text.
var parseState = extract.ParseState{
	Translatable: map[string]bool{
		"p": true,
		"h": true,
	},
	Inline: map[string]bool{
		"span": true, "a": true, "s": true, "tab": true,
		"line-break": true, "bookmark": true, "bookmark-start": true,
		"bookmark-end": true, "note-ref": true, "reference-mark": true,
		"soft-page-break": true,
	},
	NoTranslate: map[string]bool{
		"tracked-changes": true, "note-citation": true, "annotation": true,
		"sequence-decls": true, "font-face-decls": true, "forms": true,
		"index-title-template": true,
	},
}

// Driver is the OpenDocument format driver.
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

// New returns an OpenDocument driver.
func New(opts ...Option) *Driver {
	d := &Driver{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Info implements convert.Driver. The odt extension is the representative
// default; autoload covers the whole ODF family.
func (d *Driver) Info() convert.Info {
	return convert.Info{
		Name:      "OpenDocument file",
		ID:        "odf",
		MediaType: "application/vnd.oasis.opendocument.text",
		Extension: "odt",
		Autoload: []string{
			"*.sxw",
			"*.odt", "*.ods", "*.odp", "*.odg", "*.odc", "*.odf", "*.odi", "*.odm",
			"*.ott", "*.ots", "*.otp", "*.otg", "*.otc", "*.otf", "*.oti", "*.oth",
		},
		CheckFlags:      []string{"strict-same"},
		SameEdit:        true,
		FilenameContext: true,
	}
}

// Convert implements convert.Driver: every internal XML part is run through
// the structural extraction pass, one unit per extracted text run.
func (d *Driver) Convert(name string, r io.Reader) (*store.Store, error) {
	container, err := archive.Open(r)
	if err != nil {
		return nil, fmt.Errorf("odf: %s: %w", name, err)
	}
	parts, err := container.Entries(isContentPart)
	if err != nil {
		return nil, err
	}

	alloc := extract.NewAllocator()
	s := store.New()
	for _, part := range parts {
		segments, err := extract.Segments(part.Name, part.Data, parseState, alloc)
		if err != nil {
			return nil, err
		}
		for _, seg := range segments {
			u := &store.Unit{
				ID:         seg.ID,
				Source:     seg.Text,
				RichSource: seg.Text,
				Locations:  []string{seg.Location},
			}
			if err := s.Append(u); err != nil {
				return nil, err
			}
		}
	}

	d.logger.Debug("odf.convert", "source", name, "parts", len(parts), "units", s.Len())
	return s, nil
}

// Merge implements convert.Driver: each XML part of the template is
// re-extracted with the same classification tables, edited text is spliced
// into the raw part bytes, and modified parts are rewritten into a copy of
// the template's zip container.
func (d *Driver) Merge(s *store.Store, templatePath string, w io.Writer) error {
	if templatePath == "" {
		return convert.ErrTemplateRequired
	}
	container, err := archive.OpenPath(templatePath)
	if err != nil {
		return err
	}
	parts, err := container.Entries(isContentPart)
	if err != nil {
		return err
	}

	alloc := extract.NewAllocator()
	modified := map[string][]byte{}
	for _, part := range parts {
		data, changed, err := extract.Merge(part.Name, part.Data, parseState, alloc, mergeLookup(s))
		if err != nil {
			return err
		}
		if changed {
			modified[part.Name] = data
		}
	}

	d.logger.Debug("odf.merge", "template", templatePath, "modified_parts", len(modified))
	return container.Rewrite(w, modified)
}

// mergeLookup resolves a segment against the edited store. Missing units and
// units still flagged fuzzy keep the template text. Load fills both target
// fields with the source baseline, so a field only carries an edit once it
// differs from its source counterpart; the rich variant wins when both were
// edited.
func mergeLookup(s *store.Store) extract.LookupFunc {
	return func(seg extract.Segment) (string, bool) {
		u, ok := s.Get(seg.ID)
		if !ok || u.Fuzzy {
			return "", false
		}
		if u.RichTarget != "" && u.RichTarget != u.RichSource {
			return u.RichTarget, true
		}
		if u.Target != "" && u.Target != u.Source {
			return u.Target, true
		}
		return "", false
	}
}

// isContentPart selects the text-bearing XML parts of an ODF package.
func isContentPart(name string) bool {
	base := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		base = name[idx+1:]
	}
	return base == "content.xml" || base == "styles.xml"
}
