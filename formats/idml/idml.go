// Package idml implements the InDesign Markup Language convert format. An
// IDML package is a zip whose Stories/ entries hold the page text; all
// stories of one load share a single id allocator so unit identifiers stay
// globally unique across the package even when stories produce colliding
// local ordinals.
package idml

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

const storiesPrefix = "Stories/"

// parseState carries the IDML element tables. Visible text lives in Content
// elements inside character style ranges; Properties blocks carry styling
// values (font names, colours) that must never be extracted.
var parseState = extract.ParseState{
	Translatable: map[string]bool{
		"Content": true,
	},
	Inline: map[string]bool{
		"Br": true,
	},
	NoTranslate: map[string]bool{
		"Properties": true,
	},
}

// Driver is the IDML format driver.
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

// New returns an IDML driver.
func New(opts ...Option) *Driver {
	d := &Driver{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Info implements convert.Driver. No IDML-specific media type is registered;
// autoload also covers the idms snippet extension.
func (d *Driver) Info() convert.Info {
	return convert.Info{
		Name:            "IDML file",
		ID:              "idml",
		MediaType:       "application/octet-stream",
		Extension:       "idml",
		Autoload:        []string{"*.idml", "*.idms"},
		CheckFlags:      []string{"strict-same"},
		SameEdit:        true,
		FilenameContext: true,
	}
}

// Convert implements convert.Driver: every story entry runs through the
// structural extraction pass with one shared allocator, in archive order, so
// allocation is strictly ordered and reproducible across repeated loads.
func (d *Driver) Convert(name string, r io.Reader) (*store.Store, error) {
	container, err := archive.Open(r)
	if err != nil {
		return nil, fmt.Errorf("idml: %s: %w", name, err)
	}
	stories, err := container.Entries(isStory)
	if err != nil {
		return nil, err
	}

	alloc := extract.NewAllocator()
	s := store.New()
	for _, story := range stories {
		segments, err := extract.Segments(story.Name, story.Data, parseState, alloc)
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

	d.logger.Debug("idml.convert", "source", name, "stories", len(stories), "units", s.Len())
	return s, nil
}

// Merge implements convert.Driver: every archive entry under Stories/ is a
// candidate translatable entry; edited text is spliced into the story XML
// and the updated entries are written back into a new archive derived from
// the template's zip structure.
func (d *Driver) Merge(s *store.Store, templatePath string, w io.Writer) error {
	if templatePath == "" {
		return convert.ErrTemplateRequired
	}
	container, err := archive.OpenPath(templatePath)
	if err != nil {
		return err
	}
	stories, err := container.Entries(isStory)
	if err != nil {
		return err
	}

	alloc := extract.NewAllocator()
	modified := map[string][]byte{}
	for _, story := range stories {
		data, changed, err := extract.Merge(story.Name, story.Data, parseState, alloc, mergeLookup(s))
		if err != nil {
			return err
		}
		if changed {
			modified[story.Name] = data
		}
	}

	d.logger.Debug("idml.merge", "template", templatePath, "modified_stories", len(modified))
	return container.Rewrite(w, modified)
}

// mergeLookup resolves a segment against the edited store. Load fills both
// target fields with the source baseline, so a field only carries an edit
// once it differs from its source counterpart; the rich variant wins when
// both were edited.
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

// isStory selects translatable story entries.
func isStory(name string) bool {
	return strings.HasPrefix(name, storiesPrefix) && archive.IsXML(name)
}
