package convert

import (
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-convert/store"
)

// Driver is the contract every format implements: a converter from the native
// format to a unit store and a merger from an edited store plus the template
// file back to native bytes. Drivers are stateless; all per-file state lives
// in the File returned by Load.
type Driver interface {
	// Info returns the static format descriptor.
	Info() Info
	// Convert extracts translation units from native content. name is the
	// originating filename used for location/context tagging.
	Convert(name string, r io.Reader) (*store.Store, error)
	// Merge applies the store's edited targets onto the template file and
	// writes finished native bytes to w. Units still flagged fuzzy keep the
	// template text.
	Merge(s *store.Store, templatePath string, w io.Writer) error
}

// Info is the static per-format descriptor: identity, discovery globs, media
// metadata, and check flags consumed by the surrounding application layer.
type Info struct {
	// Name is the human readable format name.
	Name string
	// ID is the canonical format identifier (html, odf, idml, rc).
	ID string
	// Autoload lists the glob patterns the file-recognition layer matches
	// against candidate filenames.
	Autoload []string
	// MediaType is the most common media type for the format.
	MediaType string
	// Extension is the most common file extension, without dot.
	Extension string
	// CheckFlags enumerates the quality-check flags applicable to the format.
	CheckFlags []string
	// LanguageFormat forces a language-tag style (e.g. "bcp") regardless of
	// the host application's default. Empty means no override.
	LanguageFormat string
	// SameEdit marks that freshly loaded units carry source==target as a
	// meaningful baseline rather than an untranslated state.
	SameEdit bool
	// FilenameContext selects the filename-deriving unit adapter for formats
	// whose locations encode container entry paths.
	FilenameContext bool
	// Probe optionally verifies the format's parsing capability. It runs once
	// at registration; a failure marks the format unavailable instead of
	// surfacing as a deep error at first use.
	Probe func() error
}

// Validate ensures the descriptor carries the fields the registry and the
// discovery contract rely on.
func (i Info) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.ID, validation.Required, validation.By(noWhitespace("id"))),
		validation.Field(&i.Extension, validation.Required, validation.By(noWhitespace("extension"))),
		validation.Field(&i.Autoload, validation.Required, validation.Length(1, 0)),
		validation.Field(&i.MediaType, validation.Required),
	)
}

func noWhitespace(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.ContainsAny(s, " \t\n") {
			return validation.NewError("convert."+field+"_whitespace", field+" cannot contain whitespace")
		}
		return nil
	}
}
