// Package store provides the intermediate translation-unit representation
// shared by every convert format: an ordered unit sequence produced by a
// format converter, edited in place, and merged back against a template.
package store

// Unit is a single translatable fragment extracted from a native file.
//
// Source carries the original text and is never rewritten after conversion.
// Target starts equal to Source for non-header units (convert formats have no
// prior translation; the file is the source) and is the only field edits
// touch. RichSource/RichTarget hold the inline-markup variant of the text for
// formats where formatting runs must survive the round trip.
type Unit struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	RichSource string   `json:"rich_source,omitempty"`
	RichTarget string   `json:"rich_target,omitempty"`
	Header     bool     `json:"header,omitempty"`
	Fuzzy      bool     `json:"fuzzy,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// IsHeader reports whether the unit is a non-content metadata unit. Header
// units are excluded from the automatic target fill performed on load.
func (u *Unit) IsHeader() bool {
	return u != nil && u.Header
}
