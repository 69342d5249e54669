package rcparse

import (
	"sort"
	"strings"
)

// Render rewrites the parsed template text, substituting translated strings
// and the resolved language tags. lookup receives each resource key and
// returns the replacement text; returning ok=false keeps the template text.
// When the template carries a LANGUAGE statement its arguments are replaced
// with lang/sublang; a template without one is left as-is.
func (f *File) Render(lookup func(key string) (string, bool), lang, sublang string) string {
	type splice struct {
		start, end int
		text       string
	}
	var splices []splice

	if f.langArgsStart >= 0 && lang != "" {
		args := lang
		if sublang != "" {
			args += ", " + sublang
		}
		splices = append(splices, splice{start: f.langArgsStart, end: f.langArgsEnd, text: args})
	}

	for _, res := range f.Strings {
		replacement, ok := lookup(res.Key)
		if !ok || replacement == res.Value {
			continue
		}
		splices = append(splices, splice{
			start: res.start,
			end:   res.end,
			text:  `"` + escapeString(replacement) + `"`,
		})
	}

	sort.Slice(splices, func(i, j int) bool { return splices[i].start < splices[j].start })

	var b strings.Builder
	cursor := 0
	for _, s := range splices {
		b.WriteString(f.text[cursor:s.start])
		b.WriteString(s.text)
		cursor = s.end
	}
	b.WriteString(f.text[cursor:])
	return b.String()
}

// escapeString doubles quotes for RC string literals. Backslash escapes pass
// through untouched; they were preserved verbatim during lexing.
func escapeString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
