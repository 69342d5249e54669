package convert

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage canonicalises a language code according to the format's
// forced tag style. With format "bcp" (or "bcp47") the code is parsed and
// re-rendered as a canonical BCP-47 tag ("pt_br" -> "pt-BR"); with no format
// override the code is validated and returned with its separator style
// preserved.
func NormalizeLanguage(code, format string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", nil
	}

	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "bcp", "bcp47":
		return tag.String(), nil
	default:
		if strings.Contains(trimmed, "_") {
			return strings.ReplaceAll(tag.String(), "-", "_"), nil
		}
		return tag.String(), nil
	}
}
