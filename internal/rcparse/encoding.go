package rcparse

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16leBOM = []byte{0xFF, 0xFE}

// Decode converts raw .rc bytes to text. Scripts are Windows-1252 by
// convention; a UTF-16LE byte-order-mark switches to UTF-16 decoding.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16leBOM) {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("rcparse: decode utf-16: %w", err)
		}
		return string(decoded), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("rcparse: decode cp1252: %w", err)
	}
	return string(decoded), nil
}

// Encode converts rendered RC text to output bytes. Windows-1252 is attempted
// first; if any codepoint is not representable the whole text is encoded as
// UTF-16LE prefixed with the byte-order-mark. This is the only driver path
// with non-UTF-8 output semantics and the fallback must be exact.
func Encode(text string) ([]byte, error) {
	if encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text)); err == nil {
		return encoded, nil
	}

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("rcparse: encode utf-16: %w", err)
	}
	out := make([]byte, 0, len(utf16leBOM)+len(encoded))
	out = append(out, utf16leBOM...)
	out = append(out, encoded...)
	return out, nil
}
