// Package extract implements the structural XML extraction pass shared by
// the container format drivers (OpenDocument, IDML). Translatable elements
// are located with a streaming decoder and captured as raw byte ranges, so
// the merge pass can splice translated text back into the original part
// bytes and leave every untouched region byte-identical.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseState carries the element classification tables for one XML dialect.
// Elements are classified by local name; namespace prefixes vary across
// producers while the local vocabulary is stable.
type ParseState struct {
	// Translatable elements root a text segment (ODF text:p, IDML Content).
	Translatable map[string]bool
	// Inline elements may appear inside a segment without breaking it; their
	// markup is preserved verbatim as part of the segment text.
	Inline map[string]bool
	// NoTranslate subtrees are pruned entirely, even inside a segment.
	NoTranslate map[string]bool
}

// Segment is one extracted text run: the raw inner XML of a translatable
// element, addressed by a deterministic id and its byte range in the part.
type Segment struct {
	ID       string
	Location string
	Text     string

	start int64
	end   int64
}

// LookupFunc resolves the replacement text for a segment during merge. The
// replacement is spliced verbatim, so it must be an XML text fragment in the
// same form the segment text was extracted in. Returning ok=false keeps the
// template text.
type LookupFunc func(seg Segment) (replacement string, ok bool)

type frame struct {
	contentStart int64
	capturing    bool
	blocked      bool
	text         strings.Builder
}

// Segments walks one XML part and returns its translatable segments in
// document order. The allocator must be shared across every part of one load
// so ids stay globally unique and strictly ordered by processing order.
func Segments(entryName string, data []byte, state ParseState, alloc *Allocator) ([]Segment, error) {
	if alloc == nil {
		return nil, fmt.Errorf("extract: allocator cannot be nil")
	}

	d := xml.NewDecoder(bytes.NewReader(data))
	var segments []Segment
	var stack []*frame

	for {
		lastOffset := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("extract: parse %s: %w", entryName, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if state.NoTranslate[local] {
				if cap := activeCapture(stack); cap != nil {
					cap.blocked = true
				}
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("extract: skip %s in %s: %w", local, entryName, err)
				}
				continue
			}

			active := activeCapture(stack)
			capturing := state.Translatable[local] && active == nil
			if !capturing && active != nil && !state.Inline[local] && !state.Translatable[local] {
				active.blocked = true
			}
			if !capturing && active != nil && state.Translatable[local] {
				// A translatable element nested inside a live segment breaks
				// the parent; the child starts its own capture.
				active.blocked = true
				capturing = true
			}
			stack = append(stack, &frame{contentStart: d.InputOffset(), capturing: capturing})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("extract: unbalanced document %s", entryName)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.capturing && !f.blocked && strings.TrimSpace(f.text.String()) != "" {
				ordinal, id := alloc.Next(entryName)
				segments = append(segments, Segment{
					ID:       id,
					Location: fmt.Sprintf("%s:%d", entryName, ordinal),
					Text:     string(data[f.contentStart:lastOffset]),
					start:    f.contentStart,
					end:      lastOffset,
				})
			}

		case xml.CharData:
			if cap := activeCapture(stack); cap != nil {
				cap.text.Write(t)
			}
		}
	}

	return segments, nil
}

// Merge re-extracts the part and splices replacement text into the raw bytes
// wherever lookup resolves a segment. Regions outside replaced segments are
// copied byte for byte.
func Merge(entryName string, data []byte, state ParseState, alloc *Allocator, lookup LookupFunc) ([]byte, bool, error) {
	segments, err := Segments(entryName, data, state, alloc)
	if err != nil {
		return nil, false, err
	}

	var out bytes.Buffer
	var cursor int64
	modified := false

	for _, seg := range segments {
		replacement, ok := lookup(seg)
		if !ok || replacement == seg.Text {
			continue
		}
		out.Write(data[cursor:seg.start])
		out.WriteString(replacement)
		cursor = seg.end
		modified = true
	}
	if !modified {
		return data, false, nil
	}
	out.Write(data[cursor:])
	return out.Bytes(), true, nil
}

// activeCapture returns the innermost live segment frame. A blocked frame is
// dead; nested translatable elements below it capture independently.
func activeCapture(stack []*frame) *frame {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].capturing {
			if stack[i].blocked {
				return nil
			}
			return stack[i]
		}
	}
	return nil
}
