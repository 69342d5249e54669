package extract

import (
	"strings"
	"testing"
)

func testState() ParseState {
	return ParseState{
		Translatable: map[string]bool{"p": true, "h": true},
		Inline:       map[string]bool{"span": true, "br": true},
		NoTranslate:  map[string]bool{"skip": true},
	}
}

func segmentTexts(segs []Segment) []string {
	texts := make([]string, 0, len(segs))
	for _, s := range segs {
		texts = append(texts, s.Text)
	}
	return texts
}

func TestSegments(t *testing.T) {
	data := []byte(`<doc>` +
		`<p>Hello <span a="1">world</span>!</p>` +
		`<h>Title</h>` +
		`<p>   </p>` +
		`<p>Keep <skip>X</skip> body</p>` +
		`<wrap><p>Inner</p></wrap>` +
		`</doc>`)

	segs, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}

	want := []string{
		`Hello <span a="1">world</span>!`,
		`Title`,
		`Inner`,
	}
	got := segmentTexts(segs)
	if len(got) != len(want) {
		t.Fatalf("segment texts %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d text %q, want %q", i, got[i], want[i])
		}
	}

	wantLocations := []string{"part.xml:1", "part.xml:2", "part.xml:3"}
	for i, seg := range segs {
		if seg.Location != wantLocations[i] {
			t.Fatalf("segment %d location %q, want %q", i, seg.Location, wantLocations[i])
		}
		if seg.ID == "" {
			t.Fatalf("segment %d has no id", i)
		}
	}
}

func TestSegmentsInlineMarkupPreservedVerbatim(t *testing.T) {
	data := []byte(`<doc><p>a<br/>b &amp; c<span  x="1" >d</span></p></doc>`)

	segs, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected one segment, got %d", len(segs))
	}

	// Raw bytes, including entity references and attribute spacing, survive.
	if want := `a<br/>b &amp; c<span  x="1" >d</span>`; segs[0].Text != want {
		t.Fatalf("segment text %q, want %q", segs[0].Text, want)
	}
}

func TestSegmentsNestedTranslatable(t *testing.T) {
	data := []byte(`<doc><p>Outer <p>Nested</p> tail</p></doc>`)

	segs, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected only the nested segment, got %d", len(segs))
	}
	if segs[0].Text != "Nested" {
		t.Fatalf("segment text %q, want Nested", segs[0].Text)
	}
}

func TestSegmentsNonInlineChildBreaksSegment(t *testing.T) {
	data := []byte(`<doc><p>Before <frame>inner</frame> after</p><h>Kept</h></doc>`)

	segs, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "Kept" {
		t.Fatalf("expected only the clean segment, got %q", segmentTexts(segs))
	}
}

func TestSegmentsUnbalancedDocumentFails(t *testing.T) {
	if _, err := Segments("part.xml", []byte(`<doc><p>Hello`), testState(), NewAllocator()); err == nil {
		t.Fatalf("expected truncated document to fail")
	}
}

func TestSegmentsDeterministicIDs(t *testing.T) {
	data := []byte(`<doc><p>One</p><p>Two</p></doc>`)

	first, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := Segments("part.xml", data, testState(), NewAllocator())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("segment %d id changed between passes: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("sibling segments share an id")
	}
}

func TestMerge(t *testing.T) {
	data := []byte(`<doc><p>Hello <span a="1">world</span>!</p><h>Title</h></doc>`)

	t.Run("splices replacements and keeps the rest byte-identical", func(t *testing.T) {
		out, modified, err := Merge("part.xml", data, testState(), NewAllocator(), func(seg Segment) (string, bool) {
			if seg.Location == "part.xml:1" {
				return `Bonjour <span a="1">monde</span>!`, true
			}
			return "", false
		})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if !modified {
			t.Fatalf("expected merge to report a modification")
		}
		want := `<doc><p>Bonjour <span a="1">monde</span>!</p><h>Title</h></doc>`
		if string(out) != want {
			t.Fatalf("merged part %q, want %q", out, want)
		}
	})

	t.Run("no resolved replacement leaves the part untouched", func(t *testing.T) {
		out, modified, err := Merge("part.xml", data, testState(), NewAllocator(), func(Segment) (string, bool) {
			return "", false
		})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if modified {
			t.Fatalf("expected no modification")
		}
		if string(out) != string(data) {
			t.Fatalf("untouched part changed")
		}
	})

	t.Run("identical replacement does not count as a modification", func(t *testing.T) {
		_, modified, err := Merge("part.xml", data, testState(), NewAllocator(), func(seg Segment) (string, bool) {
			return seg.Text, true
		})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if modified {
			t.Fatalf("source-equal replacement must not mark the part modified")
		}
	})

	t.Run("merge ids line up with extraction ids", func(t *testing.T) {
		segs, err := Segments("part.xml", data, testState(), NewAllocator())
		if err != nil {
			t.Fatalf("segments: %v", err)
		}
		byID := map[string]string{segs[1].ID: "Titel"}

		out, modified, err := Merge("part.xml", data, testState(), NewAllocator(), func(seg Segment) (string, bool) {
			text, ok := byID[seg.ID]
			return text, ok
		})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if !modified || !strings.Contains(string(out), "<h>Titel</h>") {
			t.Fatalf("id-keyed merge failed: %q", out)
		}
	})
}
