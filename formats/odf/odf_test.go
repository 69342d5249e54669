package odf

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/store"
)

const contentXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
 <office:body>
  <office:text>
   <text:p>Hello <text:span text:style-name="T1">world</text:span></text:p>
   <text:h text:outline-level="1">Heading</text:h>
   <text:p>   </text:p>
  </office:text>
 </office:body>
</office:document-content>
`

const stylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
 <office:master-styles>
  <text:p>Footer text</text:p>
 </office:master-styles>
</office:document-styles>
`

const metaXML = `<?xml version="1.0" encoding="UTF-8"?><office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"/>`

func buildODT(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := [][2]string{
		{"mimetype", "application/vnd.oasis.opendocument.text"},
		{"content.xml", contentXML},
		{"styles.xml", stylesXML},
		{"meta.xml", metaXML},
	}
	for _, m := range members {
		w, err := zw.Create(m[0])
		if err != nil {
			t.Fatalf("create %s: %v", m[0], err)
		}
		if _, err := w.Write([]byte(m[1])); err != nil {
			t.Fatalf("write %s: %v", m[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func memberContent(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("member %s missing", name)
	return ""
}

func TestConvert(t *testing.T) {
	s, err := New().Convert("doc.odt", bytes.NewReader(buildODT(t)))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	units := s.Units()
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}

	want := []struct {
		source   string
		location string
	}{
		{`Hello <text:span text:style-name="T1">world</text:span>`, "content.xml:1"},
		{`Heading`, "content.xml:2"},
		{`Footer text`, "styles.xml:1"},
	}
	for i, w := range want {
		u := units[i]
		if u.Source != w.source {
			t.Fatalf("unit %d source %q, want %q", i, u.Source, w.source)
		}
		if u.RichSource != u.Source {
			t.Fatalf("unit %d rich source differs from source", i)
		}
		if len(u.Locations) != 1 || u.Locations[0] != w.location {
			t.Fatalf("unit %d locations %v, want %s", i, u.Locations, w.location)
		}
	}

	seen := map[string]bool{}
	for _, u := range units {
		if seen[u.ID] {
			t.Fatalf("duplicate unit id %s across parts", u.ID)
		}
		seen[u.ID] = true
	}
}

func mergeODT(t *testing.T, edit func(*store.Store)) []byte {
	t.Helper()
	src := buildODT(t)
	path := filepath.Join(t.TempDir(), "doc.odt")
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	d := New()
	s, err := d.Convert("doc.odt", bytes.NewReader(src))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if edit != nil {
		edit(s)
	}

	var out bytes.Buffer
	if err := d.Merge(s, path, &out); err != nil {
		t.Fatalf("merge: %v", err)
	}
	return out.Bytes()
}

func TestMerge(t *testing.T) {
	t.Run("splices edited text into the right parts", func(t *testing.T) {
		out := mergeODT(t, func(s *store.Store) {
			units := s.Units()
			units[0].RichTarget = `Hallo <text:span text:style-name="T1">Welt</text:span>`
			units[2].Target = "Fußzeile"
		})

		content := memberContent(t, out, "content.xml")
		if !strings.Contains(content, `<text:p>Hallo <text:span text:style-name="T1">Welt</text:span></text:p>`) {
			t.Fatalf("content.xml not merged:\n%s", content)
		}
		if !strings.Contains(content, "<text:h text:outline-level=\"1\">Heading</text:h>") {
			t.Fatalf("unedited segment changed:\n%s", content)
		}

		styles := memberContent(t, out, "styles.xml")
		if !strings.Contains(styles, "<text:p>Fußzeile</text:p>") {
			t.Fatalf("styles.xml not merged:\n%s", styles)
		}
	})

	t.Run("untouched members stay byte-identical", func(t *testing.T) {
		out := mergeODT(t, func(s *store.Store) {
			s.Units()[1].Target = "Überschrift"
		})
		if memberContent(t, out, "mimetype") != "application/vnd.oasis.opendocument.text" {
			t.Fatalf("mimetype changed")
		}
		if memberContent(t, out, "meta.xml") != metaXML {
			t.Fatalf("meta.xml changed")
		}
		if memberContent(t, out, "styles.xml") != stylesXML {
			t.Fatalf("unedited part was rewritten")
		}
	})

	t.Run("fuzzy units keep the template text", func(t *testing.T) {
		out := mergeODT(t, func(s *store.Store) {
			s.Units()[1].Target = "Überschrift"
			s.Units()[1].Fuzzy = true
		})
		if !strings.Contains(memberContent(t, out, "content.xml"), ">Heading<") {
			t.Fatalf("fuzzy unit was merged")
		}
	})

	t.Run("no edits reproduce every member", func(t *testing.T) {
		out := mergeODT(t, nil)
		if memberContent(t, out, "content.xml") != contentXML {
			t.Fatalf("content.xml changed without edits")
		}
	})
}

func TestLoadEditTargetMerge(t *testing.T) {
	src := buildODT(t)
	path := filepath.Join(t.TempDir(), "doc.odt")
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	f, err := convert.Load(New(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	units := f.Store().Units()
	if units[1].RichTarget != units[1].RichSource {
		t.Fatalf("load must fill the rich target baseline")
	}
	units[1].Target = "Überschrift"

	var out bytes.Buffer
	if err := f.SaveContent(&out); err != nil {
		t.Fatalf("save: %v", err)
	}

	content := memberContent(t, out.Bytes(), "content.xml")
	if !strings.Contains(content, `<text:h text:outline-level="1">Überschrift</text:h>`) {
		t.Fatalf("edit made through Target was dropped:\n%s", content)
	}
	// Units left at the filled baseline keep the template text untouched.
	if !strings.Contains(content, `Hello <text:span text:style-name="T1">world</text:span>`) {
		t.Fatalf("baseline segment changed:\n%s", content)
	}
}

func TestMergeWithoutTemplate(t *testing.T) {
	if err := New().Merge(store.New(), "", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing template to fail")
	}
}

func TestConvertRejectsNonZip(t *testing.T) {
	if _, err := New().Convert("doc.odt", strings.NewReader("plain text")); err == nil {
		t.Fatalf("expected non-zip input to fail")
	}
}
