package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func buildZip(t *testing.T, members [][2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
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

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open member %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read member %s: %v", f.Name, err)
		}
		out[f.Name] = string(content)
	}
	return out
}

var sampleMembers = [][2]string{
	{"mimetype", "application/vnd.oasis.opendocument.text"},
	{"content.xml", "<content/>"},
	{"styles.xml", "<styles/>"},
	{"meta.xml", "<meta/>"},
	{"Pictures/logo.png", "\x89PNG"},
}

func TestContainerNamesAndEntries(t *testing.T) {
	c, err := Open(bytes.NewReader(buildZip(t, sampleMembers)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	names := c.Names()
	if len(names) != len(sampleMembers) {
		t.Fatalf("names %v", names)
	}
	for i, m := range sampleMembers {
		if names[i] != m[0] {
			t.Fatalf("member %d is %s, want %s", i, names[i], m[0])
		}
	}

	entries, err := c.Entries(IsXML)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 xml parts, got %d", len(entries))
	}
	if entries[0].Name != "content.xml" || string(entries[0].Data) != "<content/>" {
		t.Fatalf("unexpected first entry %s=%q", entries[0].Name, entries[0].Data)
	}
}

func TestContainerRewrite(t *testing.T) {
	c, err := Open(bytes.NewReader(buildZip(t, sampleMembers)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var out bytes.Buffer
	err = c.Rewrite(&out, map[string][]byte{
		"content.xml": []byte("<content><p>translated</p></content>"),
	})
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	got := readZip(t, out.Bytes())
	if got["content.xml"] != "<content><p>translated</p></content>" {
		t.Fatalf("modified member not replaced: %q", got["content.xml"])
	}
	for _, name := range []string{"mimetype", "styles.xml", "meta.xml", "Pictures/logo.png"} {
		want := ""
		for _, m := range sampleMembers {
			if m[0] == name {
				want = m[1]
			}
		}
		if got[name] != want {
			t.Fatalf("untouched member %s changed: %q", name, got[name])
		}
	}

	// Member ordering survives the rewrite.
	reopened, err := Open(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	names := reopened.Names()
	for i, m := range sampleMembers {
		if names[i] != m[0] {
			t.Fatalf("member order changed at %d: %s", i, names[i])
		}
	}
}

func TestContainerRewriteNoModifications(t *testing.T) {
	src := buildZip(t, sampleMembers)
	c, err := Open(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var out bytes.Buffer
	if err := c.Rewrite(&out, nil); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	got := readZip(t, out.Bytes())
	for _, m := range sampleMembers {
		if got[m[0]] != m[1] {
			t.Fatalf("member %s changed on a no-op rewrite", m[0])
		}
	}
}

func TestOpenRejectsNonZip(t *testing.T) {
	if _, err := Open(bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Fatalf("expected non-zip input to fail")
	}
}

func TestIsXML(t *testing.T) {
	if !IsXML("content.xml") || !IsXML("Stories/Story_u1.XML") {
		t.Fatalf("xml member not recognised")
	}
	if IsXML("mimetype") || IsXML("Pictures/logo.png") {
		t.Fatalf("non-xml member recognised")
	}
}
