package formats

import "testing"

func TestRegistryRegistersBuiltinFormats(t *testing.T) {
	registry, err := Registry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	for _, id := range []string{"html", "odf", "idml", "rc"} {
		if _, err := registry.Get(id); err != nil {
			t.Fatalf("format %s not registered: %v", id, err)
		}
	}

	detect := map[string]string{
		"page.html":   "html",
		"Report.ODT":  "odf",
		"sheet.ods":   "odf",
		"layout.idml": "idml",
		"app.rc":      "rc",
	}
	for filename, wantID := range detect {
		d, ok := registry.Detect(filename)
		if !ok {
			t.Fatalf("no driver detected for %s", filename)
		}
		if got := d.Info().ID; got != wantID {
			t.Fatalf("%s detected as %s, want %s", filename, got, wantID)
		}
	}

	if _, ok := registry.Detect("notes.po"); ok {
		t.Fatalf("unrelated filename matched a convert format")
	}

	if len(registry.Formats()) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(registry.Formats()))
	}
}
