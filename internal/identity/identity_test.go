package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	a := UUID("go-convert:test:key")
	b := UUID("go-convert:test:key")
	if a != b {
		t.Fatalf("same key produced %s and %s", a, b)
	}
	if a == uuid.Nil {
		t.Fatalf("non-empty key produced the nil uuid")
	}
	if UUID("go-convert:test:other") == a {
		t.Fatalf("distinct keys collided")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("") != uuid.Nil {
		t.Fatalf("empty key must map to the nil uuid")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("whitespace key must map to the nil uuid")
	}
}

func TestSegmentUUID(t *testing.T) {
	if SegmentUUID("content.xml", 1) != SegmentUUID("content.xml", 1) {
		t.Fatalf("segment ids must be reproducible")
	}
	if SegmentUUID("content.xml", 1) == SegmentUUID("content.xml", 2) {
		t.Fatalf("ordinals must not collide within an entry")
	}
	if SegmentUUID("content.xml", 1) == SegmentUUID("styles.xml", 1) {
		t.Fatalf("entries must not collide on the same ordinal")
	}
}

func TestFileUnitUUID(t *testing.T) {
	if FileUnitUUID("app.rc", "STRINGTABLE.IDS_A") != FileUnitUUID("app.rc", "STRINGTABLE.IDS_A") {
		t.Fatalf("file unit ids must be reproducible")
	}
	if FileUnitUUID("app.rc", "STRINGTABLE.IDS_A") == FileUnitUUID("app.rc", "STRINGTABLE.IDS_B") {
		t.Fatalf("unit keys must not collide")
	}
	if FileUnitUUID("app.rc", "k") == SegmentUUID("app.rc", 1) {
		t.Fatalf("unit and segment namespaces must stay disjoint")
	}
}
