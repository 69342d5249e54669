package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SegmentUUID derives the identifier for one extracted text segment. The key
// combines the container entry name with the segment's ordinal inside that
// entry, so repeated loads of the same package allocate identical ids and two
// entries sharing a local ordinal never collide.
func SegmentUUID(entryName string, ordinal int) uuid.UUID {
	return UUID("go-convert:segment:" + strings.TrimSpace(entryName) + ":" + strconv.Itoa(ordinal))
}

// FileUnitUUID derives the identifier for a unit extracted from a flat
// (non-container) file such as HTML or RC, keyed by source name and unit key.
func FileUnitUUID(sourceName, unitKey string) uuid.UUID {
	return UUID("go-convert:unit:" + strings.TrimSpace(sourceName) + ":" + strings.TrimSpace(unitKey))
}
