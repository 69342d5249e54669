package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is the serialised form of a store, used by the CLI to move the
// intermediate representation between an extract and a later merge run.
type Document struct {
	Format string  `json:"format"`
	Units  []*Unit `json:"units"`
}

// WriteJSON serialises the store and its originating format id.
func WriteJSON(w io.Writer, formatID string, s *Store) error {
	if s == nil {
		return errors.New("store: cannot serialise nil store")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Format: formatID, Units: s.Units()})
}

// ReadJSON reconstructs a store from its serialised form.
func ReadJSON(r io.Reader) (string, *Store, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("store: decode document: %w", err)
	}

	s := New()
	for _, u := range doc.Units {
		if err := s.Append(u); err != nil {
			return "", nil, err
		}
	}
	return doc.Format, s, nil
}
