// Package archive wraps zip container access for the package based formats
// (OpenDocument, IDML). Rewrites preserve the member list and ordering of the
// template archive; only the parts a merge actually modified are recompressed.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Container is an open zip package held fully in memory. The files this
// subsystem handles are documents, not bulk archives; buffering keeps the
// reader contract simple for byte-stream inputs.
type Container struct {
	reader *zip.Reader
}

// Entry is one archive member with its decompressed content.
type Entry struct {
	Name string
	Data []byte
}

// Open reads a zip container from a byte stream.
func Open(r io.Reader) (*Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("archive: read container: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("archive: open container: %w", err)
	}
	return &Container{reader: zr}, nil
}

// OpenPath reads a zip container from the filesystem.
func OpenPath(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %q: %w", path, err)
	}
	defer f.Close()
	return Open(f)
}

// Names lists the member names in archive order.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.reader.File))
	for _, f := range c.reader.File {
		names = append(names, f.Name)
	}
	return names
}

// Entries returns the members accepted by filter, in archive order, with
// their content decompressed. A nil filter selects every member.
func (c *Container) Entries(filter func(name string) bool) ([]Entry, error) {
	var entries []Entry
	for _, f := range c.reader.File {
		if filter != nil && !filter(f.Name) {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: f.Name, Data: data})
	}
	return entries, nil
}

// Rewrite writes a copy of the container to w, replacing the members named
// in modified and carrying every other member over untouched. Member order,
// names and directory layout match the source archive.
func (c *Container) Rewrite(w io.Writer, modified map[string][]byte) error {
	zw := zip.NewWriter(w)
	for _, f := range c.reader.File {
		if data, ok := modified[f.Name]; ok {
			header := f.FileHeader
			out, err := zw.CreateHeader(&header)
			if err != nil {
				return fmt.Errorf("archive: create member %q: %w", f.Name, err)
			}
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("archive: write member %q: %w", f.Name, err)
			}
			continue
		}
		if err := zw.Copy(f); err != nil {
			return fmt.Errorf("archive: copy member %q: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: finalize container: %w", err)
	}
	return nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open member %q: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read member %q: %w", f.Name, err)
	}
	return data, nil
}

// IsXML reports whether a member name looks like an XML part.
func IsXML(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xml")
}
