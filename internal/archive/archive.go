package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Matcher reports whether an entry path should be selected.
type Matcher func(path string) bool

// Archive is a read-only view over the entries of a zip package.
type Archive struct {
	reader *zip.Reader
}

// Entry is a single file inside an Archive.
type Entry struct {
	file *zip.File
}

// Open decodes data as a zip archive.
func Open(data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	return &Archive{reader: r}, nil
}

// Find returns the first entry, in archive order, whose path satisfies match.
// Directory entries are never returned.
func (a *Archive) Find(match Matcher) (*Entry, bool) {
	for _, f := range a.reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if match(f.Name) {
			return &Entry{file: f}, true
		}
	}
	return nil, false
}

// Names lists every file path in the archive in archive order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.reader.File))
	for _, f := range a.reader.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names
}

// Name returns the entry's full path inside the archive.
func (e *Entry) Name() string {
	return e.file.Name
}

// Bytes reads and returns the decompressed entry contents.
func (e *Entry) Bytes() ([]byte, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %s: %w", e.file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", e.file.Name, err)
	}
	return data, nil
}

// NameMatcher matches an entry whose path is exactly name, or ends with
// "/"+name, compared case-insensitively. The name is taken literally.
func NameMatcher(name string) Matcher {
	want := strings.ToLower(name)
	return func(path string) bool {
		p := strings.ToLower(path)
		if p == want {
			return true
		}
		return strings.HasSuffix(p, "/"+want)
	}
}
