package artifact

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
)

// Output layout, relative to the sink root.
const (
	StudioDir                = "copilot-studio"
	InstructionsFile         = "copilot-studio/instructions.md"
	ConversationStartersFile = "copilot-studio/conversation-starters.csv"
	CapabilitiesFile         = "copilot-studio/capabilities.json"
	AppManifestCopyFile      = "m365.manifest.json"
	AgentCopyFile            = "declarativeAgent.json"
)

// Sink persists named byte buffers under a root. Paths are slash-separated
// and relative to the root; existing files are overwritten.
type Sink interface {
	MkdirAll(dir string) error
	WriteFile(name string, data []byte) error
}

// DirSink writes to a directory on the local filesystem.
type DirSink struct {
	Root string
}

// MkdirAll creates dir (and parents) under the root.
func (s DirSink) MkdirAll(dir string) error {
	full := filepath.Join(s.Root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", full, err)
	}
	return nil
}

// WriteFile writes data to name under the root, creating parent directories.
func (s DirSink) WriteFile(name string, data []byte) error {
	if err := s.MkdirAll(path.Dir(name)); err != nil {
		return err
	}
	full := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", full, err)
	}
	return nil
}

// MemorySink collects writes in memory. It backs dry runs.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// MkdirAll is a no-op; directories are implied by file names.
func (s *MemorySink) MkdirAll(string) error { return nil }

// WriteFile records a copy of data under name.
func (s *MemorySink) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return nil
}

// File returns the bytes written under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Names lists written files in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteSet persists a rendered set in the standard output layout and returns
// the names written.
func WriteSet(sink Sink, set *Set) ([]string, error) {
	if err := sink.MkdirAll(StudioDir); err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{InstructionsFile, []byte(set.Instructions)},
		{ConversationStartersFile, []byte(set.ConversationStarters)},
		{CapabilitiesFile, set.Capabilities},
		{AppManifestCopyFile, set.AppManifest},
		{AgentCopyFile, set.Agent},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := sink.WriteFile(f.name, f.data); err != nil {
			return written, err
		}
		written = append(written, f.name)
	}
	return written, nil
}
