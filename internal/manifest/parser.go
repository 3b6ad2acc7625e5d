package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/archive"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadAppManifest locates manifest.json (at the root or in any folder) and
// parses it.
func ReadAppManifest(a *archive.Archive) (*AppManifest, error) {
	entry, ok := a.Find(archive.NameMatcher(ManifestFile))
	if !ok {
		return nil, ErrMissingManifest
	}

	data, err := entry.Bytes()
	if err != nil {
		return nil, err
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
	}
	m := liftAppManifest(doc)
	m.Raw = data
	return m, nil
}

// AgentFile returns the declarative agent file name referenced by the app
// manifest. Only the first reference is honored; DefaultAgentFile is used when
// there is none.
func AgentFile(app *AppManifest) string {
	if app == nil || app.CopilotAgents == nil || len(app.CopilotAgents.DeclarativeAgents) == 0 {
		return DefaultAgentFile
	}
	if file := strings.TrimSpace(app.CopilotAgents.DeclarativeAgents[0].File); file != "" {
		return file
	}
	return DefaultAgentFile
}

// ReadDeclarativeAgent locates the agent descriptor named by the app manifest
// and parses it. The version field must start with "v".
func ReadDeclarativeAgent(a *archive.Archive, app *AppManifest) (*DeclarativeAgent, error) {
	file := AgentFile(app)

	entry, ok := a.Find(archive.NameMatcher(file))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingAgentDescriptor, file)
	}

	data, err := entry.Bytes()
	if err != nil {
		return nil, err
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
	}
	if err := checkVersion(doc["version"]); err != nil {
		return nil, err
	}

	agent := liftDeclarativeAgent(doc)
	agent.Source = entry.Name()
	agent.Raw = data
	return agent, nil
}

// checkVersion enforces the "v" prefix on the descriptor's version value.
func checkVersion(v any) error {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return fmt.Errorf("%w: <missing>", ErrUnsupportedSchemaVersion)
		}
		return fmt.Errorf("%w: %v", ErrUnsupportedSchemaVersion, v)
	}
	if !strings.HasPrefix(s, "v") {
		return fmt.Errorf("%w: %s", ErrUnsupportedSchemaVersion, s)
	}
	return nil
}

// decodeJSON parses a UTF-8 JSON document, tolerating a leading byte order
// mark. Numbers are kept as json.Number so ids keep their exact text. A
// document that is valid JSON but not an object yields a nil map.
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedJSON)
	}

	doc, _ := v.(map[string]any)
	return doc, nil
}
