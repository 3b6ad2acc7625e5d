package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/manifest"
	"golang.org/x/sync/errgroup"
)

// CapabilityNotes is the advisory attached to every capability summary.
const CapabilityNotes = "Use Copilot Studio to re-add equivalent capabilities (Web search, OneDrive/SharePoint, Graph connectors, Code Interpreter, etc.)."

// CapabilitySummary is the content of capabilities.json.
type CapabilitySummary struct {
	Version      string                `json:"version"`
	Capabilities []manifest.Capability `json:"capabilities"`
	Notes        string                `json:"notes"`
}

// Set is one rendered artifact set plus the source descriptors.
type Set struct {
	Instructions         string
	ConversationStarters string
	Capabilities         []byte
	AppManifest          []byte
	Agent                []byte
}

// InstructionsMarkdown renders the instructions document. Every section is
// emitted even when its source field is empty.
func InstructionsMarkdown(agent *manifest.DeclarativeAgent) string {
	header := "# Instructions\n\n> Converted from Microsoft 365 declarative agent schema " + agent.Version + "\n"
	return strings.Join([]string{
		header,
		"## Name",
		agent.Name,
		"",
		"## Description",
		agent.Description,
		"",
		"## Instructions",
		agent.Instructions,
		"",
	}, "\n")
}

// ConversationStartersCSV renders a title,text table with one row per starter.
// Every cell is quoted.
func ConversationStartersCSV(agent *manifest.DeclarativeAgent) string {
	rows := make([]string, 0, len(agent.ConversationStarters)+1)
	rows = append(rows, "title,text")
	for _, s := range agent.ConversationStarters {
		rows = append(rows, csvRow(s.Title, s.Text))
	}
	return strings.Join(rows, "\n")
}

// Capabilities builds the capability summary. Capabilities is never nil.
func Capabilities(agent *manifest.DeclarativeAgent) CapabilitySummary {
	caps := agent.Capabilities
	if caps == nil {
		caps = []manifest.Capability{}
	}
	return CapabilitySummary{
		Version:      agent.Version,
		Capabilities: caps,
		Notes:        CapabilityNotes,
	}
}

// CapabilitiesJSON renders the capability summary as indented JSON.
func CapabilitiesJSON(agent *manifest.DeclarativeAgent) ([]byte, error) {
	return marshalIndent(Capabilities(agent))
}

// Render produces the full artifact set. The three renders are independent
// and run concurrently.
func Render(ctx context.Context, app *manifest.AppManifest, agent *manifest.DeclarativeAgent) (*Set, error) {
	set := &Set{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		set.Instructions = InstructionsMarkdown(agent)
		return nil
	})
	g.Go(func() error {
		set.ConversationStarters = ConversationStartersCSV(agent)
		return nil
	})
	g.Go(func() error {
		data, err := CapabilitiesJSON(agent)
		if err != nil {
			return fmt.Errorf("rendering capabilities: %w", err)
		}
		set.Capabilities = data
		return nil
	})
	g.Go(func() error {
		data, err := sourceBytes(app.Raw, app)
		if err != nil {
			return fmt.Errorf("copying app manifest: %w", err)
		}
		set.AppManifest = data
		return nil
	})
	g.Go(func() error {
		data, err := sourceBytes(agent.Raw, agent)
		if err != nil {
			return fmt.Errorf("copying agent descriptor: %w", err)
		}
		set.Agent = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// sourceBytes returns the descriptor bytes as read from the package, falling
// back to a re-encoding for descriptors built in memory.
func sourceBytes(raw []byte, v any) ([]byte, error) {
	if raw != nil {
		return raw, nil
	}
	return marshalIndent(v)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func csvRow(cols ...string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
