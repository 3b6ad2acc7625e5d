package artifact

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func testAgent() *manifest.DeclarativeAgent {
	return &manifest.DeclarativeAgent{
		Version:      "v1.5",
		Name:         "HR Helper",
		Description:  "Answers HR questions.",
		Instructions: "Be precise.\nCite sources.",
		ConversationStarters: []manifest.ConversationStarter{
			{Title: `Say "hi"`, Text: ""},
			{Title: "Leave", Text: "How many days, roughly?"},
		},
		Capabilities: []manifest.Capability{
			{"name": "WebSearch", "sites": []any{map[string]any{"url": "https://contoso.com/?a=1&b=<2>"}}},
		},
	}
}

// headings returns the text of every heading in a Markdown document.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	src := []byte(doc)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if tn, ok := c.(*ast.Text); ok {
					sb.Write(tn.Segment.Value(src))
				}
			}
			out = append(out, sb.String())
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return out
}

func TestInstructionsMarkdown_Exact(t *testing.T) {
	got := InstructionsMarkdown(testAgent())
	want := "# Instructions\n\n> Converted from Microsoft 365 declarative agent schema v1.5\n" +
		"\n## Name\nHR Helper\n" +
		"\n## Description\nAnswers HR questions.\n" +
		"\n## Instructions\nBe precise.\nCite sources.\n"
	assert.Equal(t, want, got)
}

func TestInstructionsMarkdown_SectionsAlwaysPresent(t *testing.T) {
	agents := []*manifest.DeclarativeAgent{
		testAgent(),
		{Version: "v1.0"},
		{Version: "v1.2", Name: "Only a name"},
	}

	for _, agent := range agents {
		doc := InstructionsMarkdown(agent)
		assert.Equal(t, []string{"Instructions", "Name", "Description", "Instructions"}, headings(t, doc))
	}
}

func TestConversationStartersCSV(t *testing.T) {
	got := ConversationStartersCSV(testAgent())
	lines := strings.Split(got, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "title,text", lines[0])
	assert.Equal(t, `"Say ""hi""",""`, lines[1])
	assert.Equal(t, `"Leave","How many days, roughly?"`, lines[2])
}

func TestConversationStartersCSV_RowCount(t *testing.T) {
	for n := 0; n < 5; n++ {
		agent := &manifest.DeclarativeAgent{Version: "v1.5"}
		for i := 0; i < n; i++ {
			agent.ConversationStarters = append(agent.ConversationStarters, manifest.ConversationStarter{})
		}
		lines := strings.Split(ConversationStartersCSV(agent), "\n")
		require.Len(t, lines, n+1)
		for _, row := range lines[1:] {
			assert.Equal(t, `"",""`, row)
		}
	}
}

func TestCapabilitiesJSON_EmptyList(t *testing.T) {
	data, err := CapabilitiesJSON(&manifest.DeclarativeAgent{Version: "v1.5"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	caps, ok := decoded["capabilities"].([]any)
	require.True(t, ok, "capabilities must be an array, got %T", decoded["capabilities"])
	assert.Empty(t, caps)
	assert.Equal(t, "v1.5", decoded["version"])
	assert.Equal(t, CapabilityNotes, decoded["notes"])
}

func TestCapabilitiesJSON_Verbatim(t *testing.T) {
	data, err := CapabilitiesJSON(testAgent())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"url": "https://contoso.com/?a=1&b=<2>"`)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"version\": \"v1.5\","))
}

func TestRender(t *testing.T) {
	app := &manifest.AppManifest{Raw: []byte(`{"name":{"short":"x"}}`)}
	agent := testAgent()
	agent.Raw = []byte(`{"version":"v1.5"}`)

	set, err := Render(context.Background(), app, agent)
	require.NoError(t, err)

	assert.Equal(t, InstructionsMarkdown(agent), set.Instructions)
	assert.Equal(t, ConversationStartersCSV(agent), set.ConversationStarters)
	assert.Equal(t, app.Raw, set.AppManifest)
	assert.Equal(t, agent.Raw, set.Agent)
	assert.NotEmpty(t, set.Capabilities)
}

func TestRender_InMemoryDescriptors(t *testing.T) {
	set, err := Render(context.Background(), &manifest.AppManifest{Name: manifest.LocalizedText{Short: "App"}}, testAgent())
	require.NoError(t, err)

	var app map[string]any
	require.NoError(t, json.Unmarshal(set.AppManifest, &app))
	assert.Equal(t, "App", app["name"].(map[string]any)["short"])
}

func TestRender_DoesNotMutateAgent(t *testing.T) {
	agent := &manifest.DeclarativeAgent{Version: "v1.5"}
	_, err := Render(context.Background(), &manifest.AppManifest{}, agent)
	require.NoError(t, err)
	assert.Nil(t, agent.Capabilities)
}
