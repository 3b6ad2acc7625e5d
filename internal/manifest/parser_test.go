package manifest

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `{
  "manifestVersion": "1.19",
  "id": "00000000-0000-0000-0000-000000000001",
  "name": { "short": "HR App", "full": "Contoso HR App" },
  "description": { "short": "HR", "full": "Contoso HR assistant" },
  "copilotAgents": { "declarativeAgents": [{ "id": "hr", "file": "custom_agent.json" }] }
}`

const testAgent = `{
  "version": "v1.5",
  "name": "HR Helper",
  "description": "Answers HR questions.",
  "instructions": "Be precise.",
  "conversation_starters": [{ "title": "Leave", "text": "How much leave?" }, {}],
  "capabilities": [{ "name": "WebSearch", "sites": [{ "url": "https://contoso.com" }] }],
  "behavior_overrides": { "special_instructions": { "discourage_model_knowledge": true } }
}`

// testArchive builds an in-memory package from name/content pairs.
func testArchive(t *testing.T, files map[string]string) *archive.Archive {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	a, err := archive.Open(buf.Bytes())
	require.NoError(t, err)
	return a
}

func TestReadAppManifest(t *testing.T) {
	a := testArchive(t, map[string]string{"appPackage/MANIFEST.json": testManifest})

	m, err := ReadAppManifest(a)
	require.NoError(t, err)
	assert.Equal(t, "1.19", m.ManifestVersion)
	assert.Equal(t, "HR App", m.Name.Short)
	assert.Equal(t, "Contoso HR assistant", m.Description.Full)
	assert.Equal(t, "custom_agent.json", AgentFile(m))
	assert.Equal(t, testManifest, string(m.Raw))
}

func TestReadAppManifest_Missing(t *testing.T) {
	a := testArchive(t, map[string]string{"declarativeAgent.json": testAgent})

	_, err := ReadAppManifest(a)
	assert.ErrorIs(t, err, ErrMissingManifest)
}

func TestReadAppManifest_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":     "{ not json",
		"trailing data": `{"name": {"short": "x"}} }`,
	} {
		t.Run(name, func(t *testing.T) {
			a := testArchive(t, map[string]string{"manifest.json": body})
			_, err := ReadAppManifest(a)
			assert.ErrorIs(t, err, ErrMalformedJSON)
		})
	}
}

func TestReadAppManifest_ByteOrderMark(t *testing.T) {
	a := testArchive(t, map[string]string{"manifest.json": "\ufeff" + testManifest})

	m, err := ReadAppManifest(a)
	require.NoError(t, err)
	assert.Equal(t, "HR App", m.Name.Short)
}

func TestReadAppManifest_UnexpectedFieldTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want AppManifest
	}{
		{
			name: "name as string",
			body: `{"name": "x", "description": {"short": "d"}}`,
			want: AppManifest{Name: LocalizedText{Short: "x"}, Description: LocalizedText{Short: "d"}},
		},
		{
			name: "numeric id and version",
			body: `{"id": 42, "manifestVersion": 1.19, "name": {"short": ["x"]}}`,
			want: AppManifest{ID: "42", ManifestVersion: "1.19"},
		},
		{
			name: "agent refs of the wrong shape",
			body: `{"copilotAgents": {"declarativeAgents": ["a.json", {"file": 7}]}}`,
			want: AppManifest{CopilotAgents: &CopilotAgents{DeclarativeAgents: []AgentRef{{}, {File: "7"}}}},
		},
		{
			name: "not an object",
			body: `[1, 2]`,
			want: AppManifest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArchive(t, map[string]string{"manifest.json": tt.body})
			m, err := ReadAppManifest(a)
			require.NoError(t, err)
			m.Raw = nil
			assert.Equal(t, &tt.want, m)
		})
	}
}

func TestAgentFile(t *testing.T) {
	tests := []struct {
		name string
		app  *AppManifest
		want string
	}{
		{"nil manifest", nil, DefaultAgentFile},
		{"no copilotAgents", &AppManifest{}, DefaultAgentFile},
		{"empty list", &AppManifest{CopilotAgents: &CopilotAgents{}}, DefaultAgentFile},
		{"blank file", &AppManifest{CopilotAgents: &CopilotAgents{DeclarativeAgents: []AgentRef{{File: " "}}}}, DefaultAgentFile},
		{"explicit", &AppManifest{CopilotAgents: &CopilotAgents{DeclarativeAgents: []AgentRef{{File: "custom_agent.json"}}}}, "custom_agent.json"},
		{"first wins", &AppManifest{CopilotAgents: &CopilotAgents{DeclarativeAgents: []AgentRef{{File: "a.json"}, {File: "b.json"}}}}, "a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgentFile(tt.app))
		})
	}
}

func TestReadDeclarativeAgent_Referenced(t *testing.T) {
	a := testArchive(t, map[string]string{
		"manifest.json":                testManifest,
		"appPackage/custom_agent.json": testAgent,
		"declarativeAgent.json":        `{"version": "v9.9", "name": "wrong one"}`,
	})
	app, err := ReadAppManifest(a)
	require.NoError(t, err)

	agent, err := ReadDeclarativeAgent(a, app)
	require.NoError(t, err)
	assert.Equal(t, "HR Helper", agent.Name)
	assert.Equal(t, "appPackage/custom_agent.json", agent.Source)
	assert.Equal(t, []ConversationStarter{{Title: "Leave", Text: "How much leave?"}, {}}, agent.ConversationStarters)

	require.Len(t, agent.Capabilities, 1)
	assert.Equal(t, "WebSearch", agent.Capabilities[0].Name())
	assert.Contains(t, agent.Capabilities[0], "sites", "capability lost its nested fields")
	assert.NotNil(t, agent.BehaviorOverrides)
	assert.Equal(t, testAgent, string(agent.Raw))
}

func TestReadDeclarativeAgent_UnexpectedFieldTypes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, agent *DeclarativeAgent)
	}{
		{
			name: "numeric starter title",
			body: `{"version": "v1.5", "conversation_starters": [{"title": 1, "text": "go"}, "loose"]}`,
			check: func(t *testing.T, agent *DeclarativeAgent) {
				assert.Equal(t, []ConversationStarter{{Title: "1", Text: "go"}, {}}, agent.ConversationStarters)
			},
		},
		{
			name: "numeric agent id",
			body: `{"version": "v1.5", "id": 12345678901234567890, "appId": "app-9"}`,
			check: func(t *testing.T, agent *DeclarativeAgent) {
				assert.Equal(t, "12345678901234567890", agent.ID)
				assert.Equal(t, "app-9", agent.AppID)
			},
		},
		{
			name: "structured name and scalar capabilities",
			body: `{"version": "v1.5", "name": {"en": "x"}, "instructions": true, "capabilities": ["WebSearch", {"name": "Email"}]}`,
			check: func(t *testing.T, agent *DeclarativeAgent) {
				assert.Empty(t, agent.Name)
				assert.Equal(t, "true", agent.Instructions)
				require.Len(t, agent.Capabilities, 1)
				assert.Equal(t, "Email", agent.Capabilities[0].Name())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArchive(t, map[string]string{DefaultAgentFile: tt.body})
			agent, err := ReadDeclarativeAgent(a, &AppManifest{})
			require.NoError(t, err)
			tt.check(t, agent)
		})
	}
}

func TestReadDeclarativeAgent_DefaultName(t *testing.T) {
	a := testArchive(t, map[string]string{
		"manifest.json":         `{"name": {"short": "x"}, "description": {"short": "y"}}`,
		"DeclarativeAgent.JSON": testAgent,
	})
	app, err := ReadAppManifest(a)
	require.NoError(t, err)

	_, err = ReadDeclarativeAgent(a, app)
	assert.NoError(t, err)
}

func TestReadDeclarativeAgent_Missing(t *testing.T) {
	a := testArchive(t, map[string]string{"manifest.json": testManifest})
	app, err := ReadAppManifest(a)
	require.NoError(t, err)

	_, err = ReadDeclarativeAgent(a, app)
	assert.ErrorIs(t, err, ErrMissingAgentDescriptor)
	assert.ErrorContains(t, err, "custom_agent.json")
}

func TestReadDeclarativeAgent_LiteralFileName(t *testing.T) {
	app := &AppManifest{CopilotAgents: &CopilotAgents{DeclarativeAgents: []AgentRef{{File: "agent.v1+(beta).json"}}}}
	a := testArchive(t, map[string]string{"agentXv1(beta).json": testAgent})

	_, err := ReadDeclarativeAgent(a, app)
	assert.ErrorIs(t, err, ErrMissingAgentDescriptor)

	a = testArchive(t, map[string]string{"pkg/agent.v1+(beta).json": testAgent})
	_, err = ReadDeclarativeAgent(a, app)
	assert.NoError(t, err)
}

func TestReadDeclarativeAgent_Versions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"v prefix", `{"version": "v1.5", "name": "a"}`, nil},
		{"no prefix", `{"version": "1.5", "name": "a"}`, ErrUnsupportedSchemaVersion},
		{"missing", `{"name": "a"}`, ErrUnsupportedSchemaVersion},
		{"number", `{"version": 1.5, "name": "a"}`, ErrUnsupportedSchemaVersion},
		{"not an object", `"v1.5"`, ErrUnsupportedSchemaVersion},
		{"malformed", `{"version": "v1.5",`, ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArchive(t, map[string]string{DefaultAgentFile: tt.body})
			_, err := ReadDeclarativeAgent(a, &AppManifest{})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadDeclarativeAgent_VersionNamedInError(t *testing.T) {
	a := testArchive(t, map[string]string{DefaultAgentFile: `{"version": "1.5"}`})

	_, err := ReadDeclarativeAgent(a, nil)
	assert.EqualError(t, err, "unexpected declarative agent schema version: 1.5")
}
