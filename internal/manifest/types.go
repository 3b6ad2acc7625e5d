package manifest

// AppManifest is the Teams/Microsoft 365 application manifest (manifest.json).
// Only the fields the converter reads are lifted; Raw keeps the entry bytes.
type AppManifest struct {
	ManifestVersion string         `json:"manifestVersion"`
	ID              string         `json:"id,omitempty"`
	Name            LocalizedText  `json:"name"`
	Description     LocalizedText  `json:"description"`
	Developer       any            `json:"developer,omitempty"`
	CopilotAgents   *CopilotAgents `json:"copilotAgents,omitempty"`

	Raw []byte `json:"-"`
}

// LocalizedText is the short/full pair used for names and descriptions.
type LocalizedText struct {
	Short string `json:"short"`
	Full  string `json:"full,omitempty"`
}

// CopilotAgents lists the agent descriptors bundled with the app.
type CopilotAgents struct {
	DeclarativeAgents  []AgentRef `json:"declarativeAgents,omitempty"`
	CustomEngineAgents []any      `json:"customEngineAgents,omitempty"`
}

// AgentRef points at an agent descriptor file inside the package.
type AgentRef struct {
	ID   string `json:"id,omitempty"`
	File string `json:"file"`
}

// DeclarativeAgent is the declarative agent descriptor (schema v1.x).
type DeclarativeAgent struct {
	Version              string                `json:"version"`
	ID                   string                `json:"id,omitempty"`
	AppID                string                `json:"appId,omitempty"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	Instructions         string                `json:"instructions"`
	ConversationStarters []ConversationStarter `json:"conversation_starters,omitempty"`
	Capabilities         []Capability          `json:"capabilities,omitempty"`
	BehaviorOverrides    any                   `json:"behavior_overrides,omitempty"`

	// Source is the archive path the descriptor was read from.
	Source string `json:"-"`
	Raw    []byte `json:"-"`
}

// ConversationStarter is a suggested prompt shown to users.
type ConversationStarter struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Capability is an open-ended capability record. It is carried verbatim and
// never destructured beyond reading its name.
type Capability map[string]any

// Name returns the capability's "name" field, or "" when absent or not a string.
func (c Capability) Name() string {
	name, _ := c["name"].(string)
	return name
}

const (
	// ManifestFile is the application manifest entry name.
	ManifestFile = "manifest.json"
	// DefaultAgentFile is used when the manifest does not reference an agent.
	DefaultAgentFile = "declarativeAgent.json"
)
