package manifest

import (
	"encoding/json"
	"strconv"
)

// Descriptors are decoded into generic JSON values and lifted field by field.
// A field holding an unexpected type reads as its zero value instead of
// failing the whole document; scalars are kept as their text.

func liftAppManifest(doc map[string]any) *AppManifest {
	m := &AppManifest{
		ManifestVersion: text(doc["manifestVersion"]),
		ID:              text(doc["id"]),
		Name:            localized(doc["name"]),
		Description:     localized(doc["description"]),
		Developer:       doc["developer"],
	}

	if ca, ok := doc["copilotAgents"].(map[string]any); ok {
		agents := &CopilotAgents{CustomEngineAgents: list(ca["customEngineAgents"])}
		for _, item := range list(ca["declarativeAgents"]) {
			ref, _ := item.(map[string]any)
			agents.DeclarativeAgents = append(agents.DeclarativeAgents, AgentRef{
				ID:   text(ref["id"]),
				File: text(ref["file"]),
			})
		}
		m.CopilotAgents = agents
	}
	return m
}

func liftDeclarativeAgent(doc map[string]any) *DeclarativeAgent {
	agent := &DeclarativeAgent{
		Version:           text(doc["version"]),
		ID:                text(doc["id"]),
		AppID:             text(doc["appId"]),
		Name:              text(doc["name"]),
		Description:       text(doc["description"]),
		Instructions:      text(doc["instructions"]),
		BehaviorOverrides: doc["behavior_overrides"],
	}

	for _, item := range list(doc["conversation_starters"]) {
		s, _ := item.(map[string]any)
		agent.ConversationStarters = append(agent.ConversationStarters, ConversationStarter{
			Title: text(s["title"]),
			Text:  text(s["text"]),
		})
	}

	// Capabilities are carried verbatim; only object entries can be.
	for _, item := range list(doc["capabilities"]) {
		if c, ok := item.(map[string]any); ok {
			agent.Capabilities = append(agent.Capabilities, Capability(c))
		}
	}
	return agent
}

// text returns the string form of a JSON scalar, or "" for null, objects
// and arrays.
func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// localized reads a {short, full} pair. A bare string is taken as the short
// form.
func localized(v any) LocalizedText {
	switch v := v.(type) {
	case map[string]any:
		return LocalizedText{Short: text(v["short"]), Full: text(v["full"])}
	case string:
		return LocalizedText{Short: v}
	default:
		return LocalizedText{}
	}
}

func list(v any) []any {
	items, _ := v.([]any)
	return items
}
