package convert

import (
	"fmt"
	"os"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/archive"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/manifest"
	"github.com/sirupsen/logrus"
)

// Package is a parsed agent package.
type Package struct {
	App      *manifest.AppManifest
	Agent    *manifest.DeclarativeAgent
	Entries  []string
	Warnings []string
}

// LoadFile reads and parses the package at path.
func LoadFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading package %s: %w", path, err)
	}
	return Load(data)
}

// Load parses a package from zip bytes. The manifest is read first because
// it names the agent descriptor.
func Load(data []byte) (*Package, error) {
	a, err := archive.Open(data)
	if err != nil {
		return nil, err
	}

	app, err := manifest.ReadAppManifest(a)
	if err != nil {
		return nil, err
	}

	agent, err := manifest.ReadDeclarativeAgent(a, app)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"app":     app.Name.Short,
		"agent":   agent.Name,
		"source":  agent.Source,
		"version": agent.Version,
	}).Debug("parsed package descriptors")

	return &Package{
		App:      app,
		Agent:    agent,
		Entries:  a.Names(),
		Warnings: warnings(app, agent),
	}, nil
}

// warnings collects advisory findings that never fail a conversion.
func warnings(app *manifest.AppManifest, agent *manifest.DeclarativeAgent) []string {
	var out []string

	if ca := app.CopilotAgents; ca != nil {
		if n := len(ca.DeclarativeAgents); n > 1 {
			out = append(out, fmt.Sprintf("manifest lists %d declarative agents; only %q is converted", n, manifest.AgentFile(app)))
		}
		if n := len(ca.CustomEngineAgents); n > 0 {
			out = append(out, fmt.Sprintf("manifest lists %d custom engine agents; they are not converted", n))
		}
	}

	if !manifest.IsKnownSchema(agent.Version) {
		out = append(out, fmt.Sprintf("declarative agent schema %s is outside the supported range %s", agent.Version, manifest.SupportedSchemas))
	}

	result, err := manifest.Validate(agent.Raw)
	if err != nil {
		out = append(out, fmt.Sprintf("schema validation skipped: %v", err))
	} else {
		for _, issue := range result.Issues {
			out = append(out, "schema: "+issue.String())
		}
	}

	return out
}

// BotName picks the display name used when provisioning.
func BotName(app *manifest.AppManifest, agent *manifest.DeclarativeAgent) string {
	return firstNonEmpty(agent.Name, app.Name.Short, "Converted Copilot")
}

// BotDescription picks the description used when provisioning.
func BotDescription(app *manifest.AppManifest, agent *manifest.DeclarativeAgent) string {
	return firstNonEmpty(agent.Description, app.Description.Full, app.Description.Short)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
