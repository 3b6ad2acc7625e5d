package solution

import (
	"regexp"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/branding"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/manifest"
)

const (
	// UniqueNamePrefix starts every derived solution unique name.
	UniqueNamePrefix = "m3652cs_"
	// MaxUniqueNameLength is the Dataverse limit on solution unique names.
	MaxUniqueNameLength = 100
	// DefaultVersion is stamped on every derived solution. It is not bumped
	// between runs; set solution.version to override.
	DefaultVersion = "1.0.0.0"
	// DefaultLanguageCode is the LCID for en-US.
	DefaultLanguageCode = 1033
	// DefaultFriendlyName is used when neither descriptor carries a name.
	DefaultFriendlyName = "Converted Copilot"
	// DefaultPublisherFriendlyName is the publisher display name.
	DefaultPublisherFriendlyName = "M365 → Copilot Studio Converter"
	// DefaultCustomizationPrefix is the publisher customization prefix.
	DefaultCustomizationPrefix = "m365"

	fallbackSlug = "copilot"
)

// Metadata identifies a solution package and its publisher.
type Metadata struct {
	UniqueName            string
	FriendlyName          string
	Version               string
	PublisherUniqueName   string
	PublisherFriendlyName string
	CustomizationPrefix   string
	LanguageCode          int // LCID; 0 means DefaultLanguageCode
	Managed               bool
}

// Overrides replaces individual derived defaults. Nil fields keep the default.
type Overrides struct {
	Version               *string
	PublisherUniqueName   *string
	PublisherFriendlyName *string
	CustomizationPrefix   *string
	LanguageCode          *int
	Managed               *bool
}

// Normalize fills the friendly names and language code when absent.
func (m Metadata) Normalize() Metadata {
	if m.FriendlyName == "" {
		m.FriendlyName = m.UniqueName
	}
	if m.PublisherFriendlyName == "" {
		m.PublisherFriendlyName = m.PublisherUniqueName
	}
	if m.LanguageCode == 0 {
		m.LanguageCode = DefaultLanguageCode
	}
	return m
}

// Apply returns m with every non-nil override set.
func (o Overrides) Apply(m Metadata) Metadata {
	if o.Version != nil {
		m.Version = *o.Version
	}
	if o.PublisherUniqueName != nil {
		m.PublisherUniqueName = *o.PublisherUniqueName
	}
	if o.PublisherFriendlyName != nil {
		m.PublisherFriendlyName = *o.PublisherFriendlyName
	}
	if o.CustomizationPrefix != nil {
		m.CustomizationPrefix = *o.CustomizationPrefix
	}
	if o.LanguageCode != nil {
		m.LanguageCode = *o.LanguageCode
	}
	if o.Managed != nil {
		m.Managed = *o.Managed
	}
	return m
}

// Derive computes solution metadata from the app and agent descriptors.
// The unique name prefers the agent id, then the agent's appId, then the app
// id, then the agent or app display name.
func Derive(app *manifest.AppManifest, agent *manifest.DeclarativeAgent) Metadata {
	var agentID, agentAppID, agentName, appID, appShort string
	if agent != nil {
		agentID, agentAppID, agentName = agent.ID, agent.AppID, agent.Name
	}
	if app != nil {
		appID, appShort = app.ID, app.Name.Short
	}

	base := firstNonEmpty(agentID, agentAppID, appID)
	if base == "" {
		base = Slug(firstNonEmpty(agentName, appShort, fallbackSlug))
	}
	slug := Slug(base)
	if slug == "" {
		slug = fallbackSlug
	}

	return Metadata{
		UniqueName:            truncate(UniqueNamePrefix+slug, MaxUniqueNameLength),
		FriendlyName:          firstNonEmpty(agentName, appShort, DefaultFriendlyName),
		Version:               DefaultVersion,
		PublisherUniqueName:   branding.PublisherName(),
		PublisherFriendlyName: DefaultPublisherFriendlyName,
		CustomizationPrefix:   DefaultCustomizationPrefix,
		LanguageCode:          DefaultLanguageCode,
		Managed:               false,
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, collapses every run of characters outside [a-z0-9] into
// a single underscore and trims leading and trailing underscores.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "_"), "_")
}

// truncate cuts s to n bytes. Callers pass slugged ASCII only.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
