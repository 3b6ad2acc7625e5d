package manifest

import "errors"

var (
	// ErrMissingManifest is returned when no manifest.json entry exists.
	ErrMissingManifest = errors.New("manifest.json not found in the package")

	// ErrMissingAgentDescriptor is returned when the referenced (or default)
	// declarative agent file is not in the package.
	ErrMissingAgentDescriptor = errors.New("declarative agent file not found in the package")

	// ErrMalformedJSON is returned when an entry does not parse as JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrUnsupportedSchemaVersion is returned when the agent descriptor's
	// version is absent or does not start with "v".
	ErrUnsupportedSchemaVersion = errors.New("unexpected declarative agent schema version")
)
