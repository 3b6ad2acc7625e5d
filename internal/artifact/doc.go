// Package artifact renders a declarative agent into Copilot Studio artifacts
// (instructions.md, conversation-starters.csv, capabilities.json) and persists
// them, together with verbatim copies of the source descriptors, through a Sink.
package artifact
