// Package cli defines the Cobra command tree for the m3652cs CLI. Each file
// in this package registers one top-level command (convert, inspect, validate,
// etc.) with the root command. Command implementations delegate to internal
// packages for the conversion itself and only handle flags, output formatting
// and exit status.
package cli
