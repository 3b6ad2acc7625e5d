// Package preview renders a parsed agent package for the terminal: a styled
// summary, the converted instructions as formatted markdown, and a heading
// outline of those instructions.
package preview
