// Package convert runs the end-to-end conversion: read the package, parse and
// check both descriptors, render the Copilot Studio artifacts, optionally
// build a Dataverse solution, persist everything, and optionally provision a
// bot. Every step is a gate; nothing is written unless all renders succeed.
package convert
