// Package manifest reads the two descriptors inside a Microsoft 365 agent
// package: the application manifest (manifest.json) and the declarative agent
// descriptor it references. It also provides advisory JSON Schema validation
// of the agent descriptor against the schema embedded in schema/.
package manifest
