// Package solution builds a minimal unmanaged Dataverse solution package
// (solution.xml, customizations.xml, [Content_Types].xml) that can be imported
// into a Power Platform environment as an empty shell for a converted agent.
package solution
