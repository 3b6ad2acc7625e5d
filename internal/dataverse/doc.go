// Package dataverse creates Copilot Studio bot records through the Dataverse
// Web API, authenticating with an Entra ID client-credentials grant.
package dataverse
