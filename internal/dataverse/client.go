package dataverse

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultAuthorityHost is the Entra ID (Azure AD) login endpoint.
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	apiPath              = "/api/data/v9.2"
	userAgent            = "m3652cs"
)

// Credentials identify the Dataverse environment and the app registration
// used to call it.
type Credentials struct {
	URL          string // e.g. https://contoso.crm.dynamics.com
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Missing returns the names of the credential fields that are empty, using
// their environment variable spelling.
func (c Credentials) Missing() []string {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "DATAVERSE_URL")
	}
	if c.TenantID == "" {
		missing = append(missing, "TENANT_ID")
	}
	if c.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	return missing
}

// Client talks to one Dataverse environment.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        oauth2.TokenSource
	credentials   *clientcredentials.Config
	authorityHost string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API and token requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource replaces the client-credentials token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithAuthorityHost overrides the login host (sovereign clouds, tests).
func WithAuthorityHost(host string) Option {
	return func(c *Client) {
		c.authorityHost = host
	}
}

// New creates a Client. Every credential field is required unless a token
// source is supplied, in which case only URL is.
func New(creds Credentials, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:       strings.TrimRight(creds.URL, "/"),
		httpClient:    http.DefaultClient,
		authorityHost: DefaultAuthorityHost,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		if missing := creds.Missing(); len(missing) > 0 {
			return nil, fmt.Errorf("missing Dataverse settings: %s", strings.Join(missing, ", "))
		}
		c.credentials = &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(c.authorityHost, "/"), creds.TenantID),
			Scopes:       []string{c.baseURL + "/.default"},
		}
	} else if c.baseURL == "" {
		return nil, fmt.Errorf("missing Dataverse settings: DATAVERSE_URL")
	}

	return c, nil
}

// token fetches an access token. Client-credential requests are bound to ctx
// so cancelling the caller also cancels the token exchange.
func (c *Client) token(ctx context.Context) (*oauth2.Token, error) {
	if c.tokens != nil {
		return c.tokens.Token()
	}
	return c.credentials.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)).Token()
}
