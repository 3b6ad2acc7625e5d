package dataverse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/sirupsen/logrus"
)

// ErrRemoteProvisioning matches every provisioning failure.
var ErrRemoteProvisioning = errors.New("remote provisioning failed")

// ProvisioningError is a non-success response from the Dataverse API.
type ProvisioningError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to create bot (%d %s): %s", e.Status, e.StatusText, e.Body)
}

// Is makes errors.Is(err, ErrRemoteProvisioning) true.
func (e *ProvisioningError) Is(target error) bool {
	return target == ErrRemoteProvisioning
}

type createBotRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createBotResponse struct {
	BotID string `json:"botid"`
}

var entityIDPattern = regexp.MustCompile(`\(([0-9a-fA-F-]{36})\)\s*$`)

// CreateBot creates an empty bot record and returns its id. There is no retry.
func (c *Client) CreateBot(ctx context.Context, name, description string) (string, error) {
	token, err := c.token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: acquiring Dataverse token: %w", ErrRemoteProvisioning, err)
	}

	body, err := json.Marshal(createBotRequest{Name: name, Description: description})
	if err != nil {
		return "", fmt.Errorf("encoding bot request: %w", err)
	}

	url := c.baseURL + apiPath + "/bots"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	req.Header.Set("Prefer", "return=representation")
	req.Header.Set("User-Agent", userAgent)

	logrus.WithFields(logrus.Fields{"url": url, "name": name}).Debug("creating Dataverse bot")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteProvisioning, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProvisioningError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(respBody),
		}
	}

	// With return=representation the record comes back in the body; without
	// it Dataverse answers 204 and names the record in OData-EntityId.
	if len(bytes.TrimSpace(respBody)) > 0 {
		var created createBotResponse
		if err := json.Unmarshal(respBody, &created); err != nil {
			return "", fmt.Errorf("parsing bot response: %w", err)
		}
		if created.BotID != "" {
			return created.BotID, nil
		}
	}
	if m := entityIDPattern.FindStringSubmatch(resp.Header.Get("OData-EntityId")); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: response did not include a bot id", ErrRemoteProvisioning)
}
