// Package power wraps the Power Platform admin (BAP) API: enumerate
// environments and apply per-environment administrative operations.
package power

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/clampline/tenantctl/internal/helpers"
)

// DefaultBaseURL is the BAP admin root.
const DefaultBaseURL = "https://api.bap.microsoft.com/providers/Microsoft.BusinessAppPlatform/scopes/admin"

// Scope is the token audience for the Power Platform service.
const Scope = "https://service.powerapps.com/.default"

const apiVersion = "2021-04-01"

// Environment is one Power Platform environment as returned by the
// admin listing.
type Environment struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Location    string `json:"location"`
	Type        string `json:"environmentType"`
	State       string `json:"provisioningState"`
}

type environmentEnvelope struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Properties struct {
		DisplayName       string `json:"displayName"`
		EnvironmentType   string `json:"environmentType"`
		ProvisioningState string `json:"provisioningState"`
	} `json:"properties"`
}

type environmentList struct {
	Value    []environmentEnvelope `json:"value"`
	NextLink string                `json:"nextLink"`
}

// Client issues Power Platform admin calls for one session.
type Client struct {
	rest    *helpers.RestClient
	baseURL string
}

func NewClient(credential azcore.TokenCredential) *Client {
	return &Client{
		rest:    helpers.NewRestClient(credential, Scope),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL overrides the API root, used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithHTTPClient is a test hook.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.rest.WithHTTPClient(hc)
	return c
}

// ListEnvironments enumerates every environment in the tenant, in
// listing order. The remote system gives no ordering guarantee.
func (c *Client) ListEnvironments(ctx context.Context) ([]Environment, error) {
	url := fmt.Sprintf("%s/environments?api-version=%s", c.baseURL, apiVersion)

	var out []Environment
	for url != "" {
		var page environmentList
		if err := c.rest.DoJSON(ctx, http.MethodGet, url, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list environments: %w", err)
		}
		for _, e := range page.Value {
			out = append(out, Environment{
				Name:        e.Name,
				DisplayName: e.Properties.DisplayName,
				Location:    e.Location,
				Type:        e.Properties.EnvironmentType,
				State:       e.Properties.ProvisioningState,
			})
		}
		url = page.NextLink
	}
	return out, nil
}

// ApplyOperation performs one named administrative operation against a
// single environment. Operations are thin one-shot PATCH calls; the
// caller owns failure isolation across environments.
func (c *Client) ApplyOperation(ctx context.Context, environmentName, operation string) error {
	body := map[string]any{"operation": operation}
	url := fmt.Sprintf("%s/environments/%s/modify?api-version=%s", c.baseURL, environmentName, apiVersion)

	if err := c.rest.DoJSON(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("failed to apply %s to environment %s: %w", operation, environmentName, err)
	}
	return nil
}
