// Package compliance talks to the Microsoft Purview compliance search
// endpoints: create a content search, observe its status, and trigger
// an export of its results as a dependent job.
package compliance

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/pkg/jobs"
)

// DefaultBaseURL is the compliance admin API root. Overridable for
// sovereign clouds and tests.
const DefaultBaseURL = "https://compliance.microsoft.com/api"

// GraphScope is the token audience for the compliance endpoints.
const GraphScope = "https://graph.microsoft.com/.default"

// Client is the remote admin client for compliance searches. It
// implements the capability shapes the job orchestrator consumes.
type Client struct {
	rest    *helpers.RestClient
	baseURL string
}

// NewClient builds a compliance client from the run's session
// credential.
func NewClient(credential azcore.TokenCredential) *Client {
	return &Client{
		rest:    helpers.NewRestClient(credential, GraphScope),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL overrides the API root.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithHTTPClient is a test hook.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.rest.WithHTTPClient(hc)
	return c
}

type searchRequest struct {
	Name             string   `json:"name"`
	ContentQuery     string   `json:"contentQuery"`
	ContentLocations []string `json:"contentLocations"`
}

type exportRequest struct {
	Name         string `json:"name"`
	SearchName   string `json:"searchName"`
	ExportFormat string `json:"exportFormat"`
}

type jobResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CreateSearch creates and starts a content search, returning its job
// identifier. Creation failures abort before any polling begins.
func (c *Client) CreateSearch(ctx context.Context, spec jobs.Spec) (string, error) {
	req := searchRequest{
		Name:             spec.Name,
		ContentQuery:     spec.Parameters["query"],
		ContentLocations: splitLocations(spec.Parameters["locations"]),
	}

	var resp jobResponse
	if err := c.rest.DoJSON(ctx, http.MethodPost, c.baseURL+"/searches", req, &resp); err != nil {
		return "", fmt.Errorf("failed to create compliance search: %w", err)
	}
	if resp.Name == "" {
		resp.Name = spec.Name
	}

	if err := c.rest.DoJSON(ctx, http.MethodPost, c.baseURL+"/searches/"+resp.Name+"/start", nil, nil); err != nil {
		return "", fmt.Errorf("failed to start compliance search %s: %w", resp.Name, err)
	}
	return resp.Name, nil
}

// CreateExport submits the dependent export job for a completed search.
func (c *Client) CreateExport(ctx context.Context, parentID string, spec jobs.Spec) (string, error) {
	req := exportRequest{
		Name:         spec.Name,
		SearchName:   parentID,
		ExportFormat: spec.Parameters["format"],
	}

	var resp jobResponse
	if err := c.rest.DoJSON(ctx, http.MethodPost, c.baseURL+"/exports", req, &resp); err != nil {
		return "", fmt.Errorf("failed to create export for search %s: %w", parentID, err)
	}
	if resp.Name == "" {
		resp.Name = spec.Name
	}
	return resp.Name, nil
}

// Status fetches the current status of a search or export job.
func (c *Client) Status(ctx context.Context, jobID string) (jobs.Status, error) {
	var resp jobResponse
	if err := c.rest.DoJSON(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil, &resp); err != nil {
		return jobs.StatusUnknown, err
	}
	return jobs.ParseStatus(resp.Status), nil
}

func splitLocations(raw string) []string {
	if raw == "" || strings.EqualFold(raw, "all") {
		return []string{"All"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
