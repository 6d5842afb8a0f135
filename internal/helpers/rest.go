package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// RestClient issues authenticated JSON requests against the Microsoft
// admin endpoints that have no resource manager SDK (Security &
// Compliance, Power Platform BAP). Tokens are fetched from the session
// credential per scope and cached until close to expiry. One client is
// shared across worker goroutines, so the cache is mutex-guarded.
type RestClient struct {
	credential azcore.TokenCredential
	scope      string
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewRestClient builds a client acquiring tokens for the given scope,
// e.g. "https://graph.microsoft.com/.default".
func NewRestClient(credential azcore.TokenCredential, scope string) *RestClient {
	return &RestClient{
		credential: credential,
		scope:      scope,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient swaps the underlying HTTP client, used by tests to
// point at a local server.
func (c *RestClient) WithHTTPClient(hc *http.Client) *RestClient {
	c.httpClient = hc
	return c
}

func (c *RestClient) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.token, nil
	}

	tok, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{c.scope}})
	if err != nil {
		return "", fmt.Errorf("failed to acquire token for %s: %w", c.scope, err)
	}
	c.token = tok.Token
	c.tokenExpiry = tok.ExpiresOn
	return c.token, nil
}

// DoJSON performs one JSON request. body may be nil; out may be nil
// when the response body is irrelevant. Non-2xx responses become
// errors carrying the status and response text.
func (c *RestClient) DoJSON(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s returned status %d: %s", method, url, resp.StatusCode, buf.String())
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
