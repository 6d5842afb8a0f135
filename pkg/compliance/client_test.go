package compliance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clampline/tenantctl/pkg/jobs"
)

type staticCredential struct{}

func (staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "test-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(staticCredential{}).WithBaseURL(srv.URL)
	return client, srv
}

func TestCreateSearchCreatesAndStarts(t *testing.T) {
	var calls []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/searches":
			var req searchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "hr-leaver-search", req.Name)
			assert.Equal(t, `subject:"offboarding"`, req.ContentQuery)
			assert.Equal(t, []string{"All"}, req.ContentLocations)
			_ = json.NewEncoder(w).Encode(jobResponse{Name: req.Name, Status: "NotStarted"})
		case "/searches/hr-leaver-search/start":
			w.WriteHeader(http.StatusAccepted)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	id, err := client.CreateSearch(context.Background(), jobs.Spec{
		Name: "hr-leaver-search",
		Parameters: map[string]string{
			"query":     `subject:"offboarding"`,
			"locations": "All",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "hr-leaver-search", id)
	assert.Equal(t, []string{"POST /searches", "POST /searches/hr-leaver-search/start"}, calls)
}

func TestCreateSearchPropagatesCreationFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "search name already in use", http.StatusConflict)
	}))

	_, err := client.CreateSearch(context.Background(), jobs.Spec{Name: "dupe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestCreateExportReferencesParent(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exports", r.URL.Path)
		var req exportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hr-leaver-search", req.SearchName)
		assert.Equal(t, "Fxstream", req.ExportFormat)
		_ = json.NewEncoder(w).Encode(jobResponse{Name: req.Name})
	}))

	id, err := client.CreateExport(context.Background(), "hr-leaver-search", jobs.Spec{
		Name:       "hr-leaver-search-export",
		Parameters: map[string]string{"format": "Fxstream"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hr-leaver-search-export", id)
}

func TestStatusParsesRemoteStatusStrings(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/hr-leaver-search", r.URL.Path)
		_ = json.NewEncoder(w).Encode(jobResponse{Name: "hr-leaver-search", Status: "In Progress"})
	}))

	st, err := client.Status(context.Background(), "hr-leaver-search")
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusInProgress, st)
}

func TestStatusErrorSurfacesImmediately(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))

	_, err := client.Status(context.Background(), "whatever")
	require.Error(t, err)
}

func TestSplitLocations(t *testing.T) {
	assert.Equal(t, []string{"All"}, splitLocations(""))
	assert.Equal(t, []string{"All"}, splitLocations("all"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitLocations(" a@x.com , b@x.com ,"))
}
