package nina

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchGetReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/v1/releases/")
		if key == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, fmt.Sprintf(`{"release":%s}`, releaseJSON(key)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result := client.BatchGetReleases(context.Background(), []string{"r1", "missing", "r2", "r3"})

	assert.Equal(t, 4, result.Requested)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "r1", result.Items[0].PublicKey)
	assert.Equal(t, "r2", result.Items[1].PublicKey)
	assert.Equal(t, "r3", result.Items[2].PublicKey)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "missing", result.Failed[0].Key)
	assert.ErrorIs(t, result.Failed[0], ErrNotFound)
	assert.Contains(t, result.Failed[0].Error(), "failed to fetch missing")
}

func TestBatchGetReleasesEmpty(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	result := client.BatchGetReleases(context.Background(), nil)
	assert.Equal(t, 0, result.Requested)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Empty(t, result.Failed)
}

func TestBatchConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)

		handle := strings.TrimPrefix(r.URL.Path, "/v1/hubs/")
		io.WriteString(w, fmt.Sprintf(`{"hub":%s}`, hubJSON("key-"+handle, handle)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithConcurrency(2))

	handles := []string{"a", "b", "c", "d", "e", "f"}
	result := client.BatchGetHubs(context.Background(), handles)

	require.Len(t, result.Items, len(handles))
	for i, h := range handles {
		assert.Equal(t, h, result.Items[i].Handle)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestExpandHub(t *testing.T) {
	const hubKey = "7Pc1WR8Rxt9UAgphNUA4jd8TXRFWuQhHyAG4jEhzbFkY"

	server := newMockServer(t, map[string]http.HandlerFunc{
		"/v1/hubs/ninas-picks": respond(string(loadFixture(t, "hub.json"))),
		"/v1/hubs/" + hubKey + "/collaborators": respond(
			`{"collaborators":["c1",{"publicKey":"c2","canAddCollaborator":true,"allowance":-1}],"publicKey":"` + hubKey + `"}`),
		"/v1/hubs/" + hubKey + "/releases": respond(
			fmt.Sprintf(`{"releases":[%s,%s],"publicKey":%q}`, releaseJSON("r1"), releaseJSON("r2"), hubKey)),
	})
	client := newTestClient(t, server.URL)

	data, err := client.ExpandHub(context.Background(), "ninas-picks")
	require.NoError(t, err)

	assert.Equal(t, "ninas-picks", data.Hub.Handle)
	require.Len(t, data.Collaborators, 2)
	assert.Equal(t, "c1", data.Collaborators[0].PublicKey)
	assert.Equal(t, -1, data.Collaborators[1].Allowance)
	assert.Len(t, data.Releases, 2)
	assert.Empty(t, data.Posts)
}

func TestExpandHubFailure(t *testing.T) {
	const hubKey = "7Pc1WR8Rxt9UAgphNUA4jd8TXRFWuQhHyAG4jEhzbFkY"

	server := newMockServer(t, map[string]http.HandlerFunc{
		"/v1/hubs/ninas-picks": respond(string(loadFixture(t, "hub.json"))),
		"/v1/hubs/" + hubKey + "/collaborators": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"/v1/hubs/" + hubKey + "/releases": respond(`{"releases":[],"publicKey":"` + hubKey + `"}`),
	})
	client := newTestClient(t, server.URL)

	data, err := client.ExpandHub(context.Background(), "ninas-picks")
	assert.Nil(t, data)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, "GetHubCollaborators", apiErr.Endpoint)
}

func TestResolveSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/releases/"):
			key := strings.TrimPrefix(r.URL.Path, "/v1/releases/")
			io.WriteString(w, fmt.Sprintf(`{"release":%s}`, releaseJSON(key)))
		case r.URL.Path == "/v1/hubs/gone":
			w.WriteHeader(http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/v1/hubs/"):
			key := strings.TrimPrefix(r.URL.Path, "/v1/hubs/")
			io.WriteString(w, fmt.Sprintf(`{"hub":%s}`, hubJSON(key, "h-"+key)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result := &SearchResult{
		Accounts: []string{"a1"},
		Artists:  []string{"art1"},
		Releases: []string{"r1", "r2"},
		Hubs:     []string{"h1", "gone"},
	}

	resolved, err := client.ResolveSearch(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, resolved.Accounts)
	assert.Equal(t, []string{"art1"}, resolved.Artists)
	assert.Len(t, resolved.Releases, 2)
	require.Len(t, resolved.Hubs, 1)
	assert.Equal(t, "h1", resolved.Hubs[0].PublicKey)
	require.Len(t, resolved.Failed, 1)
	assert.Equal(t, "gone", resolved.Failed[0].Key)

	t.Run("nil result", func(t *testing.T) {
		_, err := client.ResolveSearch(context.Background(), nil)
		assert.Error(t, err)
	})
}
