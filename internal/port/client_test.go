package port

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer wires an httptest server that grants tokens and dispatches the
// remaining paths to handler.
func testServer(t *testing.T, authCalls *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/access_token" {
			if authCalls != nil {
				atomic.AddInt32(authCalls, 1)
			}
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "test-id", creds["clientId"])
			assert.Equal(t, "test-secret", creds["clientSecret"])
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accessToken": "tok-1", "expiresIn": 3600, "tokenType": "Bearer"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		APIURL:       srv.URL,
		Timeout:      5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(ClientConfig{ClientSecret: "s"})
	assert.ErrorContains(t, err, "client ID")

	_, err = NewClient(ClientConfig{ClientID: "i"})
	assert.ErrorContains(t, err, "client secret")
}

func TestClient_TokenCachedAcrossRequests(t *testing.T) {
	var authCalls int32
	srv := testServer(t, &authCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"blueprints": []}`))
	})
	client := testClient(t, srv)

	ctx := context.Background()
	_, err := client.Blueprints(ctx)
	require.NoError(t, err)
	_, err = client.Blueprints(ctx)
	require.NoError(t, err)
	_, err = client.Teams(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))
}

func TestClient_TokenRefreshedInsideMargin(t *testing.T) {
	var authCalls int32
	srv := testServer(t, &authCalls, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"blueprints": []}`))
	})
	client := testClient(t, srv)

	base := time.Now()
	client.tokens.now = func() time.Time { return base }

	ctx := context.Background()
	_, err := client.Blueprints(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&authCalls))

	// 10 minutes before expiry the cached token is still fresh.
	client.tokens.now = func() time.Time { return base.Add(3600*time.Second - 10*time.Minute) }
	_, err = client.Blueprints(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))

	// 4 minutes before expiry it is inside the refresh margin.
	client.tokens.now = func() time.Time { return base.Add(3600*time.Second - 4*time.Minute) }
	_, err = client.Blueprints(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
}

func TestClient_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{ClientID: "bad", ClientSecret: "bad", APIURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Blueprints(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_ConflictSurfacesAsAPIError(t *testing.T) {
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "blueprint already exists"}`))
	})
	client := testClient(t, srv)

	_, err := client.CreateBlueprint(context.Background(), Record{"identifier": "service"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsGone(err))
	assert.Contains(t, err.Error(), "blueprint already exists")
}

func TestClient_GoneSurfacesAsAPIError(t *testing.T) {
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	client := testClient(t, srv)

	_, err := client.Actions(context.Background(), "service")
	require.Error(t, err)
	assert.True(t, IsGone(err))
}

func TestClient_EnvelopeExtraction(t *testing.T) {
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blueprints":
			_, _ = w.Write([]byte(`{"ok": true, "blueprints": [{"identifier": "service"}, {"identifier": "team"}]}`))
		case "/blueprints/service":
			_, _ = w.Write([]byte(`{"ok": true, "blueprint": {"identifier": "service", "title": "Service"}}`))
		default:
			http.NotFound(w, r)
		}
	})
	client := testClient(t, srv)

	blueprints, err := client.Blueprints(context.Background())
	require.NoError(t, err)
	require.Len(t, blueprints, 2)
	assert.Equal(t, "service", blueprints[0].String("identifier"))

	blueprint, err := client.Blueprint(context.Background(), "service")
	require.NoError(t, err)
	assert.Equal(t, "Service", blueprint.String("title"))
}

func TestClient_MissingEnvelopeKeyIsEmpty(t *testing.T) {
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	})
	client := testClient(t, srv)

	records, err := client.Pages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var apiCalls int32
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&apiCalls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"teams": [{"name": "platform"}]}`))
	})
	client := testClient(t, srv)

	teams, err := client.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	var apiCalls int32
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&apiCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := testClient(t, srv)

	_, err := client.Teams(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&apiCalls))
}

func TestClient_PathEscaping(t *testing.T) {
	var gotPath string
	srv := testServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"entity": {}}`))
	})
	client := testClient(t, srv)

	_, err := client.Entity(context.Background(), "service", "id/with slash")
	require.NoError(t, err)
	assert.Equal(t, "/blueprints/service/entities/id%2Fwith%20slash", gotPath)
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: 409, Method: "POST", Path: "/blueprints", Message: "exists"}
	assert.Equal(t, "POST /blueprints: status 409: exists", err.Error())

	bare := &APIError{StatusCode: 500, Method: "GET", Path: "/teams"}
	assert.Equal(t, "GET /teams: status 500", bare.Error())
}

func TestRecord_Without(t *testing.T) {
	r := Record{"identifier": "x", "createdBy": "u", "title": "X"}

	stripped := r.Without("createdBy", "missing")
	assert.Equal(t, Record{"identifier": "x", "title": "X"}, stripped)
	// Original untouched.
	assert.Contains(t, r, "createdBy")
}

func TestRecord_String(t *testing.T) {
	r := Record{"identifier": "x", "count": 3}
	assert.Equal(t, "x", r.String("identifier"))
	assert.Equal(t, "", r.String("count"))
	assert.Equal(t, "", r.String("absent"))
}
