package port

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// refreshMargin is how long before actual expiry a cached token is treated
// as stale and refreshed.
const refreshMargin = 5 * time.Minute

// tokenResponse is the API's token grant payload.
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	TokenType   string `json:"tokenType"`
}

// tokenSource acquires and caches a bearer token for one organization.
// The cache lives for the lifetime of its owning Client; there is no
// cross-client sharing.
type tokenSource struct {
	clientID     string
	clientSecret string
	authURL      string
	hc           *http.Client

	token  string
	expiry time.Time
	now    func() time.Time // stubbed in tests
}

func newTokenSource(clientID, clientSecret, apiURL string, hc *http.Client) *tokenSource {
	return &tokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      apiURL + "/auth/access_token",
		hc:           hc,
		now:          time.Now,
	}
}

// Token returns the cached token, refreshing it when it is within the
// refresh margin of expiry.
func (t *tokenSource) Token(ctx context.Context) (string, error) {
	if t.token != "" && t.now().Before(t.expiry.Add(-refreshMargin)) {
		return t.token, nil
	}
	return t.refresh(ctx)
}

func (t *tokenSource) refresh(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"clientId":     t.clientID,
		"clientSecret": t.clientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.authURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodPost,
			Path:       "/auth/access_token",
			Message:    string(body),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	t.token = tr.AccessToken
	t.expiry = t.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return t.token, nil
}
