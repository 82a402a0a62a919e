// Package port implements an authenticated client for the catalog
// platform's REST API, with typed CRUD methods per resource kind.
package port

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// DefaultAPIURL is the production API endpoint.
const DefaultAPIURL = "https://api.getport.io/v1"

const defaultTimeout = 300 * time.Second

// ClientConfig holds the settings for connecting to one organization.
type ClientConfig struct {
	// ClientID and ClientSecret are the organization's API credentials.
	ClientID     string
	ClientSecret string
	// APIURL is the API base URL. Defaults to DefaultAPIURL.
	APIURL string
	// Timeout applies per request. Defaults to 300s.
	Timeout time.Duration
}

// Client is an authenticated API client for a single organization. It owns
// the token lifecycle for that organization and issues one request at a
// time; it is not safe for concurrent use.
type Client struct {
	hc     *http.Client
	apiURL string
	tokens *tokenSource
}

// NewClient creates a client for one organization.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = 3
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = cfg.Timeout
	// Retry only rate limits and transport errors. Other 4xx/5xx surface
	// immediately so callers can inspect the status code.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode == http.StatusTooManyRequests, nil
	}
	hc := rc.StandardClient()

	return &Client{
		hc:     hc,
		apiURL: cfg.APIURL,
		tokens: newTokenSource(cfg.ClientID, cfg.ClientSecret, cfg.APIURL, hc),
	}, nil
}

// do issues one authenticated request and returns the response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    apiMessage(respBody),
		}
	}
	return respBody, nil
}

// apiMessage extracts the API's error message from a response body, falling
// back to the raw body.
func apiMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}

// getList GETs path and decodes the array under the given envelope key.
// A missing key decodes as an empty list.
func (c *Client) getList(ctx context.Context, path, key string) ([]Record, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	res := gjson.GetBytes(body, key)
	if !res.Exists() {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(res.Raw), &records); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", key, err)
	}
	return records, nil
}

// object issues a request and decodes the object under the given envelope
// key from the response.
func (c *Client) object(ctx context.Context, method, path, key string, body any) (Record, error) {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	res := gjson.GetBytes(respBody, key)
	if !res.Exists() {
		return Record{}, nil
	}
	var record Record
	if err := json.Unmarshal([]byte(res.Raw), &record); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", key, err)
	}
	return record, nil
}

// delete issues a DELETE request, discarding the response body.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
