// client.go - Thin REST client for the hosted platform (PostgREST side).
//
// Every entity collection in the app is a named table behind /rest/v1.
// Each call here is a single request/response; there is no cache, no retry
// and no batching. The caller's access token is forwarded so row-level
// security on the platform sees the real user.

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client performs table operations against the platform REST endpoint.
type Client struct {
	prefix string // <project>/rest/v1
	auth   string // <project>/auth/v1
	apiKey string
	http   *http.Client
	log    zerolog.Logger
}

// New creates a platform client for the given project URL and anon key.
func New(projectURL, apiKey string, log zerolog.Logger) (*Client, error) {
	if projectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	trimmed := strings.TrimRight(projectURL, "/")
	return &Client{
		prefix: trimmed + "/rest/v1",
		auth:   trimmed + "/auth/v1",
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}, nil
}

// Auth returns the auth-endpoint client sharing this client's transport.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{baseURL: c.auth, apiKey: c.apiKey, http: c.http}
}

// Select performs a GET on a table and decodes the JSON rows into out.
// query carries PostgREST filters (eq., order, select, limit) already built
// by the caller.
func (c *Client) Select(ctx context.Context, table string, query url.Values, token string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, query, nil, token)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		c.log.Warn().Str("table", table).Err(err).Msg("select failed")
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// SelectCount asks the platform for an exact row count without fetching
// rows. The count comes back in the Content-Range header ("0-24/25").
func (c *Client) SelectCount(ctx context.Context, table string, query url.Values, token string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, table, query, nil, token)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		c.log.Warn().Str("table", table).Err(err).Msg("count failed")
		return 0, err
	}
	return parseContentRange(resp.Header.Get("Content-Range"))
}

// Insert performs a POST insert into a table.
func (c *Client) Insert(ctx context.Context, table string, body interface{}, token string) error {
	return c.write(ctx, http.MethodPost, table, nil, body, token)
}

// Update performs a PATCH on the rows matched by query.
func (c *Client) Update(ctx context.Context, table string, query url.Values, body interface{}, token string) error {
	return c.write(ctx, http.MethodPatch, table, query, body, token)
}

// Delete removes the rows matched by query.
func (c *Client) Delete(ctx context.Context, table string, query url.Values, token string) error {
	return c.write(ctx, http.MethodDelete, table, query, nil, token)
}

func (c *Client) write(ctx context.Context, method, table string, query url.Values, body interface{}, token string) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", table, err)
		}
	}
	req, err := c.newRequest(ctx, method, table, query, payload, token)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), table, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		c.log.Warn().Str("table", table).Str("method", method).Err(err).Msg("mutation failed")
		return err
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, table string, query url.Values, body []byte, token string) (*http.Request, error) {
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}
	path := c.prefix + "/" + url.PathEscape(table)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	setAuthHeaders(req, c.apiKey, token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// setAuthHeaders adds the project key plus the caller's bearer token.
// With no user token the anon key doubles as the bearer, which the
// platform treats as the anonymous role.
func setAuthHeaders(req *http.Request, apiKey, token string) {
	req.Header.Set("apikey", apiKey)
	if token == "" {
		token = apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func parseContentRange(h string) (int64, error) {
	idx := strings.LastIndex(h, "/")
	if idx < 0 || idx == len(h)-1 {
		return 0, fmt.Errorf("missing content range: %q", h)
	}
	total := h[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("count unavailable")
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad content range %q: %w", h, err)
	}
	return n, nil
}
