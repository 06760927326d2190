// Package memoryclient implements the Context Builder (spec §4.1): the
// HTTP client to the external Memory Service and the concurrent
// fan-out that assembles a planmodel.Context per request.
package memoryclient

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

	"github.com/google/uuid"
)

const (
	defaultTimeout          = 10 * time.Second
	defaultMaxResponseBytes = int64(1 << 20) // 1MB
)

// Config configures the Memory Service HTTP client. Follows the shape
// of the teacher's internal/tools/homeassistant.Config: a validated
// base URL, an overridable *http.Client, and a capped response size.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	MaxResponseBytes int64
	HTTPClient       *http.Client
}

// Client is the HTTP client for the four Memory Service endpoints
// enumerated in spec §6.
type Client struct {
	baseURL  string
	client   *http.Client
	maxBytes int64
}

// New constructs a Client. BaseURL is required and must be http(s).
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("memoryclient: base_url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("memoryclient: invalid base_url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("memoryclient: base_url scheme must be http or https")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}

	return &Client{baseURL: baseURL, client: httpClient, maxBytes: maxBytes}, nil
}

// Preferences fetches GET /long-term/preferences/{user_id}.
func (c *Client) Preferences(ctx context.Context, userID string) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/long-term/preferences/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// RawTurn is the untrusted, on-the-wire shape of one conversation
// message; missing fields default, extra fields are ignored, per
// spec §6.
type RawTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// RecentTurns fetches GET /short-term/conversation/{user_id}?limit={N}.
func (c *Client) RecentTurns(ctx context.Context, userID string, limit int) ([]RawTurn, error) {
	endpoint := c.baseURL + "/short-term/conversation/" + url.PathEscape(userID) +
		"?limit=" + strconv.Itoa(limit)
	var out []RawTurn
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RawFact is the untrusted shape of a retrieved knowledge fact.
type RawFact struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

// Knowledge issues POST /long-term/knowledge/query with
// {user_id, query, k}.
func (c *Client) Knowledge(ctx context.Context, userID, query string, k int) ([]RawFact, error) {
	body := map[string]any{"user_id": userID, "query": query, "k": k}
	var out []RawFact
	if err := c.doJSONBody(ctx, http.MethodPost, c.baseURL+"/long-term/knowledge/query", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RawEpisode is the untrusted shape of a retrieved episode.
type RawEpisode struct {
	Text       string  `json:"text"`
	Timestamp  string  `json:"timestamp"`
	Similarity float64 `json:"similarity"`
}

// Episodes issues POST /episodic/query with
// {user_id, query_text, n_results}.
func (c *Client) Episodes(ctx context.Context, userID, queryText string, nResults int) ([]RawEpisode, error) {
	body := map[string]any{"user_id": userID, "query_text": queryText, "n_results": nResults}
	var out []RawEpisode
	if err := c.doJSONBody(ctx, http.MethodPost, c.baseURL+"/episodic/query", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSONBody(ctx context.Context, method, endpoint string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("memoryclient: encode request body: %w", err)
	}
	return c.doJSON(ctx, method, endpoint, bytes.NewReader(encoded), out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("memoryclient: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("memoryclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return fmt.Errorf("memoryclient: read response: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return fmt.Errorf("memoryclient: response too large")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("memoryclient: %s", msg)
	}

	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("memoryclient: decode response: %w", err)
	}
	return nil
}
