package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client performs paced JSON requests against upstream APIs. All jobs in a
// run share one Client so the limiter covers every provider call.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient paces requests at rps with a burst of one.
func NewClient(rps float64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// GetJSON issues GET rawURL?query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, source, rawURL string, query url.Values, header http.Header, out interface{}) error {
	u := rawURL
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Fetch(source, fmt.Errorf("create request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	// Keys travel in the query for most providers; keep them out of logs.
	LogRequest(source, http.MethodGet, rawURL, redact(query))
	return c.do(req, source, out)
}

// PostJSON sends body as JSON to rawURL and decodes the reply into out.
func (c *Client) PostJSON(ctx context.Context, source, rawURL string, header http.Header, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return Fetch(source, fmt.Errorf("marshal request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return Fetch(source, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	LogRequest(source, http.MethodPost, rawURL, nil)
	return c.do(req, source, out)
}

func (c *Client) do(req *http.Request, source string, out interface{}) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return Fetch(source, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogError(source, "fetch", err)
		return Fetch(source, err)
	}
	defer resp.Body.Close()
	LogResponse(source, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
		LogError(source, "fetch", err)
		return Fetch(source, err)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		LogError(source, "decode", err)
		return Fetch(source, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

var secretParams = map[string]bool{"api_key": true, "key": true, "API_KEY": true}

func redact(q url.Values) map[string]interface{} {
	if len(q) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(q))
	for k, v := range q {
		if secretParams[k] {
			out[k] = "***"
			continue
		}
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out
}
