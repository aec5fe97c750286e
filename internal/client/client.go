package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sitelens/sitelens-mcp-server/internal/config"
)

const apiKeyHeader = "X-API-Key"

// Client performs authenticated GET requests against the Sitelens API and
// returns decoded JSON. All tool fetches go through Fetch so error
// translation stays uniform.
type Client struct {
	cfg  config.Config
	http *http.Client
	log  *logrus.Entry
}

// Options carries optional per-request settings.
type Options struct {
	Query   url.Values
	Headers http.Header
}

// New constructs a client bound to the given configuration.
func New(cfg config.Config, log *logrus.Entry) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// Fetch GETs an endpoint path relative to the configured base URL and
// decodes the JSON object body. Failures translate into exactly one of
// AuthError, TransportError, HTTPError, or DecodeError.
func (c *Client) Fetch(ctx context.Context, path string, opts *Options) (map[string]any, error) {
	if c.cfg.APIKey == "" {
		return nil, &AuthError{}
	}

	u := c.cfg.BaseURL + path
	if opts != nil && len(opts.Query) > 0 {
		u += "?" + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	// Caller-supplied headers first, then the fixed pair: the auth header
	// can never be overridden by a caller.
	if opts != nil {
		for k, vs := range opts.Headers {
			if http.CanonicalHeaderKey(k) == apiKeyHeader {
				continue
			}
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	if c.log != nil {
		c.log.WithField("path", path).Debug("fetching from Sitelens API")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &DecodeError{Snippet: snippet(body)}
	}
	return data, nil
}
