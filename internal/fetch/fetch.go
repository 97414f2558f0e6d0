// Package fetch retrieves timetable pages through a chain of public CORS
// proxies, falling through to the next proxy on any failure.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// proxy is one hop of the fallback chain. Proxies that wrap the fetched body
// in a JSON envelope set wrapsJSON; the others return it verbatim.
type proxy struct {
	name      string
	build     func(target string) string
	wrapsJSON bool
}

// defaultChain is the proxy order tried for every request.
var defaultChain = []proxy{
	{
		name: "codetabs",
		build: func(target string) string {
			return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(target)
		},
	},
	{
		name: "allorigins",
		build: func(target string) string {
			return "https://api.allorigins.win/get?disableCache=true&url=" + url.QueryEscape(target)
		},
		wrapsJSON: true,
	},
	{
		name: "isogit",
		build: func(target string) string {
			return "https://cors.isomorphic-git.org/" + target
		},
	},
}

// Client fetches pages with per-request timeouts and the proxy fallback
// chain.
type Client struct {
	http  *http.Client
	chain []proxy
}

// NewClient returns a client with a sane request timeout.
func NewClient() *Client {
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		chain: defaultChain,
	}
}

// Get returns the body of the target URL, trying each proxy in turn. The
// last proxy's error surfaces only when the whole chain fails.
func (c *Client) Get(ctx context.Context, target string) (string, error) {
	var lastErr error
	for _, p := range c.chain {
		body, err := c.getThrough(ctx, p, target)
		if err == nil {
			return body, nil
		}
		slog.Debug("proxy failed", "proxy", p.name, "target", target, "error", err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = errors.New("empty proxy chain")
	}
	return "", fmt.Errorf("fetching %s: %w", target, lastErr)
}

func (c *Client) getThrough(ctx context.Context, p proxy, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.build(target), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d @ %s", resp.StatusCode, p.name)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if p.wrapsJSON {
		var wrapped struct {
			Contents string `json:"contents"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return "", fmt.Errorf("decoding proxy envelope: %w", err)
		}
		if wrapped.Contents == "" {
			return "", errors.New("empty contents from proxy envelope")
		}
		return wrapped.Contents, nil
	}

	return string(raw), nil
}
