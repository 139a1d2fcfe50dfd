// Package blockpalettes is a client for the Block Palettes website.
//
// Simple queries go through the site's JSON endpoints. Data only published in HTML
// (a palette page's block list and its similar palettes) is scraped with goquery, relying on
// the page markup described in scrape.go; markup changes on the site surface as KindParse errors.
//
// The Client keeps no state between calls. It does not retry, rate-limit or cache; callers own
// the transport and decide what to do with a failure.
package blockpalettes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/blockpalettes/pkg/httpclient"
)

// DefaultBaseURL is the site the client talks to unless WithBaseURL is given.
const DefaultBaseURL = "https://www.blockpalettes.com"

const (
	searchBlockPath     = "/api/palettes/search-block.php"
	popularBlocksPath   = "/api/palettes/popular-blocks.php"
	allPalettesPath     = "/api/palettes/all_palettes.php"
	singlePalettePath   = "/api/palettes/single_palette.php"
	similarPalettesPath = "/api/palettes/similar_palettes.php"
	palettePagePath     = "/palette/"
)

// HTTPClient aliases the shared httpclient.Client interface for clarity within this package.
type HTTPClient = httpclient.Client

// DefaultHTTPClient returns a resty-backed transport with a 15s timeout.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// Client talks to the Block Palettes site. It is safe for concurrent use.
type Client struct {
	http    HTTPClient
	baseURL string
	headers map[string]string
	log     Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw = strings.TrimRight(strings.TrimSpace(raw), "/"); raw != "" {
			c.baseURL = raw
		}
	}
}

// WithHeaders sets headers sent with every request (User-Agent, Accept-Language...). Empty values are skipped.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				continue
			}
			c.headers[k] = v
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// New builds a Client over the given transport. A nil transport uses DefaultHTTPClient.
func New(transport HTTPClient, opts ...Option) *Client {
	if transport == nil {
		transport = DefaultHTTPClient()
	}
	c := &Client{
		http:    transport,
		baseURL: DefaultBaseURL,
		headers: map[string]string{},
		log:     noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the host the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// get sends a GET and maps transport failures and statuses onto error kinds.
// A nil error means a 2xx response.
func (c *Client) get(ctx context.Context, op, u string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var headers map[string]string
	if len(c.headers) > 0 {
		headers = make(map[string]string, len(c.headers))
		for k, v := range c.headers {
			headers[k] = v
		}
	}

	resp, err := c.http.Get(ctx, u, headers)
	if err != nil {
		return nil, newError(KindNetwork, op, u, err)
	}
	if resp == nil {
		return nil, newError(KindNetwork, op, u, errors.New("transport returned no response"))
	}

	status := resp.StatusCode()
	body := resp.Body()
	switch {
	case status == http.StatusNotFound:
		e := newError(KindNotFound, op, u, nil)
		e.StatusCode = status
		return nil, e
	case status < 200 || status > 299:
		e := newError(KindNetwork, op, u, fmt.Errorf("unexpected response body: %s", responseSnippet(body)))
		e.StatusCode = status
		return nil, e
	}
	return body, nil
}

// getJSON fetches u and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, u string, out any) error {
	body, err := c.get(ctx, op, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.log.DebugObj("blockpalettes json decode failed", "decode_error", map[string]any{
			"op":    op,
			"url":   u,
			"body":  responseSnippet(body),
			"error": err.Error(),
		})
		return newError(KindParse, op, u, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// envelope is the {"success": bool} wrapper every JSON endpoint uses.
type envelope struct {
	Success *bool `json:"success"`
}

func (e envelope) check(op, u string, failKind Kind) error {
	if e.Success == nil {
		return newError(KindParse, op, u, errors.New("response is missing the success field"))
	}
	if !*e.Success {
		return newError(failKind, op, u, errors.New("site reported success=false"))
	}
	return nil
}
