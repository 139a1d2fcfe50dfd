package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient sends GETs through a resty.Client.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient returns a RestyClient on a fresh resty.Client. A non-positive timeout leaves resty's default (none).
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// FromResty wraps an existing resty.Client. Timeouts, proxies and TLS stay whatever the caller configured.
func FromResty(c *resty.Client) *RestyClient {
	if c == nil {
		c = resty.New()
	}
	return &RestyClient{client: c}
}

// Get sends a GET with the given headers. Any status is returned as a Response; only failures
// to get a response at all are errors.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return restyResponse{status: resp.StatusCode(), body: resp.Body()}, nil
}

// restyResponse snapshots the status and body so callers never hold the resty response.
type restyResponse struct {
	status int
	body   []byte
}

func (r restyResponse) Body() []byte    { return r.body }
func (r restyResponse) StatusCode() int { return r.status }
