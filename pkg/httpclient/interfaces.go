package httpclient

import "context"

// Response is what Client.Get hands back: the status and the fully read body.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client is the transport the blockpalettes client sends requests through. Tests swap in fakes
// keyed by URL; the caller owns the client, and nothing here closes or reconfigures it.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
