package infra

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Vovarama1992/streamgate/internal/ports"
)

// StreamOriginClient talks to the upstream streaming CDN. One client per
// process; requests carry the caller's context so a player disconnect cancels
// the outbound fetch.
type StreamOriginClient struct {
	base   *url.URL
	client *http.Client
}

func NewStreamOriginClient(base *url.URL, timeout time.Duration) ports.OriginClient {
	return &StreamOriginClient{
		base: base,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *StreamOriginClient) Fetch(ctx context.Context, resourcePath string) (*http.Response, error) {
	target := *c.base
	target.Path = "/" + resourcePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build origin request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch origin: %w", err)
	}

	return resp, nil
}
