package ports

import (
	"context"
	"net/http"
)

// OriginClient fetches a resource from the upstream streaming origin.
// resourcePath is the slash-separated fragment under the origin root,
// e.g. "{videoId}/manifest/video.m3u8". Caller closes the response body.
type OriginClient interface {
	Fetch(ctx context.Context, resourcePath string) (*http.Response, error)
}
