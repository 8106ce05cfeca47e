package domain

import (
	"net/url"
	"path"
	"strings"
)

// ProxyPathPrefix is where the gateway is mounted; rewritten references point
// under it.
const ProxyPathPrefix = "/video-proxy/"

// extensions the player will fetch as sub-resources, and which therefore must
// carry the authorization token
var tokenizedExtensions = map[string]struct{}{
	".m3u8": {},
	".ts":   {},
	".m4s":  {},
	".mp4":  {},
	".vtt":  {},
}

// ManifestRewriter re-points every reference inside an HLS playlist at the
// local proxy and stamps it with the capability token. Playlists are
// line-oriented, so the rewrite walks lines instead of pattern-matching the
// whole document: a non-empty line not starting with '#' is a URI, and tag
// lines may carry a quoted URI="..." attribute.
type ManifestRewriter struct {
	origin *url.URL
}

func NewManifestRewriter(origin *url.URL) *ManifestRewriter {
	return &ManifestRewriter{origin: origin}
}

// Rewrite is pure: same manifest, videoID and token always produce the same
// output, and running it over its own output changes nothing.
func (m *ManifestRewriter) Rewrite(manifest, videoID, token string) string {
	lines := strings.Split(manifest, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			lines[i] = m.rewriteTagLine(line, videoID, token)
			continue
		}

		lines[i] = m.rewriteReference(trimmed, videoID, token)
	}

	return strings.Join(lines, "\n")
}

// rewriteTagLine handles the quoted URI attribute on tag lines (EXT-X-MEDIA,
// EXT-X-I-FRAME-STREAM-INF, EXT-X-MAP and friends).
func (m *ManifestRewriter) rewriteTagLine(line, videoID, token string) string {
	const attr = `URI="`

	start := strings.Index(line, attr)
	if start < 0 {
		return line
	}
	start += len(attr)

	end := strings.Index(line[start:], `"`)
	if end < 0 {
		return line
	}
	end += start

	return line[:start] + m.rewriteReference(line[start:end], videoID, token) + line[end:]
}

func (m *ManifestRewriter) rewriteReference(ref, videoID, token string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	if u.IsAbs() {
		// only this video's namespace on our origin is re-routed through the
		// proxy; a reference to another host or another video stays untouched
		if u.Host != m.origin.Host || !strings.HasPrefix(u.Path, "/"+videoID+"/") {
			return ref
		}
		u.Scheme = ""
		u.Host = ""
		u.Path = ProxyPathPrefix + strings.TrimPrefix(u.Path, "/")
	}

	if _, ok := tokenizedExtensions[strings.ToLower(path.Ext(u.Path))]; !ok {
		return u.String()
	}

	// Set, not Add: a reference that already carries a token keeps exactly one
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String()
}
