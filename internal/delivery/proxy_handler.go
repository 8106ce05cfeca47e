package delivery

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/streamgate/internal/domain"
	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/go-chi/chi/v5"
)

const (
	// manifests change while transcoding completes, segments never do
	manifestCacheControl = "public, max-age=3600"
	segmentCacheControl  = "public, max-age=86400"
)

type ProxyHandler struct {
	codec       ports.TokenCodec
	origin      ports.OriginClient
	rewriter    *domain.ManifestRewriter
	revocations ports.RevocationList
	log         *logger.ZapLogger
}

func NewProxyHandler(
	codec ports.TokenCodec,
	origin ports.OriginClient,
	rewriter *domain.ManifestRewriter,
	revocations ports.RevocationList,
	log *logger.ZapLogger,
) *ProxyHandler {
	return &ProxyHandler{
		codec:       codec,
		origin:      origin,
		rewriter:    rewriter,
		revocations: revocations,
		log:         log,
	}
}

// GET /video-proxy/*
func (h *ProxyHandler) Serve(w http.ResponseWriter, r *http.Request) {
	resourcePath := chi.URLParam(r, "*")
	token := r.URL.Query().Get("token")

	if token == "" {
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "invalid or expired token")
		return
	}

	payload, err := h.codec.Decode(token)
	if err != nil {
		// expired and malformed share one message on purpose: a split here
		// hands an attacker a signature-verification oracle
		h.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "proxy token rejected",
			Error:   err,
		})
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "invalid or expired token")
		return
	}

	if h.revocations != nil {
		revoked, err := h.revocations.IsRevoked(r.Context(), payload.ID)
		if err != nil {
			h.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "revocation check failed",
				Error:   err,
			})
		} else if revoked {
			writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "invalid or expired token")
			return
		}
	}

	// Clean first so "v1/../other" cannot sneak past the prefix check; the
	// trailing slash keeps a token for v1 away from v12.
	resourcePath = path.Clean(resourcePath)
	if !strings.HasPrefix(resourcePath, payload.VideoID+"/") {
		writeError(w, http.StatusForbidden, "VIDEO_MISMATCH", "video id mismatch")
		return
	}

	resp, err := h.origin.Fetch(r.Context(), resourcePath)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "origin fetch failed",
			Fields:  map[string]any{"path": resourcePath},
			Error:   err,
		})
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "origin unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		writeError(w, resp.StatusCode, "UPSTREAM_ERROR", "origin returned an error")
		return
	}

	contentType := resp.Header.Get("Content-Type")

	// the video element runs in a separate browsing context from the page
	// that negotiated the token
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if strings.Contains(contentType, "mpegurl") || strings.HasSuffix(resourcePath, ".m3u8") {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to read manifest")
			return
		}

		rewritten := h.rewriter.Rewrite(string(body), payload.VideoID, token)

		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		w.Header().Set("Cache-Control", manifestCacheControl)
		_, _ = w.Write([]byte(rewritten))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", segmentCacheControl)
	_, _ = io.Copy(w, resp.Body)
}
