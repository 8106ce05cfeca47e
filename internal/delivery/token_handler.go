package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/streamgate/internal/domain"
	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/Vovarama1992/streamgate/internal/ports"
)

type TokenHandler struct {
	codec        ports.TokenCodec
	entitlements ports.EntitlementRepository
	revocations  ports.RevocationList
	ttl          time.Duration
	log          *logger.ZapLogger
}

func NewTokenHandler(
	codec ports.TokenCodec,
	entitlements ports.EntitlementRepository,
	revocations ports.RevocationList,
	ttl time.Duration,
	log *logger.ZapLogger,
) *TokenHandler {
	return &TokenHandler{
		codec:        codec,
		entitlements: entitlements,
		revocations:  revocations,
		ttl:          ttl,
		log:          log,
	}
}

// POST /video/token
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "missing session")
		return
	}

	var req struct {
		VideoID  string `json:"videoId"`
		LessonID string `json:"lessonId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json: "+err.Error())
		return
	}
	if req.VideoID == "" || req.LessonID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "videoId and lessonId are required")
		return
	}

	if identity.Elevated() {
		// admins and curators skip the enrollment check, but the lesson must exist
		exists, err := h.entitlements.LessonExists(r.Context(), req.LessonID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "entitlement lookup failed")
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "lesson not found")
			return
		}
	} else {
		allowed, err := h.entitlements.HasActiveEnrollment(r.Context(), identity.UserID, req.LessonID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "entitlement lookup failed")
			return
		}
		if !allowed {
			writeError(w, http.StatusForbidden, "NO_ACCESS", "no access to this lesson")
			return
		}
	}

	expiresAt := time.Now().Add(h.ttl)

	token, err := h.codec.Encode(models.VideoToken{
		VideoID:   req.VideoID,
		UserID:    identity.UserID,
		LessonID:  req.LessonID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to sign token")
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "video token issued",
		Fields: map[string]any{
			"videoId":  req.VideoID,
			"lessonId": req.LessonID,
			"userId":   identity.UserID,
		},
	})

	writeData(w, map[string]string{
		"token":     token,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

// POST /video/token/revoke
func (h *TokenHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity == nil || identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "NO_ACCESS", "admin role required")
		return
	}
	if h.revocations == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "revocation is not enabled")
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "token is required")
		return
	}

	payload, err := h.codec.Decode(req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			// already dead, nothing to denylist
			writeJSON(w, http.StatusOK, apiResponse{Success: true})
			return
		}
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "token is not decodable")
		return
	}

	if err := h.revocations.Revoke(r.Context(), payload.ID, payload.ExpiresAt); err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to revoke token")
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "video token revoked",
		Fields: map[string]any{
			"tokenId": payload.ID,
			"videoId": payload.VideoID,
		},
	})

	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}
