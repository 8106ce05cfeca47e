package domain

import (
	"errors"
	"strings"

	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMalformed = errors.New("token malformed or badly signed")
	ErrTokenExpired   = errors.New("token expired")
)

type videoClaims struct {
	VideoID  string `json:"videoId"`
	UserID   string `json:"userId"`
	LessonID string `json:"lessonId"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) ports.TokenCodec {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Encode(payload models.VideoToken) (string, error) {
	id := payload.ID
	if id == "" {
		id = uuid.NewString()
	}

	claims := videoClaims{
		VideoID:  payload.VideoID,
		UserID:   payload.UserID,
		LessonID: payload.LessonID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(payload.ExpiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Decode(token string) (*models.VideoToken, error) {
	// careless callers sometimes append their own query params to the token
	if i := strings.Index(token, "?"); i >= 0 {
		token = token[:i]
	}

	var claims videoClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if claims.VideoID == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	return &models.VideoToken{
		ID:        claims.ID,
		VideoID:   claims.VideoID,
		UserID:    claims.UserID,
		LessonID:  claims.LessonID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
