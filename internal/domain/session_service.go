package domain

import (
	"context"
	"errors"

	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

var ErrSessionInvalid = errors.New("session token invalid")

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// sessionService validates platform session tokens issued by the LMS. The
// proxy never mints these, it only needs the caller's id and role out of them.
type sessionService struct {
	secret []byte
}

func NewSessionService(secret string) ports.SessionService {
	return &sessionService{secret: []byte(secret)}
}

func (s *sessionService) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || claims.Subject == "" {
		return nil, ErrSessionInvalid
	}

	role := claims.Role
	if role == "" {
		role = models.RoleStudent
	}

	return &models.Identity{
		UserID: claims.Subject,
		Role:   role,
	}, nil
}
