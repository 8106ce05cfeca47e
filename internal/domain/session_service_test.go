package domain

import (
	"context"
	"testing"
	"time"

	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signSession(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestSessionValid(t *testing.T) {
	svc := NewSessionService(testSecret)

	token := signSession(t, testSecret, jwt.MapClaims{
		"sub":  "u1",
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	identity, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.True(t, identity.Elevated())
}

func TestSessionDefaultsToStudent(t *testing.T) {
	svc := NewSessionService(testSecret)

	token := signSession(t, testSecret, jwt.MapClaims{
		"sub": "u2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	identity, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, identity.Role)
	assert.False(t, identity.Elevated())
}

func TestSessionRejected(t *testing.T) {
	svc := NewSessionService(testSecret)

	wrongSecret := signSession(t, "other-secret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	missingSubject := signSession(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	for _, token := range []string{wrongSecret, missingSubject, "garbage"} {
		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrSessionInvalid)
	}
}
