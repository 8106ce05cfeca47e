package domain

import (
	"testing"
	"time"

	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func validPayload() models.VideoToken {
	return models.VideoToken{
		ID:        "tok-1",
		VideoID:   "v1",
		UserID:    "u1",
		LessonID:  "l1",
		ExpiresAt: time.Now().Add(2 * time.Hour).Truncate(time.Second),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret)
	payload := validPayload()

	token, err := svc.Encode(payload)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, payload.ID, decoded.ID)
	assert.Equal(t, payload.VideoID, decoded.VideoID)
	assert.Equal(t, payload.UserID, decoded.UserID)
	assert.Equal(t, payload.LessonID, decoded.LessonID)
	assert.Equal(t, payload.ExpiresAt.Unix(), decoded.ExpiresAt.Unix())
}

func TestTokenEncodeAssignsID(t *testing.T) {
	svc := NewTokenService(testSecret)

	payload := validPayload()
	payload.ID = ""

	token, err := svc.Encode(payload)
	require.NoError(t, err)

	decoded, err := svc.Decode(token)
	require.NoError(t, err)
	assert.NotEmpty(t, decoded.ID)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService(testSecret)

	payload := validPayload()
	payload.ExpiresAt = time.Now().Add(-time.Minute)

	token, err := svc.Encode(payload)
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("some-other-secret").Encode(validPayload())
	require.NoError(t, err)

	_, err = NewTokenService(testSecret).Decode(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService(testSecret)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Decode(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestTokenQueryContaminationStripped(t *testing.T) {
	svc := NewTokenService(testSecret)

	token, err := svc.Encode(validPayload())
	require.NoError(t, err)

	decoded, err := svc.Decode(token + "?foo=bar&baz=1")
	require.NoError(t, err)
	assert.Equal(t, "v1", decoded.VideoID)
}

func TestTokenMissingVideoID(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret).Decode(raw)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
