package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCustomerCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain code", "abc123", "abc123", false},
		{"redundant prefix stripped", "customer-abc123", "abc123", false},
		{"prefix stripped exactly once", "customer-customer-abc", "customer-abc", false},
		{"surrounding whitespace", "  abc123  ", "abc123", false},
		{"empty", "", "", true},
		{"prefix only", "customer-", "", true},
		{"uppercase", "ABC123", "", true},
		{"underscore", "abc_123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCustomerCode(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("AUTH_SECRET", "auth-secret")
	t.Setenv("VIDEO_TOKEN_SECRET", "video-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/lms")
	t.Setenv("STREAM_CUSTOMER_CODE", "customer-abc123")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "abc123", cfg.CustomerCode)
	assert.Equal(t, "https://customer-abc123.cloudflarestream.com", cfg.OriginBase.String())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 8*time.Second, cfg.UpstreamTimeout)
}

func TestLoadFailsFast(t *testing.T) {
	t.Setenv("AUTH_SECRET", "auth-secret")
	t.Setenv("VIDEO_TOKEN_SECRET", "video-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/lms")
	t.Setenv("STREAM_CUSTOMER_CODE", "Not A Code!")

	_, err := Load()
	assert.Error(t, err)
}
