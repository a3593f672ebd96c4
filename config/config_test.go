package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, "mentorhub-auth", cfg.Auth.JWTIssuer)
	assert.Equal(t, 24, cfg.Auth.TTLHours)
	assert.Equal(t, "https://meet.jit.si", cfg.Meeting.BaseURL)
	assert.Equal(t, "mentores", cfg.Meeting.RoomPrefix)
	assert.Equal(t, 600, cfg.Cache.MentorTTLSeconds)
	assert.False(t, cfg.Cache.DisableMentorsCache)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MEETING_ROOM_PREFIX", "sala")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "sala", cfg.Meeting.RoomPrefix)
}
