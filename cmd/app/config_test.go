package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	path := filepath.Join(t.TempDir(), "config.env")

	configData := []byte(`
PORT=:8080
ENVIRONMENT=production
VERSION=1.2.3
MONGO_URI=mongodb://mongo.example.com:27017
MONGO_DB=blog
JWT_SECRET=file-secret
TOKEN_TTL=2h
UPLOAD_DIR=/srv/uploads
MAX_UPLOAD_BYTES=2048
RATE_LIMIT_ENABLED=false
RATE_LIMIT_RPS=1.5
RATE_LIMIT_BURST=3
`)
	require.NoError(t, os.WriteFile(path, configData, 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)

	// Verify the loaded config values
	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "1.2.3", config.Version)
	assert.Equal(t, "mongodb://mongo.example.com:27017", config.MongoURI)
	assert.Equal(t, "blog", config.MongoDB)
	assert.Equal(t, "file-secret", config.JWTSecret)
	assert.Equal(t, 2*time.Hour, config.TokenTTL)
	assert.Equal(t, "/srv/uploads", config.UploadDir)
	assert.Equal(t, int64(2048), config.MaxUploadBytes)
	assert.False(t, config.RateLimitEnabled)
	assert.Equal(t, 1.5, config.RateLimitRPS)
	assert.Equal(t, 3, config.RateLimitBurst)

	// values that are not in the file fall back to the defaults
	assert.Equal(t, "file://migrations", config.MigrationsPath)
	assert.Equal(t, "./public", config.PublicDir)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("MONGO_DB", "fromenv")

	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", config.JWTSecret)
	assert.Equal(t, "fromenv", config.MongoDB)
	assert.Equal(t, ":8000", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "mongodb://localhost:27017", config.MongoURI)
	assert.Equal(t, 24*time.Hour, config.TokenTTL)
	assert.Equal(t, "./public/uploads", config.UploadDir)
	assert.Equal(t, int64(10<<20), config.MaxUploadBytes)
	assert.True(t, config.RateLimitEnabled)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, errMissingJWTSecret)
}
