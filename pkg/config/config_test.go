package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	for _, env := range []string{
		"DATABASE_URL", "AUDIT_DATABASE_URL", "WARDEN_AUDIT_ENABLED", "WARDEN_LOG_LEVEL",
		"WARDEN_PASSWORD_SALT", "WARDEN_ROOT_ADMIN_ID", "WARDEN_TOKEN_SECRET",
		"WARDEN_REFRESH_TOKEN_ID", "WARDEN_REFRESH_TOKEN_TTL", "WARDEN_REVOCATION_BACKEND",
		"REDIS_URL",
	} {
		t.Setenv(env, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRefreshTokenID, cfg.RefreshTokenID)
	assert.Equal(t, DefaultRefreshTokenTTL, cfg.RefreshTokenTTL)
	assert.Equal(t, BackendRedis, cfg.RevocationBackend)
	assert.Equal(t, DefaultRedisURL, cfg.RedisURL)
	assert.True(t, cfg.IsAuditEnabled())
	assert.Equal(t, "default", cfg.Source("refresh_token_ttl"))
}

func TestLoadFile_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database_url: postgres://warden:secret@db/warden
password_salt: pepper
token_secret: `+testSecret+`
refresh_token_ttl: 3600
audit_enabled: false
root_admin_id: root-1
`)
	t.Setenv("WARDEN_REFRESH_TOKEN_TTL", "7200")
	t.Setenv("WARDEN_REVOCATION_BACKEND", "redis")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "pepper", cfg.PasswordSalt)
	assert.Equal(t, "file", cfg.Source("password_salt"))
	assert.Equal(t, 7200, cfg.RefreshTokenTTL)
	assert.Equal(t, "environment", cfg.Source("refresh_token_ttl"))
	assert.Equal(t, BackendRedis, cfg.RevocationBackend)
	assert.False(t, cfg.IsAuditEnabled())
	assert.Equal(t, "file", cfg.Source("audit_enabled"))
	assert.Equal(t, "root-1", cfg.RootAdminID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "database_url: [unterminated")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *WardenConfig {
		cfg := newDefault()
		cfg.PasswordSalt = "pepper"
		cfg.TokenSecret = testSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*WardenConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*WardenConfig) {}},
		{name: "missing salt", mutate: func(c *WardenConfig) { c.PasswordSalt = "" }, wantErr: "password_salt"},
		{name: "short secret", mutate: func(c *WardenConfig) { c.TokenSecret = "short" }, wantErr: "token_secret"},
		{name: "zero ttl", mutate: func(c *WardenConfig) { c.RefreshTokenTTL = 0 }, wantErr: "refresh_token_ttl"},
		{name: "bad level", mutate: func(c *WardenConfig) { c.LogLevel = "trace" }, wantErr: "log_level"},
		{name: "memory backend", mutate: func(c *WardenConfig) { c.RevocationBackend = BackendMemory }},
		{name: "bad backend", mutate: func(c *WardenConfig) { c.RevocationBackend = "memcached" }, wantErr: "revocation_backend"},
		{name: "redis without url", mutate: func(c *WardenConfig) {
			c.RevocationBackend = BackendRedis
			c.RedisURL = ""
		}, wantErr: "redis_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormat_MasksSecrets(t *testing.T) {
	cfg := newDefault()
	cfg.DatabaseURL = "postgres://warden:hunter2@db/warden"
	cfg.TokenSecret = testSecret
	cfg.PasswordSalt = "pepper"

	text := cfg.FormatText()
	assert.NotContains(t, text, "hunter2")
	assert.NotContains(t, text, testSecret)
	assert.NotContains(t, text, "pepper")
	assert.Contains(t, text, "refresh_token_id")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	var parsed struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Attributes, len(attributeNames()))
}
