package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/warden"
	ConfigFileName    = "warden.yml"

	DefaultRefreshTokenID  = "warden-refresh"
	DefaultRefreshTokenTTL = 604800
	DefaultRedisURL        = "redis://localhost:6379/0"

	// MinTokenSecretLength is the minimum HS256 key length in bytes
	MinTokenSecretLength = 32
)

// Revocation backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ValidLogLevels is the list of accepted log_level values
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// WardenConfig holds all warden configuration settings
type WardenConfig struct {
	// DatabaseURL is the PostgreSQL connection URL for the main schema
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// AuditDatabaseURL is the PostgreSQL connection URL for audit messages
	AuditDatabaseURL string `yaml:"audit_database_url" json:"audit_database_url"`

	// AuditEnabled toggles the audit trail
	AuditEnabled *bool `yaml:"audit_enabled" json:"audit_enabled"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// PasswordSalt is the server-side salt mixed into every password digest
	PasswordSalt string `yaml:"password_salt" json:"password_salt"`

	// RootAdminID is the administrator that can never be deleted and bypasses group scoping
	RootAdminID string `yaml:"root_admin_id" json:"root_admin_id"`

	// TokenSecret is the HS256 key for refresh tokens
	TokenSecret string `yaml:"token_secret" json:"token_secret"`

	// RefreshTokenID is the jti every refresh token carries
	RefreshTokenID string `yaml:"refresh_token_id" json:"refresh_token_id"`

	// RefreshTokenTTL is the refresh token lifetime in seconds
	RefreshTokenTTL int `yaml:"refresh_token_ttl" json:"refresh_token_ttl"`

	// RevocationBackend selects the blacklist cache: memory or redis
	RevocationBackend string `yaml:"revocation_backend" json:"revocation_backend"`

	// RedisURL is used when RevocationBackend is redis
	RedisURL string `yaml:"redis_url" json:"redis_url"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *WardenConfig {
	enabled := true
	return &WardenConfig{
		AuditEnabled:      &enabled,
		LogLevel:          "info",
		RefreshTokenID:    DefaultRefreshTokenID,
		RefreshTokenTTL:   DefaultRefreshTokenTTL,
		RevocationBackend: BackendRedis,
		RedisURL:          DefaultRedisURL,
		sources:           make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*WardenConfig, error) {
	configPath := os.Getenv("WARDEN_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return LoadFile(filepath.Join(configPath, ConfigFileName))
}

// LoadFile loads configuration from the given file (a missing file is not an error)
// and applies environment overrides.
func LoadFile(path string) (*WardenConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var fileConfig WardenConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "audit_database_url", "audit_enabled", "log_level",
		"password_salt", "root_admin_id", "token_secret", "refresh_token_id",
		"refresh_token_ttl", "revocation_backend", "redis_url",
	}
}

func (c *WardenConfig) applyFileConfig(file *WardenConfig) {
	setString := func(name string, dst *string, val string) {
		if val != "" {
			*dst = val
			c.sources[name] = "file"
		}
	}
	setString("database_url", &c.DatabaseURL, file.DatabaseURL)
	setString("audit_database_url", &c.AuditDatabaseURL, file.AuditDatabaseURL)
	setString("log_level", &c.LogLevel, file.LogLevel)
	setString("password_salt", &c.PasswordSalt, file.PasswordSalt)
	setString("root_admin_id", &c.RootAdminID, file.RootAdminID)
	setString("token_secret", &c.TokenSecret, file.TokenSecret)
	setString("refresh_token_id", &c.RefreshTokenID, file.RefreshTokenID)
	setString("revocation_backend", &c.RevocationBackend, file.RevocationBackend)
	setString("redis_url", &c.RedisURL, file.RedisURL)

	if file.AuditEnabled != nil {
		c.AuditEnabled = file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.RefreshTokenTTL != 0 {
		c.RefreshTokenTTL = file.RefreshTokenTTL
		c.sources["refresh_token_ttl"] = "file"
	}
}

func (c *WardenConfig) applyEnvConfig() {
	setString := func(name, env string, dst *string) {
		if val := os.Getenv(env); val != "" {
			*dst = strings.TrimSpace(val)
			c.sources[name] = "environment"
		}
	}
	setString("database_url", "DATABASE_URL", &c.DatabaseURL)
	setString("audit_database_url", "AUDIT_DATABASE_URL", &c.AuditDatabaseURL)
	setString("log_level", "WARDEN_LOG_LEVEL", &c.LogLevel)
	setString("password_salt", "WARDEN_PASSWORD_SALT", &c.PasswordSalt)
	setString("root_admin_id", "WARDEN_ROOT_ADMIN_ID", &c.RootAdminID)
	setString("token_secret", "WARDEN_TOKEN_SECRET", &c.TokenSecret)
	setString("refresh_token_id", "WARDEN_REFRESH_TOKEN_ID", &c.RefreshTokenID)
	setString("revocation_backend", "WARDEN_REVOCATION_BACKEND", &c.RevocationBackend)
	setString("redis_url", "REDIS_URL", &c.RedisURL)

	if val := os.Getenv("WARDEN_AUDIT_ENABLED"); val != "" {
		enabled := val == "true" || val == "1"
		c.AuditEnabled = &enabled
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("WARDEN_REFRESH_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RefreshTokenTTL = i
			c.sources["refresh_token_ttl"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *WardenConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *WardenConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// IsAuditEnabled reports whether audit events should be recorded
func (c *WardenConfig) IsAuditEnabled() bool {
	return c.AuditEnabled == nil || *c.AuditEnabled
}

// RefreshTTL returns the refresh token TTL as a duration
func (c *WardenConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Second
}

// Debug reports whether debug logging is configured
func (c *WardenConfig) Debug() bool {
	return c.LogLevel == "debug"
}

// Validate validates the configuration
func (c *WardenConfig) Validate() error {
	if c.PasswordSalt == "" {
		return fmt.Errorf("password_salt is required")
	}
	if len(c.TokenSecret) < MinTokenSecretLength {
		return fmt.Errorf("token_secret must be at least %d bytes", MinTokenSecretLength)
	}
	if c.RefreshTokenID == "" {
		return fmt.Errorf("refresh_token_id must not be empty")
	}
	if c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("invalid refresh_token_ttl: %d", c.RefreshTokenTTL)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	switch c.RevocationBackend {
	case BackendMemory:
	case BackendRedis:
		if _, err := url.Parse(c.RedisURL); err != nil || c.RedisURL == "" {
			return fmt.Errorf("invalid redis_url: %s", c.RedisURL)
		}
	default:
		return fmt.Errorf("invalid revocation_backend: %s", c.RevocationBackend)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// Secrets are masked.
func (c *WardenConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "database_url", Value: maskURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "audit_database_url", Value: maskURL(c.AuditDatabaseURL), Source: c.Source("audit_database_url")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.IsAuditEnabled()), Source: c.Source("audit_enabled")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "password_salt", Value: mask(c.PasswordSalt), Source: c.Source("password_salt")},
		{Name: "root_admin_id", Value: c.RootAdminID, Source: c.Source("root_admin_id")},
		{Name: "token_secret", Value: mask(c.TokenSecret), Source: c.Source("token_secret")},
		{Name: "refresh_token_id", Value: c.RefreshTokenID, Source: c.Source("refresh_token_id")},
		{Name: "refresh_token_ttl", Value: strconv.Itoa(c.RefreshTokenTTL), Source: c.Source("refresh_token_ttl")},
		{Name: "revocation_backend", Value: c.RevocationBackend, Source: c.Source("revocation_backend")},
		{Name: "redis_url", Value: maskURL(c.RedisURL), Source: c.Source("redis_url")},
	}
}

// FormatText returns a text representation of the configuration
func (c *WardenConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *WardenConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// maskURL hides the password component of a connection URL
func maskURL(s string) string {
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return mask(s)
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
