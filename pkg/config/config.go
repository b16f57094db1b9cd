// Package config loads and validates the reqd server configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when the config file omits a field.
const (
	DefaultPort = 4380

	// DefaultSecretEnv is the environment variable consulted for the
	// encryption secret when the config file does not set one inline.
	DefaultSecretEnv = "REQD_ENCRYPTION_SECRET"

	// MinSecretLength is the policy floor for the encryption secret.
	// Enforced here at the boundary, not by the codec.
	MinSecretLength = 16
)

// Config is the top-level server configuration, loaded from reqd.yaml.
type Config struct {
	// Port is the TCP port the API server listens on.
	Port int `yaml:"port"`

	// DataDir is the directory holding persisted workspace data.
	// Empty means the platform default data directory.
	DataDir string `yaml:"dataDir"`

	Log        LogConfig        `yaml:"log"`
	Encryption EncryptionConfig `yaml:"encryption"`
	Execute    ExecuteConfig    `yaml:"execute"`
	CORS       CORSConfig       `yaml:"cors"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// EncryptionConfig controls the secret used to derive the variable
// encryption key.
type EncryptionConfig struct {
	// Secret is the operator-supplied secret, inline. Prefer SecretEnv so
	// the secret stays out of the config file.
	Secret string `yaml:"secret"`

	// SecretEnv names an environment variable holding the secret.
	// Defaults to REQD_ENCRYPTION_SECRET.
	SecretEnv string `yaml:"secretEnv"`
}

// ExecuteConfig controls outbound request execution.
type ExecuteConfig struct {
	// TimeoutSeconds bounds each outbound call. Zero disables the timeout,
	// matching the historical behavior; operators opt in explicitly.
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

// CORSConfig controls cross-origin access to the API.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API.
	// Empty or ["*"] allows all origins.
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Encryption: EncryptionConfig{
			SecretEnv: DefaultSecretEnv,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config %s: invalid port %d", path, cfg.Port)
	}
	if cfg.Execute.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("config %s: negative execute timeout", path)
	}
	if cfg.Encryption.SecretEnv == "" {
		cfg.Encryption.SecretEnv = DefaultSecretEnv
	}

	return cfg, nil
}

// ResolveSecret returns the encryption secret, preferring the inline value
// over the environment variable. An empty result means secrets are
// unconfigured; any code path touching encrypted variables will fail until
// the operator sets one.
func (c *Config) ResolveSecret() string {
	if c.Encryption.Secret != "" {
		return c.Encryption.Secret
	}
	return os.Getenv(c.Encryption.SecretEnv)
}

// ValidateSecret applies the minimum-length policy to a secret.
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("encryption secret is not set")
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("encryption secret must be at least %d characters", MinSecretLength)
	}
	return nil
}

// ExecuteTimeout returns the configured outbound timeout as a duration.
// Zero means unbounded.
func (c *Config) ExecuteTimeout() time.Duration {
	return time.Duration(c.Execute.TimeoutSeconds) * time.Second
}
