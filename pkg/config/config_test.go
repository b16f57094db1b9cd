package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reqd.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Encryption.SecretEnv != DefaultSecretEnv {
		t.Errorf("SecretEnv = %q", cfg.Encryption.SecretEnv)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: 9000
log:
  level: debug
  format: json
execute:
  timeoutSeconds: 30
cors:
  allowedOrigins:
    - https://app.example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if got := cfg.ExecuteTimeout(); got != 30*time.Second {
		t.Errorf("ExecuteTimeout = %v", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "port: -1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestResolveSecretPrefersInline(t *testing.T) {
	t.Setenv(DefaultSecretEnv, "from-environment-value")
	cfg := Default()
	cfg.Encryption.Secret = "inline-secret-value"
	if got := cfg.ResolveSecret(); got != "inline-secret-value" {
		t.Errorf("ResolveSecret = %q", got)
	}
}

func TestResolveSecretFromEnv(t *testing.T) {
	t.Setenv(DefaultSecretEnv, "from-environment-value")
	cfg := Default()
	if got := cfg.ResolveSecret(); got != "from-environment-value" {
		t.Errorf("ResolveSecret = %q", got)
	}
}

func TestValidateSecret(t *testing.T) {
	if err := ValidateSecret(""); err == nil {
		t.Error("empty secret should fail")
	}
	if err := ValidateSecret("short"); err == nil {
		t.Error("short secret should fail")
	}
	if err := ValidateSecret("a-long-enough-secret"); err != nil {
		t.Errorf("valid secret rejected: %v", err)
	}
}
