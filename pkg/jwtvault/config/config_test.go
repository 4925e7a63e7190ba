package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.JWTRecordUID = "AAAA1111"
	cfg.ConfigRecordUID = "BBBB2222"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing jwt record uid",
			mutate:  func(c *Config) { c.JWTRecordUID = "" },
			wantErr: "jwt_record_uid",
		},
		{
			name:    "missing config record uid",
			mutate:  func(c *Config) { c.ConfigRecordUID = "" },
			wantErr: "config_record_uid",
		},
		{
			name:    "missing ksm config",
			mutate:  func(c *Config) { c.KSMConfig = "" },
			wantErr: "ksm_config",
		},
		{
			name:    "missing secrets dir",
			mutate:  func(c *Config) { c.SecretsDir = "" },
			wantErr: "secrets_dir",
		},
		{
			name:    "filename with path separator",
			mutate:  func(c *Config) { c.CredentialFilename = "nested/api.jwt" },
			wantErr: "bare filename",
		},
		{
			name:    "zero expiration",
			mutate:  func(c *Config) { c.ExpirationHours = 0 },
			wantErr: "expiration_hours",
		},
		{
			name:    "negative expiration",
			mutate:  func(c *Config) { c.ExpirationHours = -3 },
			wantErr: "expiration_hours",
		},
		{
			name: "multiple problems reported together",
			mutate: func(c *Config) {
				c.JWTRecordUID = ""
				c.ExpirationHours = 0
			},
			wantErr: "jwt_record_uid is required; ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config")

	content := "jwt_record_uid: AAAA1111\nconfig_record_uid: BBBB2222\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CredentialFilename != "api_access.jwt" {
		t.Errorf("expected default credential filename, got %q", cfg.CredentialFilename)
	}
	if cfg.Issuer != "api-development-server" {
		t.Errorf("expected default issuer, got %q", cfg.Issuer)
	}
	if cfg.Validity() != 24*time.Hour {
		t.Errorf("expected default 24h validity, got %v", cfg.Validity())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config with defaults should validate: %v", err)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty config file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config")

	cfg := validConfig()
	cfg.ExpirationHours = 1
	cfg.SecretsDir = filepath.Join(tmpDir, "secrets")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("os.Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected config mode 0600, got %o", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestCredentialPath(t *testing.T) {
	cfg := validConfig()
	cfg.SecretsDir = "secrets"

	want := filepath.Join("secrets", "api_access.jwt")
	if got := cfg.CredentialPath(); got != want {
		t.Errorf("CredentialPath = %q, want %q", got, want)
	}
	wantLog := filepath.Join("secrets", "jwt_notifications.log")
	if got := cfg.NotificationLogPath(); got != wantLog {
		t.Errorf("NotificationLogPath = %q, want %q", got, wantLog)
	}
}
