package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the local jwtvault configuration. It is constructed once at
// process start and passed by value into the publisher and syncer; there is
// no ambient global configuration state.
type Config struct {
	JWTRecordUID       string `yaml:"jwt_record_uid"`    // vault record holding the authoritative token
	ConfigRecordUID    string `yaml:"config_record_uid"` // vault record holding signing material and issuance overrides
	KSMConfig          string `yaml:"ksm_config"`        // path to the Keeper SDK key-value storage file
	SecretsDir         string `yaml:"secrets_dir"`
	CredentialFilename string `yaml:"credential_filename"`
	Issuer             string `yaml:"issuer"`
	Audience           string `yaml:"audience"`
	ExpirationHours    int    `yaml:"expiration_hours"`
}

// DefaultConfig returns a Config with the stock issuance parameters.
// Record UIDs have no sensible default and must be configured.
func DefaultConfig() Config {
	return Config{
		KSMConfig:          "ksm_config.json",
		SecretsDir:         "secrets",
		CredentialFilename: "api_access.jwt",
		Issuer:             "api-development-server",
		Audience:           "api-engineers",
		ExpirationHours:    24,
	}
}

// Load reads the config from the specified path. Unset optional keys fall
// back to the defaults; required keys are checked by Validate, not here.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if len(data) == 0 {
		return Config{}, fmt.Errorf("config file is empty: %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the specified path.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the config for completeness before any vault or file
// operation is attempted. It reports every problem at once so an operator
// fixes the file in a single pass.
func (c Config) Validate() error {
	var problems []string

	if c.JWTRecordUID == "" {
		problems = append(problems, "jwt_record_uid is required")
	}
	if c.ConfigRecordUID == "" {
		problems = append(problems, "config_record_uid is required")
	}
	if c.KSMConfig == "" {
		problems = append(problems, "ksm_config is required")
	}
	if c.SecretsDir == "" {
		problems = append(problems, "secrets_dir is required")
	}
	if c.CredentialFilename == "" {
		problems = append(problems, "credential_filename is required")
	} else if strings.ContainsRune(c.CredentialFilename, os.PathSeparator) ||
		strings.ContainsRune(c.CredentialFilename, '/') {
		problems = append(problems, "credential_filename must be a bare filename, not a path")
	}
	if c.Issuer == "" {
		problems = append(problems, "issuer is required")
	}
	if c.Audience == "" {
		problems = append(problems, "audience is required")
	}
	if c.ExpirationHours <= 0 {
		problems = append(problems, "expiration_hours must be a positive integer")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// CredentialPath returns the full path of the local credential file.
func (c Config) CredentialPath() string {
	return filepath.Join(c.SecretsDir, c.CredentialFilename)
}

// NotificationLogPath returns the path of the append-only rotation event log.
func (c Config) NotificationLogPath() string {
	return filepath.Join(c.SecretsDir, "jwt_notifications.log")
}

// Validity returns the configured token validity window.
func (c Config) Validity() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
