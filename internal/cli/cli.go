// Package cli implements the command logic behind the jwtvault binary.
// Each command maps a core operation's error taxonomy onto structured
// output codes and keeps secrets out of anything printed.
package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/jwtvault/jwtvault/internal/keeper"
	"github.com/jwtvault/jwtvault/internal/xdg"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/config"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

// ResolveConfigPath returns the effective config path considering:
// 1. Explicit configPath argument (the -c flag)
// 2. JWTVAULT_CONFIG environment variable
// 3. XDG default path
func ResolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envConfig := os.Getenv("JWTVAULT_CONFIG"); envConfig != "" {
		return envConfig
	}
	xdgPaths, _ := xdg.NewPaths()
	return xdgPaths.ConfigPath()
}

// CLI carries the loaded configuration and the injectable collaborators
// of one command invocation.
type CLI struct {
	configPath string
	cfg        config.Config

	// vaultStore is constructed lazily from the Keeper client storage;
	// tests inject a fake.
	vaultStore vault.Store

	// redeem exchanges a one-time token for client storage; tests
	// inject a stub.
	redeem func(oneTimeToken, configPath string) error

	stdin  io.Reader
	stderr io.Writer
	out    *output.Handler
	now    func() time.Time
}

// NewCLI loads and fully validates the configuration. All commands except
// setup require a complete configuration before touching the vault or the
// filesystem.
func NewCLI(configPath string, silent bool, stdin io.Reader, stdout, stderr io.Writer) (*CLI, error) {
	return newCLI(configPath, silent, true, stdin, stdout, stderr)
}

// NewSetupCLI loads the configuration without requiring record UIDs;
// setup only needs to know where the client storage file lives. A missing
// config file falls back to the defaults.
func NewSetupCLI(configPath string, silent bool, stdin io.Reader, stdout, stderr io.Writer) (*CLI, error) {
	return newCLI(configPath, silent, false, stdin, stdout, stderr)
}

func newCLI(configPath string, silent, requireComplete bool, stdin io.Reader, stdout, stderr io.Writer) (*CLI, error) {
	configPath = ResolveConfigPath(configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		switch {
		case !requireComplete && errors.Is(err, fs.ErrNotExist):
			cfg = config.DefaultConfig()
		case errors.Is(err, fs.ErrNotExist):
			return nil, output.NewErrorf(output.CodeConfigNotFound,
				"config file not found: %s (create it or set JWTVAULT_CONFIG)", configPath)
		default:
			return nil, output.NewErrorf(output.CodeConfigParseError, "failed to load config: %v", err)
		}
	}

	if requireComplete {
		if err := cfg.Validate(); err != nil {
			return nil, output.NewErrorf(output.CodeConfigInvalid, "%v", err)
		}
	}

	return &CLI{
		configPath: configPath,
		cfg:        cfg,
		redeem:     keeper.Redeem,
		stdin:      stdin,
		stderr:     stderr,
		out:        output.NewHandler(stdout, stderr, output.WithSilent(silent)),
		now:        time.Now,
	}, nil
}

// store returns the vault client, constructing it on first use.
func (c *CLI) store() (vault.Store, error) {
	if c.vaultStore != nil {
		return c.vaultStore, nil
	}
	client, err := keeper.NewClient(c.cfg.KSMConfig)
	if err != nil {
		return nil, output.NewErrorf(output.CodeVaultAuthFailed,
			"vault client unavailable: %v (run 'jwtvault setup' first)", err)
	}
	c.vaultStore = client
	return client, nil
}

// Config returns the effective configuration.
func (c *CLI) Config() config.Config {
	return c.cfg
}
