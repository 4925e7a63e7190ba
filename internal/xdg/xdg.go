package xdg

import (
	"os"
	"os/user"
	"path/filepath"
)

// Paths holds XDG-compliant directory paths.
type Paths struct {
	ConfigHome string
}

// NewPaths returns XDG-compliant directory paths. If XDG_CONFIG_HOME is
// set it is used; otherwise the default under the home directory applies.
func NewPaths() (Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		currentUser, err := user.Current()
		if err != nil {
			return Paths{}, err
		}
		configHome = filepath.Join(currentUser.HomeDir, ".config")
	}

	return Paths{ConfigHome: configHome}, nil
}

// ConfigPath returns the path to the config file.
func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigHome, "jwtvault", "config")
}

// EnsureDirs creates the config directory with restrictive permissions.
func (p Paths) EnsureDirs() error {
	return os.MkdirAll(filepath.Join(p.ConfigHome, "jwtvault"), 0o700)
}
