package main

import (
	"os"

	clilib "github.com/jwtvault/jwtvault/internal/cli"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
)

// GlobalOptions holds the global configuration flags
type GlobalOptions struct {
	ConfigPath string
	Silent     bool
}

// globalOpts is the shared global options instance
var globalOpts = &GlobalOptions{}

// createCLI creates a CLI instance with a fully validated configuration
func createCLI() (*clilib.CLI, error) {
	return clilib.NewCLI(globalOpts.ConfigPath, globalOpts.Silent, os.Stdin, os.Stdout, os.Stderr)
}

// createSetupCLI creates a CLI instance that tolerates a missing or
// incomplete configuration
func createSetupCLI() (*clilib.CLI, error) {
	return clilib.NewSetupCLI(globalOpts.ConfigPath, globalOpts.Silent, os.Stdin, os.Stdout, os.Stderr)
}

// exitWithError prints an error and exits with the appropriate code
func exitWithError(err error) {
	if err != nil {
		os.Exit(output.PrintError(os.Stderr, err).Int())
	}
}
