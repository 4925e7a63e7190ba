package main

import (
	"fmt"
	"os"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
)

// main runs the CLI
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		_ = rootCmd.Help()
		os.Exit(output.ExitGeneralError.Int())
	}
}
