package main

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Install the published credential locally",
	Long: `Fetch the published credential from the vault and install it into the
local secrets directory.

Run on consumer hosts. A stale or malformed published credential is
rejected and the previously installed credential is left untouched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli, err := createCLI()
		if err != nil {
			exitWithError(err)
		}

		exitWithError(cli.Sync())
	},
}
