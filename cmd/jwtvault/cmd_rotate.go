package main

import (
	"github.com/spf13/cobra"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Mint and publish a fresh credential",
	Long: `Mint a fresh signed credential from the vault signing material,
install it locally, and publish it to the configured vault record.

Run on the publisher host, typically from cron. Exit code 6 means the
local install succeeded but the vault publish failed; the published
record is stale until the next successful rotation.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli, err := createCLI()
		if err != nil {
			exitWithError(err)
		}

		exitWithError(cli.Rotate())
	},
}
