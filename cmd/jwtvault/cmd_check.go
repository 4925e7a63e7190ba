package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Inspect the locally installed credential",
	Long: `Report the expiry, issuer, and rollback copies of the locally
installed credential without contacting the vault.

Exit code 4 means the installed credential is expired or malformed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli, err := createCLI()
		if err != nil {
			exitWithError(err)
		}

		exitWithError(cli.Check())
	},
}
