package main

import (
	"github.com/spf13/cobra"
)

var setupToken string

var setupCmd = &cobra.Command{
	Use:   "setup [TOKEN]",
	Short: "Redeem a one-time token into vault client storage",
	Long: `Exchange a Keeper one-time token for persistent vault client storage.

The token may be passed as an argument, with --token, or entered at the
hidden prompt. One-time tokens normally start with "ksm_ott_". Existing
client storage is moved aside to a .backup copy before redeeming.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tok := setupToken
		if len(args) == 1 {
			tok = args[0]
		}

		cli, err := createSetupCLI()
		if err != nil {
			exitWithError(err)
		}

		exitWithError(cli.Setup(tok))
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupToken, "token", "", "One-time token (prompted for when omitted)")
}
