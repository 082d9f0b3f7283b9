package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "trackctl",
	Short: "Document tracking portal client",
	Long: `trackctl is a terminal client for the document tracking portal used by
schools and division offices. It signs you in, keeps your session and
profile in sync with the portal, and lets you manage your account
without opening a browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootVerbose {
			log.SetDefaultLogger(log.New(log.VerboseConfig()))
		}
	},
}

var rootVerbose bool

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "enable debug logging")
}
