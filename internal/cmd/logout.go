package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/tui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

var logoutYes bool

func init() {
	logoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.sessions.Authenticated() {
		fmt.Println("Not signed in.")
		return nil
	}

	if !logoutYes && tui.ShouldPrompt() {
		confirmed, err := tui.PromptConfirm("Sign out?", true)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	if err := a.flow.Logout(); err != nil {
		return err
	}
	if err := a.jar.Clear(); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}
