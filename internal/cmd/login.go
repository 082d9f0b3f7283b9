package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/auth"
	"github.com/doctrack/trackctl/internal/session"
	"github.com/doctrack/trackctl/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the portal",
	Long: `Sign in to the document tracking portal.

An existing session is checked first; if the portal still accepts it
you are signed in without entering credentials. Otherwise a login form
is shown. Use --email and --password (or --role) for non-interactive
sign-in.`,
	RunE: runLogin,
}

var (
	loginEmail    string
	loginPassword string
	loginRole     string
	loginNoTUI    bool
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().StringVar(&loginRole, "role", "school", "account role (school, office, admin)")
	loginCmd.Flags().BoolVar(&loginNoTUI, "no-tui", false, "use plain prompts instead of the full-screen form")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// Flag-driven sign-in for scripts and CI.
	if loginEmail != "" || loginPassword != "" {
		role := session.Role(loginRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q (expected school, office, or admin)", loginRole)
		}
		outcome, err := a.flow.Login(ctx, role, loginEmail, loginPassword)
		if err != nil {
			return err
		}
		printOutcome(outcome)
		return nil
	}

	if loginNoTUI || !tui.ShouldPrompt() {
		return runLoginPrompts(cmd, a)
	}

	model := tui.NewLoginModel(ctx, a.flow)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return err
	}

	lm := final.(tui.LoginModel)
	if lm.Canceled() {
		return nil
	}
	if outcome := lm.Outcome(); outcome != nil {
		printOutcome(outcome)
	}
	return nil
}

func runLoginPrompts(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	// Reuse a live session when the portal still honors the cookie.
	if outcome, _ := a.flow.Probe(ctx, ""); outcome != nil {
		printOutcome(outcome)
		return nil
	}

	role, email, password, err := tui.PromptCredentials()
	if err != nil {
		return err
	}

	outcome, err := a.flow.Login(ctx, role, email, password)
	if err != nil {
		return err
	}
	printOutcome(outcome)
	return nil
}

func printOutcome(outcome *auth.Outcome) {
	fmt.Printf("Signed in as %s (%s)\n", outcome.Record.FullName(), outcome.Record.Role)
	fmt.Printf("Landing page: %s\n", outcome.Route)
}
