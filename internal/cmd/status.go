package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/auth"
	"github.com/doctrack/trackctl/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show who is signed in according to the locally stored session.

This reads local state only; it does not contact the portal. Use
'trackctl login' to re-validate the session against the server.`,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	rec, err := a.sessions.Current()
	if err != nil {
		if statusJSON {
			fmt.Println(`{"signed_in": false}`)
			return nil
		}
		fmt.Println("Not signed in.")
		return nil
	}

	if statusJSON {
		out := struct {
			SignedIn bool            `json:"signed_in"`
			Route    string          `json:"landing_route"`
			Record   *session.Record `json:"session"`
		}{true, auth.LandingRoute(rec.Role), rec}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Signed in as %s (%s)\n", rec.FullName(), rec.Role)
	fmt.Printf("Email:         %s\n", rec.Email)
	if rec.Role == session.RoleSchool {
		fmt.Printf("School:        %s\n", rec.SchoolName)
		fmt.Printf("Address:       %s\n", rec.SchoolAddress)
	} else {
		fmt.Printf("Office:        %s\n", rec.Office)
		fmt.Printf("Position:      %s\n", rec.Position)
	}
	fmt.Printf("Landing page:  %s\n", auth.LandingRoute(rec.Role))
	fmt.Printf("Portal:        %s\n", a.cfg.BaseURL)
	return nil
}
