package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the resolved portal URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		override, err := config.Override()
		if err != nil {
			return err
		}

		fmt.Printf("Portal URL: %s\n", cfg.BaseURL)
		if override != "" {
			fmt.Println("Source:     saved override")
		} else {
			fmt.Printf("Source:     %s or default\n", config.EnvBaseURL)
		}
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-api-url <url>",
	Short: "Save a portal URL override",
	Long: `Save a portal URL override in the state directory. The override
shadows the ` + config.EnvBaseURL + ` environment variable until it is
removed with 'trackctl config unset-api-url'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetOverride(args[0]); err != nil {
			return err
		}
		fmt.Printf("Portal URL set to %s\n", args[0])
		return nil
	},
}

var configUnsetURLCmd = &cobra.Command{
	Use:   "unset-api-url",
	Short: "Remove the saved portal URL override",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearOverride(); err != nil {
			return err
		}
		fmt.Println("Portal URL override removed.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetURLCmd)
	configCmd.AddCommand(configUnsetURLCmd)

	rootCmd.AddCommand(configCmd)
}
