package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/doctrack/trackctl/internal/account"
	"github.com/doctrack/trackctl/internal/tui"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "View and manage your profile",
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Open the manage-account screen",
	Long: `Open the manage-account screen. The profile is refreshed from the
portal on entry; press e to edit, ctrl+s to save, r to retry after a
failed load.`,
	RunE: runAccountShow,
}

var accountEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile through a form",
	RunE:  runAccountEdit,
}

var accountAvatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Set your avatar image",
	Long: `Set your avatar from a local jpeg, jpg, png, or gif file (at most
5 MB). The avatar is stored with your session; the portal has no
avatar endpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runAccountAvatar,
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountEditCmd)
	accountCmd.AddCommand(accountAvatarCmd)

	rootCmd.AddCommand(accountCmd)
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	notices := tui.NewNotices()
	sync := a.synchronizer(notices)

	model := tui.NewAccountModel(cmd.Context(), sync, notices)
	_, err = tea.NewProgram(model).Run()
	return err
}

func runAccountEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sync := a.synchronizer(nil)
	rec, err := sync.Load(ctx)
	if err != nil {
		return err
	}

	staged := account.FromRecord(rec)
	if err := tui.EditProfileForm(
		&staged.FirstName, &staged.MiddleName, &staged.LastName,
		&staged.Email, &staged.ContactNumber,
	); err != nil {
		return err
	}

	updated, err := sync.Save(ctx, staged)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated for %s.\n", updated.FullName())
	return nil
}

func runAccountAvatar(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	rec, err := a.synchronizer(nil).AttachAvatar(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Avatar updated for %s.\n", rec.FullName())
	return nil
}
