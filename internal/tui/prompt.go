package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/doctrack/trackctl/internal/session"
)

// PromptCredentials collects role, email, and password through a huh
// form. Used when the full-screen login is disabled.
func PromptCredentials() (session.Role, string, string, error) {
	role := session.RoleSchool
	var email, password string

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[session.Role]().
			Title("Sign in as").
			Options(
				huh.NewOption("School", session.RoleSchool),
				huh.NewOption("Office", session.RoleOffice),
				huh.NewOption("Admin", session.RoleAdmin),
			).
			Value(&role),
		huh.NewInput().
			Title("Email").
			Placeholder("you@deped.gov.ph").
			Value(&email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))

	if err := form.Run(); err != nil {
		return "", "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return role, email, password, nil
}

// PromptConfirm displays a yes/no confirmation prompt.
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// EditProfileForm collects the editable profile fields, seeded from
// the staged values. Validation runs inside the form so the user is
// told about a bad field before submitting.
func EditProfileForm(first, middle, last, email, contact *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("First name").Value(first).
			Validate(requireField("First and last name are required.")),
		huh.NewInput().Title("Middle name").Value(middle),
		huh.NewInput().Title("Last name").Value(last).
			Validate(requireField("First and last name are required.")),
		huh.NewInput().Title("Email").Value(email).
			Validate(requireField("Please enter a valid email.")),
		huh.NewInput().Title("Contact number").Value(contact).
			Validate(requireField("Please enter a contact number.")),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func requireField(message string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
