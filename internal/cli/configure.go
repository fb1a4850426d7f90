package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/phuslu/log"

	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/theme"
)

// cmdConfig runs the connection-settings form and saves the profile.
// The token goes to the keyring; everything else to the JSON file.
func cmdConfig(w, wErr io.Writer) int {
	profile := loadProfile(wErr)

	baseURL := profile.BaseURL
	email := profile.Email
	token := profile.Token

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira URL").
				Description("Your Jira instance URL (include https://)").
				Placeholder("https://jira.example.com").
				Value(&baseURL).
				Validate(fieldValidator(
					"required,url",
					"Enter a valid URL, including https://",
				)),
			huh.NewInput().
				Title("Jira email").
				Description("Your email address for Jira authentication").
				Placeholder("user@company.com").
				Value(&email).
				Validate(fieldValidator(
					"required,email",
					"Enter a valid email address",
				)),
			huh.NewInput().
				Title("API token").
				Description("Your Jira API token").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(fieldValidator(
					"required",
					"API token cannot be empty",
				)),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(w, theme.HintStyle.Render("Configuration cancelled."))
			return ExitOK
		}
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Configuration failed: %v", err),
		))
		return ExitErr
	}

	profile.SetConnection(baseURL, email, token)
	if err := config.Save(profile); err != nil {
		log.Error().Err(err).Msg("saving profile")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Saving configuration failed: %v", err),
		))
		return ExitErr
	}

	fmt.Fprintln(w, theme.SuccessStyle.Render("Configuration saved!"))
	return ExitOK
}
