package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh/spinner"
	"github.com/phuslu/log"

	"github.com/nhle/fast-task/internal/jira"
	"github.com/nhle/fast-task/internal/theme"
)

// cmdTest checks endpoint and credential against the live instance.
// A failure is reported with context, never fatal to the process.
func cmdTest(w, wErr io.Writer) int {
	profile := loadProfile(wErr)
	if !requireConfigured(profile, wErr) {
		return ExitErr
	}

	client := jira.NewClient(profile.BaseURL, profile.Token)

	var err error
	spinErr := spinner.New().
		Title("Testing Jira connection...").
		Action(func() { err = client.TestConnection(context.Background()) }).
		Run()
	if spinErr != nil {
		err = spinErr
	}

	if err != nil {
		log.Warn().Err(err).Msg("connection test failed")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Connection failed: %v", err),
		))
		fmt.Fprintln(wErr, theme.HintStyle.Render("Check your configuration:"))
		fmt.Fprintf(wErr, "  URL: %s\n", profile.BaseURL)
		fmt.Fprintf(wErr, "  Email: %s\n", profile.Email)
		return ExitErr
	}

	fmt.Fprintln(w, theme.SuccessStyle.Render("Connection successful!"))
	fmt.Fprintf(w, "  URL: %s\n", profile.BaseURL)
	fmt.Fprintf(w, "  Email: %s\n", profile.Email)
	return ExitOK
}
