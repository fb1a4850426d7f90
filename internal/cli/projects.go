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

// cmdAddProject asks for a project key and display name and stores the
// alias. An existing key gets its name replaced.
func cmdAddProject(w, wErr io.Writer) int {
	profile := loadProfile(wErr)

	var key, name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project key").
				Description("The Jira project key").
				Placeholder("e.g. PRKEY").
				Value(&key).
				Validate(fieldValidator(
					"required",
					"Project key cannot be empty",
				)),
			huh.NewInput().
				Title("Project name").
				Description("A display name for this project").
				Value(&name).
				Validate(fieldValidator(
					"required",
					"Project name cannot be empty",
				)),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(w, theme.HintStyle.Render("Cancelled."))
			return ExitOK
		}
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Adding project failed: %v", err),
		))
		return ExitErr
	}

	profile.AddProject(key, name)
	if err := config.Save(profile); err != nil {
		log.Error().Err(err).Msg("saving profile")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Saving configuration failed: %v", err),
		))
		return ExitErr
	}

	fmt.Fprintln(w, theme.SuccessStyle.Render("New project added successfully!"))
	return ExitOK
}

// cmdRemoveProject selects one alias, confirms, and removes it.
func cmdRemoveProject(w, wErr io.Writer) int {
	profile := loadProfile(wErr)

	if len(profile.Projects) == 0 {
		fmt.Fprintln(w, theme.HintStyle.Render(
			"No projects configured. Use 'fast-task add-project' to add one.",
		))
		return ExitOK
	}

	options := make([]string, len(profile.Projects))
	for i, alias := range profile.Projects {
		options[i] = fmt.Sprintf("%s - %s", alias.Key, alias.Name)
	}

	var chosen string
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Remove which project?").
				Options(huh.NewOptions(options...)...).
				Value(&chosen),
			huh.NewConfirm().
				Title("Remove this project alias?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(w, theme.HintStyle.Render("Cancelled."))
			return ExitOK
		}
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Removing project failed: %v", err),
		))
		return ExitErr
	}

	if !confirmed {
		fmt.Fprintln(w, theme.HintStyle.Render("Nothing removed."))
		return ExitOK
	}

	var key string
	for i, option := range options {
		if option == chosen {
			key = profile.Projects[i].Key
			break
		}
	}

	if !profile.RemoveProject(key) {
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Project %s not found.", key),
		))
		return ExitErr
	}
	if err := config.Save(profile); err != nil {
		log.Error().Err(err).Msg("saving profile")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Saving configuration failed: %v", err),
		))
		return ExitErr
	}

	fmt.Fprintln(w, theme.SuccessStyle.Render(
		fmt.Sprintf("Project %s removed.", key),
	))
	return ExitOK
}

// cmdListProjects prints the alias table.
func cmdListProjects(w, wErr io.Writer) int {
	profile := loadProfile(wErr)

	if len(profile.Projects) == 0 {
		fmt.Fprintln(w, theme.HintStyle.Render(
			"No projects configured. Use 'fast-task add-project' to add one.",
		))
		return ExitOK
	}

	fmt.Fprintln(w, theme.HeaderStyle.Render("Configured projects:"))
	for _, key := range profile.ProjectKeys() {
		fmt.Fprintf(
			w, "  %s - %s\n",
			theme.KeyStyle.Render(key), profile.ProjectName(key),
		)
	}
	return ExitOK
}
