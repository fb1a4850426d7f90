package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/phuslu/log"

	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/history"
	"github.com/nhle/fast-task/internal/jira"
	"github.com/nhle/fast-task/internal/theme"
	"github.com/nhle/fast-task/internal/workflow"
)

// cmdCreate runs the interactive issue-creation workflow. The
// preconditions (configured connection, at least one project alias)
// are checked here; the workflow itself assumes them.
func cmdCreate(w, wErr io.Writer) int {
	profile := loadProfile(wErr)
	if !requireConfigured(profile, wErr) {
		return ExitErr
	}
	if len(profile.Projects) == 0 {
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			"No projects configured. Add one first:",
		))
		fmt.Fprintln(wErr, theme.HintStyle.Render("  fast-task add-project"))
		return ExitErr
	}

	client := jira.NewClient(profile.BaseURL, profile.Token)
	wf := workflow.New(profile, client, workflow.HuhPrompter{}, w)

	outcome, err := wf.Run(context.Background())
	if err != nil {
		if errors.Is(err, workflow.ErrCancelled) {
			fmt.Fprintln(w, theme.HintStyle.Render("Issue creation cancelled."))
			return ExitOK
		}
		log.Warn().Err(err).Msg("issue creation failed")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Failed to create issue: %v", err),
		))
		return ExitErr
	}

	fmt.Fprintln(w, theme.SuccessStyle.Render("Issue created successfully!"))
	fmt.Fprintf(w, "  %s\n", theme.URLStyle.Render(outcome.IssueURL))

	if err := clipboard.WriteAll(outcome.IssueURL); err == nil {
		fmt.Fprintln(w, theme.HintStyle.Render("  (copied to clipboard)"))
	} else {
		log.Debug().Err(err).Msg("clipboard copy failed")
	}

	appendHistory(outcome)
	return ExitOK
}

// appendHistory records the created issue. Best-effort: a missing or
// broken history database is logged and never surfaced as a command
// failure.
func appendHistory(outcome workflow.Outcome) {
	dir, err := config.Dir()
	if err != nil {
		log.Warn().Err(err).Msg("resolving config dir for history")
		return
	}

	store, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		log.Warn().Err(err).Msg("opening history store")
		return
	}
	defer store.Close()

	record := history.Record{
		IssueKey:   path.Base(outcome.IssueURL),
		IssueURL:   outcome.IssueURL,
		ProjectKey: outcome.Draft.ProjectKey,
		Title:      outcome.Draft.Title,
		IssueType:  outcome.Draft.IssueType.Name,
	}
	if err := store.Append(context.Background(), record); err != nil {
		log.Warn().Err(err).Msg("appending history record")
	}
}
