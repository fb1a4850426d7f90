package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/phuslu/log"

	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/history"
	"github.com/nhle/fast-task/internal/theme"
)

const defaultHistoryLimit = 20

// cmdHistory lists recently created issues, newest first. An optional
// numeric argument overrides the default limit.
func cmdHistory(w, wErr io.Writer, args []string) int {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(wErr, theme.ErrorStyle.Render(
				fmt.Sprintf("Invalid count: %s", args[0]),
			))
			return ExitUsage
		}
		limit = n
	}

	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Resolving config directory failed: %v", err),
		))
		return ExitErr
	}

	store, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		log.Warn().Err(err).Msg("opening history store")
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Opening history failed: %v", err),
		))
		return ExitErr
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), limit)
	if err != nil {
		fmt.Fprintln(wErr, theme.ErrorStyle.Render(
			fmt.Sprintf("Reading history failed: %v", err),
		))
		return ExitErr
	}

	if len(records) == 0 {
		fmt.Fprintln(w, theme.HintStyle.Render(
			"No issues created yet. Use 'fast-task create' to create one.",
		))
		return ExitOK
	}

	fmt.Fprintln(w, theme.HeaderStyle.Render("Recently created issues:"))
	for _, r := range records {
		fmt.Fprintf(
			w, "  %s  %s  (%s)  %s\n",
			theme.KeyStyle.Render(r.IssueKey),
			r.Title,
			r.IssueType,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
		fmt.Fprintf(w, "      %s\n", theme.URLStyle.Render(r.IssueURL))
	}
	return ExitOK
}
