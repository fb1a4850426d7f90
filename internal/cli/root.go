package cli

import (
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/theme"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitErr   = 1
	ExitUsage = 2
)

// Run is the CLI entry point. It dispatches the first argument as a
// subcommand and returns an exit code.
func Run(args []string, stdout, stderr io.Writer, version string) int {
	if len(args) == 0 {
		printUsage(stderr)
		return ExitUsage
	}

	cmd := args[0]
	cmdArgs := args[1:]
	log.Info().Str("command", cmd).Msg("command started")

	switch cmd {
	case "config":
		return cmdConfig(stdout, stderr)
	case "add-project":
		return cmdAddProject(stdout, stderr)
	case "remove-project":
		return cmdRemoveProject(stdout, stderr)
	case "list-projects":
		return cmdListProjects(stdout, stderr)
	case "test":
		return cmdTest(stdout, stderr)
	case "create":
		return cmdCreate(stdout, stderr)
	case "history":
		return cmdHistory(stdout, stderr, cmdArgs)
	case "version":
		fmt.Fprintf(stdout, "fast-task %s\n", version)
		return ExitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return ExitOK
	default:
		fmt.Fprintln(stderr, theme.ErrorStyle.Render(
			fmt.Sprintf("Unknown command: %s", cmd),
		))
		printUsage(stderr)
		return ExitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, theme.HeaderStyle.Render("fast-task — create Jira issues from the command line"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: fast-task <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  config          Configure the Jira connection")
	fmt.Fprintln(w, "  add-project     Add a project alias")
	fmt.Fprintln(w, "  remove-project  Remove a project alias")
	fmt.Fprintln(w, "  list-projects   List configured project aliases")
	fmt.Fprintln(w, "  test            Test the Jira connection")
	fmt.Fprintln(w, "  create          Create a new issue interactively")
	fmt.Fprintln(w, "  history [n]     Show recently created issues")
	fmt.Fprintln(w, "  version         Print the version")
	fmt.Fprintln(w, "  help            Show this help")
}

// loadProfile reads the stored profile. An unreadable profile is
// reported once and then treated as unconfigured.
func loadProfile(wErr io.Writer) *config.Profile {
	profile, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("stored profile unreadable")
		fmt.Fprintln(wErr, theme.HintStyle.Render(
			"Stored configuration could not be read; treating it as empty.",
		))
	}
	return profile
}

// requireConfigured checks the remote-call precondition and prints the
// configure hint when it fails.
func requireConfigured(profile *config.Profile, wErr io.Writer) bool {
	if profile.IsConfigured() {
		return true
	}
	fmt.Fprintln(wErr, theme.ErrorStyle.Render(
		"Please configure the Jira connection first:",
	))
	fmt.Fprintln(wErr, theme.HintStyle.Render("  fast-task config"))
	return false
}
