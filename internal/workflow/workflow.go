package workflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/jira"
)

// Creator is the slice of the Jira client the workflow drives:
// fetching the issue types of a project mid-run, and submitting the
// finished draft.
type Creator interface {
	IssueTypes(ctx context.Context, projectKey string) ([]jira.IssueType, error)
	CreateIssue(
		ctx context.Context,
		projectKey string,
		summary string,
		description *string,
		issueTypeID string,
	) (string, error)
}

// Prompter is the terminal surface the workflow asks its questions
// through. The production implementation runs huh forms; tests inject
// a scripted one.
type Prompter interface {
	// Select presents options for single choice and returns the chosen one.
	Select(title, help string, options []string) (string, error)

	// Input requests a single line of free text.
	Input(title, help, placeholder string) (string, error)

	// Text requests multi-line free text.
	Text(title, help, placeholder string) (string, error)

	// Confirm asks a yes/no question with the given default.
	Confirm(title, help string, def bool) (bool, error)

	// Busy runs fn while showing a progress indicator titled title.
	// It returns fn's error.
	Busy(title string, fn func() error) error
}

// Draft is the set of answers accumulated during one run. Submission
// happens only from a fully populated draft after explicit
// confirmation.
type Draft struct {
	ProjectKey  string
	Title       string
	Description *string
	IssueType   jira.IssueType
}

// Outcome is the terminal success of a run: the browse URL of the
// created issue plus the draft it was created from.
type Outcome struct {
	IssueURL string
	Draft    Draft
}

// Workflow walks the user through creating one issue: project, title,
// optional description, issue type, confirmation, submission. States
// advance strictly forward; every failure ends the run.
type Workflow struct {
	profile *config.Profile
	client  Creator
	prompt  Prompter
	out     io.Writer
}

// New builds a workflow over the given profile, client, and prompter.
// Informational lines (selection echo, the pre-confirmation summary)
// are written to out.
func New(
	profile *config.Profile,
	client Creator,
	prompt Prompter,
	out io.Writer,
) *Workflow {
	return &Workflow{
		profile: profile,
		client:  client,
		prompt:  prompt,
		out:     out,
	}
}

// Run executes the workflow and returns the browse URL of the created
// issue along with the submitted draft. Callers must ensure the
// profile is configured and has at least one project alias before
// entering. Client errors pass through unchanged; cancellation
// surfaces as ErrCancelled.
func (w *Workflow) Run(ctx context.Context) (Outcome, error) {
	var draft Draft

	key, err := w.selectProject()
	if err != nil {
		return Outcome{}, err
	}
	draft.ProjectKey = key

	fmt.Fprintf(
		w.out, "Selected project: %s (%s)\n",
		key, w.profile.ProjectName(key),
	)

	draft.Title, err = w.enterTitle()
	if err != nil {
		return Outcome{}, err
	}

	draft.Description, err = w.optionalDescription()
	if err != nil {
		return Outcome{}, err
	}

	types, err := w.fetchIssueTypes(ctx, draft.ProjectKey)
	if err != nil {
		return Outcome{}, err
	}

	draft.IssueType, err = w.selectIssueType(types)
	if err != nil {
		return Outcome{}, err
	}

	ok, err := w.confirm(draft)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{}, ErrCancelled
	}

	issueURL, err := w.submit(ctx, draft)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{IssueURL: issueURL, Draft: draft}, nil
}

func (w *Workflow) selectProject() (string, error) {
	return w.prompt.Select(
		"Which project?",
		"Select the project where you want to create the issue",
		w.profile.ProjectKeys(),
	)
}

// enterTitle re-prompts until the trimmed input is non-empty. The
// validation failure never escalates.
func (w *Workflow) enterTitle() (string, error) {
	help := "Enter a brief, descriptive title for your issue"
	for {
		title, err := w.prompt.Input(
			"Issue title:", help, "e.g., Fix login button styling",
		)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(title) != "" {
			return title, nil
		}
		help = "Title cannot be empty"
	}
}

// optionalDescription asks whether to add a description at all.
// Whitespace-only input collapses to nil.
func (w *Workflow) optionalDescription() (*string, error) {
	want, err := w.prompt.Confirm(
		"Add description?",
		"Choose yes to add a detailed description",
		false,
	)
	if err != nil {
		return nil, err
	}
	if !want {
		return nil, nil
	}

	desc, err := w.prompt.Text(
		"Issue description:",
		"Provide detailed information about the issue",
		"Steps to reproduce, expected behavior, etc.",
	)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(desc) == "" {
		return nil, nil
	}
	return &desc, nil
}

// fetchIssueTypes retrieves the project's issue types. A successful
// fetch that yields zero types blocks the run with NoIssueTypesError;
// client errors pass through unchanged.
func (w *Workflow) fetchIssueTypes(
	ctx context.Context,
	projectKey string,
) ([]jira.IssueType, error) {
	var types []jira.IssueType
	err := w.prompt.Busy(
		fmt.Sprintf("Fetching issue types for project %s...", projectKey),
		func() error {
			var fetchErr error
			types, fetchErr = w.client.IssueTypes(ctx, projectKey)
			return fetchErr
		},
	)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, &NoIssueTypesError{ProjectKey: projectKey}
	}
	return types, nil
}

func (w *Workflow) selectIssueType(
	types []jira.IssueType,
) (jira.IssueType, error) {
	options := make([]string, len(types))
	for i, it := range types {
		options[i] = displayString(it)
	}

	chosen, err := w.prompt.Select(
		"Issue type:",
		"Select the type of issue you're creating",
		options,
	)
	if err != nil {
		return jira.IssueType{}, err
	}

	for i, option := range options {
		if option == chosen {
			return types[i], nil
		}
	}
	return jira.IssueType{}, ErrSelectionNotFound
}

func (w *Workflow) confirm(draft Draft) (bool, error) {
	fmt.Fprintf(w.out, "\nIssue summary:\n")
	fmt.Fprintf(
		w.out, "  Project: %s (%s)\n",
		draft.ProjectKey, w.profile.ProjectName(draft.ProjectKey),
	)
	fmt.Fprintf(w.out, "  Title: %s\n", draft.Title)
	if draft.Description != nil {
		fmt.Fprintf(
			w.out, "  Description: %s\n", truncate(*draft.Description, 50),
		)
	}
	fmt.Fprintf(w.out, "  Type: %s\n", draft.IssueType.Name)
	if draft.IssueType.Description != nil && *draft.IssueType.Description != "" {
		fmt.Fprintf(
			w.out, "  Type description: %s\n", *draft.IssueType.Description,
		)
	}

	return w.prompt.Confirm("Create this issue?", "", true)
}

func (w *Workflow) submit(ctx context.Context, draft Draft) (string, error) {
	var issueURL string
	err := w.prompt.Busy("Creating issue...", func() error {
		var createErr error
		issueURL, createErr = w.client.CreateIssue(
			ctx,
			draft.ProjectKey,
			draft.Title,
			draft.Description,
			draft.IssueType.ID,
		)
		return createErr
	})
	if err != nil {
		return "", err
	}
	return issueURL, nil
}

// displayString renders an issue type for the selection menu: the name
// alone, or name and description with the description capped at 60
// characters.
func displayString(it jira.IssueType) string {
	if it.Description == nil || *it.Description == "" {
		return it.Name
	}
	return it.Name + " - " + truncate(*it.Description, 60)
}

// truncate caps s at max characters, replacing the tail with "..."
// when it is longer. Counts runes, not bytes, so multi-byte characters
// are never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
