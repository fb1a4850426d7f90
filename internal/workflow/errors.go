package workflow

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user declines the final
// confirmation or aborts a prompt. It is an expected terminal outcome,
// not a crash.
var ErrCancelled = errors.New("issue creation cancelled")

// ErrSelectionNotFound is returned when a chosen menu entry cannot be
// resolved back to the value that produced it. Unreachable under
// correct option construction, but handled rather than assumed away.
var ErrSelectionNotFound = errors.New("selected option not found")

// NoIssueTypesError indicates the project has no issue types to create
// issues with. The fetch itself succeeded; having zero usable types is
// a workflow-level blocker, not a client failure.
type NoIssueTypesError struct {
	ProjectKey string
}

func (e *NoIssueTypesError) Error() string {
	return fmt.Sprintf("no issue types found for project %s", e.ProjectKey)
}

// IsNoIssueTypes reports whether err (or any error in its chain) is a
// NoIssueTypesError.
func IsNoIssueTypes(err error) bool {
	var nte *NoIssueTypesError
	return errors.As(err, &nte)
}
