package jira

// IssueType represents one issue category available in a project.
// Description is a pointer because the API returns null for types
// without one.
type IssueType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// IssueTypesResponse is the paginated response from
// GET /rest/api/2/issue/createmeta/{projectKey}/issuetypes.
type IssueTypesResponse struct {
	MaxResults int         `json:"maxResults"`
	StartAt    int         `json:"startAt"`
	Total      int         `json:"total"`
	IsLast     bool        `json:"isLast"`
	Values     []IssueType `json:"values"`
}

// CreateIssueRequest is the body of POST /rest/api/2/issue.
type CreateIssueRequest struct {
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the fields of an issue to be created.
type IssueFields struct {
	Project     ProjectRef   `json:"project"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	IssueType   IssueTypeRef `json:"issuetype"`
}

// ProjectRef identifies a project by its key.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef identifies an issue type by its ID.
type IssueTypeRef struct {
	ID string `json:"id"`
}

// CreateIssueResponse is the body returned on successful creation.
type CreateIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}
