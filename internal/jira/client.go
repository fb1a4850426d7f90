package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin HTTP client for the Jira Server/DC REST API v2.
// It is bound to one instance and one credential; every call is a
// single request/response exchange with no session state and no retry.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a Jira client. The baseURL should be the root URL
// of the Jira instance (e.g., https://jira.corp.example.com); a
// trailing slash is trimmed. The token is used for Bearer
// authentication on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Bearer " + token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TestConnection verifies the endpoint and credential by fetching the
// authenticated user. Any 2xx status counts as success; the body is
// ignored.
func (c *Client) TestConnection(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/rest/api/2/myself", nil, nil)
}

// IssueTypes fetches the issue types available for creating issues in
// the given project. An empty list is a valid result; deciding whether
// zero types is usable belongs to the caller.
func (c *Client) IssueTypes(
	ctx context.Context,
	projectKey string,
) ([]IssueType, error) {
	path := fmt.Sprintf(
		"/rest/api/2/issue/createmeta/%s/issuetypes", projectKey,
	)

	var resp IssueTypesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Values, nil
}

// CreateIssue creates an issue and returns its browse URL. A nil
// description is sent as an empty string; the API expects the field
// to be present.
func (c *Client) CreateIssue(
	ctx context.Context,
	projectKey string,
	summary string,
	description *string,
	issueTypeID string,
) (string, error) {
	body := CreateIssueRequest{
		Fields: IssueFields{
			Project:     ProjectRef{Key: projectKey},
			Summary:     summary,
			Description: derefOrEmpty(description),
			IssueType:   IssueTypeRef{ID: issueTypeID},
		},
	}

	var resp CreateIssueResponse
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/issue", body, &resp); err != nil {
		return "", err
	}

	return c.baseURL + "/browse/" + resp.Key, nil
}

// do builds the request, attaches auth headers, executes it once, and
// maps the outcome onto the client error taxonomy: transport failure,
// non-2xx status, or an undecodable success body.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{
				Op:  fmt.Sprintf("marshaling request body for %s %s", method, path),
				Err: err,
			}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &TransportError{
			Op:  fmt.Sprintf("creating request %s %s", method, path),
			Err: err,
		}
	}

	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{
			Op:  fmt.Sprintf("executing request %s %s", method, path),
			Err: err,
		}
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return &TransportError{
			Op:  fmt.Sprintf("reading response body from %s %s", method, path),
			Err: readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
