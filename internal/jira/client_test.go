package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTestConnectionSendsBearerAuth(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	if err := client.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected Accept application/json, got %q", gotAccept)
	}
	if gotPath != "/rest/api/2/myself" {
		t.Errorf("expected /rest/api/2/myself, got %q", gotPath)
	}
}

func TestTestConnectionUnauthorizedIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessages":["bad token"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong")
	err := client.TestConnection(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != `{"errorMessages":["bad token"]}` {
		t.Errorf("expected raw body preserved, got %q", apiErr.Body)
	}
	if IsTransportError(err) {
		t.Error("a 401 response must not classify as a transport error")
	}
}

func TestTestConnectionRefusedIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection will be refused

	client := NewClient(server.URL, "token")
	err := client.TestConnection(context.Background())
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if IsAPIError(err) {
		t.Error("a refused connection must not classify as an API error")
	}
}

func TestIssueTypesParsesValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/issue/createmeta/OPS/issuetypes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"maxResults": 50, "startAt": 0, "total": 2, "isLast": true,
			"values": [
				{"id": "10001", "name": "Bug", "description": null},
				{"id": "10002", "name": "Story", "description": "A user story"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	types, err := client.IssueTypes(context.Background(), "OPS")
	if err != nil {
		t.Fatalf("IssueTypes: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 issue types, got %d", len(types))
	}
	if types[0].ID != "10001" || types[0].Name != "Bug" {
		t.Errorf("unexpected first type: %+v", types[0])
	}
	if types[0].Description != nil {
		t.Errorf("expected nil description for null, got %q", *types[0].Description)
	}
	if types[1].Description == nil || *types[1].Description != "A user story" {
		t.Errorf("unexpected second description: %v", types[1].Description)
	}
}

func TestIssueTypesEmptyListIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"maxResults":50,"startAt":0,"total":0,"isLast":true,"values":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	types, err := client.IssueTypes(context.Background(), "OPS")
	if err != nil {
		t.Fatalf("an empty list is a valid result, got error: %v", err)
	}
	if len(types) != 0 {
		t.Fatalf("expected 0 issue types, got %d", len(types))
	}
}

func TestIssueTypesMalformedBodyIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	_, err := client.IssueTypes(context.Background(), "OPS")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !IsDecodeError(err) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestCreateIssuePayloadAndBrowseURL(t *testing.T) {
	var gotBody CreateIssueRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/2/issue" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"10100","key":"OPS-42","self":"irrelevant"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	issueURL, err := client.CreateIssue(
		context.Background(), "OPS", "Disk full", nil, "10001",
	)
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	if gotBody.Fields.Project.Key != "OPS" {
		t.Errorf("expected project key OPS, got %q", gotBody.Fields.Project.Key)
	}
	if gotBody.Fields.Summary != "Disk full" {
		t.Errorf("expected summary %q, got %q", "Disk full", gotBody.Fields.Summary)
	}
	if gotBody.Fields.Description != "" {
		t.Errorf("nil description must encode as empty string, got %q", gotBody.Fields.Description)
	}
	if gotBody.Fields.IssueType.ID != "10001" {
		t.Errorf("expected issuetype id 10001, got %q", gotBody.Fields.IssueType.ID)
	}

	want := server.URL + "/browse/OPS-42"
	if issueURL != want {
		t.Errorf("expected browse URL %q, got %q", want, issueURL)
	}
}

func TestCreateIssueSendsDescriptionWhenPresent(t *testing.T) {
	var gotBody CreateIssueRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"key":"OPS-43"}`))
	}))
	defer server.Close()

	desc := "Steps to reproduce"
	client := NewClient(server.URL, "token")
	if _, err := client.CreateIssue(
		context.Background(), "OPS", "Title", &desc, "10001",
	); err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if gotBody.Fields.Description != desc {
		t.Errorf("expected description %q, got %q", desc, gotBody.Fields.Description)
	}
}

func TestCreateIssueErrorStatusIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":{"summary":"required"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	_, err := client.CreateIssue(context.Background(), "OPS", "", nil, "10001")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/myself" {
			t.Errorf("trailing slash leaked into path: %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "token")
	if err := client.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
}
