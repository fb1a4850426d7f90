package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/fast-task/internal/history"
	"github.com/nhle/fast-task/tests/testutil"
)

func TestAppendDefaultsIDAndCreatedAt(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.Append(ctx, history.Record{
		IssueKey:   "OPS-1",
		IssueURL:   "https://jira.example.com/browse/OPS-1",
		ProjectKey: "OPS",
		Title:      "Disk full",
		IssueType:  "Bug",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID == "" {
		t.Error("expected a generated ID")
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("expected a defaulted CreatedAt")
	}
	if records[0].IssueKey != "OPS-1" || records[0].Title != "Disk full" {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestRecentNewestFirstAndLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, key := range []string{"OPS-1", "OPS-2", "OPS-3"} {
		err := s.Append(ctx, history.Record{
			IssueKey:   key,
			IssueURL:   "https://jira.example.com/browse/" + key,
			ProjectKey: "OPS",
			Title:      "Issue " + key,
			IssueType:  "Bug",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Append(%s): %v", key, err)
		}
	}

	records, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(records))
	}
	if records[0].IssueKey != "OPS-3" || records[1].IssueKey != "OPS-2" {
		t.Errorf("expected newest first, got %s then %s",
			records[0].IssueKey, records[1].IssueKey)
	}
}

func TestRecentEmptyStore(t *testing.T) {
	s := testutil.NewTestStore(t)

	records, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
