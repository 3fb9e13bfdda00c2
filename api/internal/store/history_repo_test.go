package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// openTestDB connects to TEST_DATABASE_URL or skips.
func openTestDB(t *testing.T) *HistoryRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewHistoryRepo(db, 3)
}

func TestHistoryRepoRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()
	user := "test-" + uuid.NewString()
	t.Cleanup(func() { _, _ = repo.Clear(ctx, user) })

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		_, err := repo.Add(ctx, Entry{
			UserID:        user,
			Language:      "english",
			Subject:       "Math",
			ExtractedText: strings.Repeat("n", 600),
			Summary:       fmt.Sprintf("summary %d", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	got, err := repo.List(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("kept %d entries, want 3", len(got))
	}
	if got[0].Summary != "summary 4" || got[2].Summary != "summary 2" {
		t.Fatalf("unexpected order: %q .. %q", got[0].Summary, got[2].Summary)
	}
	if n := len([]rune(got[0].ExtractedText)); n != PreviewLength+3 {
		t.Fatalf("extracted text not truncated: %d runes", n)
	}

	n, err := repo.Clear(ctx, user)
	if err != nil || n != 3 {
		t.Fatalf("clear = %d, %v", n, err)
	}
	if got, _ := repo.List(ctx, user); len(got) != 0 {
		t.Fatalf("history not cleared: %d", len(got))
	}
}

func TestSafeDSNSummary(t *testing.T) {
	got := SafeDSNSummary("postgres://notes:secret@db:5432/notes?sslmode=disable")
	if strings.Contains(got, "secret") {
		t.Fatalf("password leaked: %q", got)
	}
	if got != "host=db:5432 db=notes user=notes" {
		t.Fatalf("summary = %q", got)
	}
	if SafeDSNSummary("::") != "dsn: unparsable" {
		t.Fatalf("expected unparsable marker")
	}
}
