package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.db == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileBackedJournalMode.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileBackedJournalMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{TableOperations, TableAnswers, TableDecks, TableReviewItems} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestAutoMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)

	for _, idx := range []string{
		"answer_operation_id",
		"answer_deck_id",
		"operation_deck_id",
		"reviewitem_next_review_date",
		"deck_status",
	} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s not found: %v", idx, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := s.InsertOperation(ctx, problemgen.KindAdd, 2, 3, 5, nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	op, err := s.GetOperation(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if op == nil || op.Result != 5 {
		t.Fatalf("operation after reopen = %+v, want result 5", op)
	}
}

func TestTimesStoredInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	at := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	s := openTestStore(t, WithClock(clock.Fixed{T: at}))
	ctx := context.Background()

	id, err := s.CreateDeck(ctx)
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	d, err := s.GetDeck(ctx, id)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if d.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", d.CreatedAt.Location())
	}
	if !d.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", d.CreatedAt, at.UTC())
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "nested", "custom.db")
		t.Setenv("MATHDRILL_DB", want)

		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("MATHDRILL_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)

		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "mathdrill", "mathdrill.db")
		if got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
	})
}
