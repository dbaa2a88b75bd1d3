package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	testLedger(t)
}

func TestSeenAndMark(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	seen, err := l.Seen(ctx, "item-1")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if seen {
		t.Error("fresh ledger reports item as seen")
	}

	if err := l.Mark(ctx, "item-1", "breaking", "@reuters"); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	seen, err = l.Seen(ctx, "item-1")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen {
		t.Error("marked item not reported as seen")
	}
}

func TestMarkIdempotent(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := l.Mark(ctx, "item-1", "breaking", "@reuters"); err != nil {
			t.Fatalf("Mark #%d: %v", i, err)
		}
	}

	count, err := l.Count(ctx, "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestCountByBucket(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	l.Mark(ctx, "a", "breaking", "")
	l.Mark(ctx, "b", "breaking", "")
	l.Mark(ctx, "c", "analysis", "")

	count, err := l.Count(ctx, "breaking")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("breaking count = %d, want 2", count)
	}
}

func TestPrune(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	l.Mark(ctx, "old", "breaking", "")
	l.Mark(ctx, "new", "breaking", "")

	// Everything was just written, so a past cutoff removes nothing.
	removed, err := l.Prune(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	removed, err = l.Prune(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	count, _ := l.Count(ctx, "")
	if count != 0 {
		t.Errorf("count after prune = %d, want 0", count)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Mark(ctx, "item-1", "breaking", "")
	l.Close()

	l2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l2.Close()

	seen, err := l2.Seen(ctx, "item-1")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen {
		t.Error("item lost across reopen")
	}
}
