// Package ingest scans bucket source files for recent news items and
// turns them into drafts. Breaking items are translated best-effort and
// auto-approved; everything else lands in the pending queue for review.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/faytuks/engine/internal/config"
	"github.com/faytuks/engine/internal/draft"
	"github.com/faytuks/engine/internal/ledger"
	"github.com/faytuks/engine/internal/llm"
	"github.com/faytuks/engine/internal/pattern"
	"github.com/faytuks/engine/internal/prompt"
)

// BucketBreaking is the bucket with the tight recency window and
// auto-approval. All other buckets share the slower window.
const BucketBreaking = "breaking"

// Item is one candidate news item read from a bucket source file.
type Item struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	RawDate   string `json:"date"`
	IsRetweet bool   `json:"isRetweet,omitempty"`

	// Filled during scanning, not present in source files.
	Date   time.Time `json:"-"`
	Bucket string    `json:"-"`
	Handle string    `json:"-"`
}

// Key returns the dedup ledger key for the item: the source id when
// present, otherwise a digest of the text.
func (it Item) Key() string {
	if it.ID != "" {
		return it.Bucket + ":" + it.ID
	}
	sum := sha256.Sum256([]byte(it.Text))
	return fmt.Sprintf("%s:%x", it.Bucket, sum[:8])
}

// sourceFile mirrors the bucket JSON layout: either a top-level
// "tweets" array or a bare array of items.
type sourceFile struct {
	Tweets []Item `json:"tweets"`
}

// Report summarizes one ingestion cycle.
type Report struct {
	Timestamp     time.Time `json:"timestamp"`
	DraftsCreated []string  `json:"draftsCreated"`
	Skipped       int       `json:"skipped"`
	Errors        []string  `json:"errors"`
}

// Cycle runs scrape → dedup → classify → translate → queue.
type Cycle struct {
	bucketsDir string
	cfg        config.IngestConfig
	drafts     *draft.Store
	seen       *ledger.Ledger
	completer  llm.Completer // nil disables translation
	timeout    time.Duration
}

// New creates an ingestion cycle. completer may be nil, in which case
// breaking items are queued without a Persian translation.
func New(bucketsDir string, cfg config.IngestConfig, drafts *draft.Store, seen *ledger.Ledger, completer llm.Completer, timeout time.Duration) *Cycle {
	return &Cycle{
		bucketsDir: bucketsDir,
		cfg:        cfg,
		drafts:     drafts,
		seen:       seen,
		completer:  completer,
		timeout:    timeout,
	}
}

// Scan reads every source file under one bucket directory and returns
// the items newer than the cutoff, retweets excluded, newest first.
// Unreadable or malformed files are logged and skipped.
func (c *Cycle) Scan(bucket string, maxAge time.Duration) []Item {
	dir := filepath.Join(c.bucketsDir, bucket)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("bucket directory unreadable",
				"component", "ingest", "bucket", bucket, "error", err)
		}
		return nil
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	var recent []Item

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("bucket file unreadable",
				"component", "ingest", "bucket", bucket, "path", path, "error", err)
			continue
		}

		items, err := decodeSource(data)
		if err != nil {
			slog.Warn("bucket file malformed",
				"component", "ingest", "bucket", bucket, "path", path, "error", err)
			continue
		}

		handle := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".json"), "-tweets")
		for _, it := range items {
			if it.IsRetweet || it.Text == "" {
				continue
			}
			// Items with unparseable timestamps are dropped, never fatal.
			ts, err := time.Parse(time.RFC3339, it.RawDate)
			if err != nil {
				continue
			}
			if !ts.After(cutoff) {
				continue
			}
			it.Date = ts.UTC()
			it.Bucket = bucket
			it.Handle = handle
			recent = append(recent, it)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	return recent
}

func decodeSource(data []byte) ([]Item, error) {
	var wrapped sourceFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Tweets != nil {
		return wrapped.Tweets, nil
	}
	var bare []Item
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// Buckets lists the bucket directories under the buckets root, with
// breaking first when present.
func (c *Cycle) Buckets() []string {
	entries, err := os.ReadDir(c.bucketsDir)
	if err != nil {
		return nil
	}
	var names []string
	hasBreaking := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if entry.Name() == BucketBreaking {
			hasBreaking = true
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	if hasBreaking {
		names = append([]string{BucketBreaking}, names...)
	}
	return names
}

// Run executes one complete cycle. Per-item failures are recorded and
// skipped; they never abort the rest of the cycle.
func (c *Cycle) Run(ctx context.Context) Report {
	report := Report{Timestamp: time.Now().UTC()}

	breaking := c.Scan(BucketBreaking, c.cfg.BreakingMaxAge.Duration())
	if len(breaking) > c.cfg.BreakingCap {
		breaking = breaking[:c.cfg.BreakingCap]
	}
	for _, it := range breaking {
		c.process(ctx, it, true, &report)
	}

	var others []Item
	for _, bucket := range c.Buckets() {
		if bucket == BucketBreaking {
			continue
		}
		others = append(others, c.Scan(bucket, c.cfg.OtherMaxAge.Duration())...)
	}
	if len(others) > c.cfg.OtherCap {
		others = others[:c.cfg.OtherCap]
	}
	for _, it := range others {
		c.process(ctx, it, false, &report)
	}

	slog.Info("ingestion cycle complete",
		"component", "ingest",
		"created", len(report.DraftsCreated),
		"skipped", report.Skipped,
		"errors", len(report.Errors))
	return report
}

// process turns one item into a draft. Breaking items are translated
// when a completer is available and auto-approved.
func (c *Cycle) process(ctx context.Context, it Item, breaking bool, report *Report) {
	if c.seen != nil {
		seen, err := c.seen.Seen(ctx, it.Key())
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: ledger: %v", it.Key(), err))
			return
		}
		if seen {
			report.Skipped++
			return
		}
	}

	p, ok := pattern.Best(it.Text)
	patternID := string(p)
	if !ok {
		if breaking {
			patternID = "breaking"
		} else {
			patternID = "general"
		}
	}

	persian := ""
	if breaking && c.completer != nil {
		persian = c.translate(ctx, it.Text)
	}

	d, err := c.drafts.Create(draft.Fields{
		English:  it.Text,
		Persian:  persian,
		Pattern:  patternID,
		Sources:  []string{"@" + it.Handle, it.Bucket},
		Approved: breaking,
	})
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("%s: save draft: %v", it.Key(), err))
		return
	}
	report.DraftsCreated = append(report.DraftsCreated, d.ID)

	if c.seen != nil {
		if err := c.seen.Mark(ctx, it.Key(), it.Bucket, it.Handle); err != nil {
			slog.Warn("ledger mark failed",
				"component", "ingest", "item", it.Key(), "error", err)
		}
	}
}

// translate produces the Persian rendering of a breaking item. Failures
// (including timeout) are logged and yield an empty translation.
func (c *Cycle) translate(ctx context.Context, english string) string {
	tctx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.completer.Complete(tctx, llm.Request{Prompt: prompt.Translation(english)})
	if err != nil {
		slog.Warn("translation failed",
			"component", "ingest", "action", "translate", "error", err)
		return ""
	}
	return out
}
