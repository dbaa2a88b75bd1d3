// Package draft persists content drafts as one JSON file per item under
// three state directories: pending, approved, posted. A draft's lifecycle
// state is defined by the directory its file lives in, never by an
// in-memory index.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is a draft lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPosted   Status = "posted"
)

// states in lifecycle order.
var states = []Status{StatusPending, StatusApproved, StatusPosted}

// ErrEmptyText is returned when a draft is created without primary text.
var ErrEmptyText = errors.New("draft text is required")

// Draft is one unit of candidate content moving through the approval
// lifecycle.
type Draft struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
	Pattern   string    `json:"pattern"`
	English   string    `json:"english"`
	Persian   string    `json:"persian,omitempty"`
	Media     []string  `json:"media"`
	Hashtags  []string  `json:"hashtags"`
	Sources   []string  `json:"sources"`

	Supplemental string     `json:"supplemental_tweet,omitempty"`
	EnrichedAt   *time.Time `json:"enriched_at,omitempty"`

	PostedAt *time.Time `json:"posted_at"`
	TweetID  string     `json:"tweet_id,omitempty"`
}

// Fields are the caller-supplied attributes for a new draft.
type Fields struct {
	Pattern  string
	English  string
	Persian  string
	Media    []string
	Hashtags []string
	Sources  []string

	// Approved routes the draft straight into the approved collection,
	// used for high-trust ingestion sources.
	Approved bool
}

// Store manages the three on-disk draft collections.
type Store struct {
	root string
}

// NewStore opens (creating if needed) the draft directories under root.
func NewStore(root string) (*Store, error) {
	for _, st := range states {
		if err := os.MkdirAll(filepath.Join(root, string(st)), 0755); err != nil {
			return nil, fmt.Errorf("create drafts directory: %w", err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) dir(st Status) string {
	return filepath.Join(s.root, string(st))
}

func fileName(id string) string {
	return "draft_" + id + ".json"
}

// Create persists a new draft. The identifier is a ULID, unique across
// creations within the same second.
func (s *Store) Create(f Fields) (*Draft, error) {
	if strings.TrimSpace(f.English) == "" {
		return nil, ErrEmptyText
	}

	status := StatusPending
	if f.Approved {
		status = StatusApproved
	}

	d := &Draft{
		ID:        ulid.Make().String(),
		CreatedAt: time.Now().UTC(),
		Status:    status,
		Pattern:   f.Pattern,
		English:   f.English,
		Persian:   f.Persian,
		Media:     orEmpty(f.Media),
		Hashtags:  orEmpty(f.Hashtags),
		Sources:   orEmpty(f.Sources),
	}

	if err := s.write(status, d); err != nil {
		return nil, err
	}
	return d, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// write durably persists d into the given state directory via a temp
// file and rename.
func (s *Store) write(st Status, d *Draft) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	dest := filepath.Join(s.dir(st), fileName(d.ID))
	tmp, err := os.CreateTemp(s.dir(st), ".draft-*")
	if err != nil {
		return fmt.Errorf("create temp draft: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close draft: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist draft: %w", err)
	}
	return nil
}

// list reads every draft in a state directory, newest first. Malformed
// or vanished files are skipped with a warning so one bad record never
// blocks the listing.
func (s *Store) list(st Status) []Draft {
	entries, err := os.ReadDir(s.dir(st))
	if err != nil {
		slog.Warn("read drafts directory failed",
			"component", "draft", "state", st, "error", err)
		return nil
	}

	var out []Draft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir(st), entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			// File removed between listing and read; treat as gone.
			continue
		}
		var d Draft
		if err := json.Unmarshal(data, &d); err != nil {
			slog.Warn("skipping malformed draft",
				"component", "draft", "file", entry.Name(), "error", err)
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ListPending returns pending drafts, newest first.
func (s *Store) ListPending() []Draft { return s.list(StatusPending) }

// ListApproved returns approved drafts, newest first.
func (s *Store) ListApproved() []Draft { return s.list(StatusApproved) }

// ListPosted returns posted drafts, newest first.
func (s *Store) ListPosted() []Draft { return s.list(StatusPosted) }

// find locates a draft file by substring identifier match within the
// given states, first match wins. Shortened ids are a human convenience;
// automated callers should use GetExact.
func (s *Store) find(id string, in ...Status) (Status, string, bool) {
	if id == "" {
		return "", "", false
	}
	for _, st := range in {
		entries, err := os.ReadDir(s.dir(st))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			if strings.Contains(entry.Name(), id) {
				return st, filepath.Join(s.dir(st), entry.Name()), true
			}
		}
	}
	return "", "", false
}

// Get returns a draft by (possibly shortened) identifier, searching all
// three collections.
func (s *Store) Get(id string) (*Draft, bool) {
	_, path, ok := s.find(id, states...)
	if !ok {
		return nil, false
	}
	return readDraft(path)
}

// GetExact returns a draft by full identifier match.
func (s *Store) GetExact(id string) (*Draft, bool) {
	for _, st := range states {
		path := filepath.Join(s.dir(st), fileName(id))
		if d, ok := readDraft(path); ok {
			return d, true
		}
	}
	return nil, false
}

func readDraft(path string) (*Draft, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		slog.Warn("skipping malformed draft",
			"component", "draft", "file", filepath.Base(path), "error", err)
		return nil, false
	}
	return &d, true
}

// move relocates a draft between collections: write to destination
// first, then remove the source, so the record is never lost mid-move.
func (s *Store) move(srcPath string, dest Status, d *Draft) error {
	if err := s.write(dest, d); err != nil {
		return err
	}
	if err := os.Remove(srcPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove source draft: %w", err)
	}
	return nil
}

// Approve relocates a pending draft to approved. Returns false when the
// id is not found in pending; an already-approved draft is a normal
// miss, not an error.
func (s *Store) Approve(id string) bool {
	_, path, ok := s.find(id, StatusPending)
	if !ok {
		return false
	}
	d, ok := readDraft(path)
	if !ok {
		return false
	}
	d.Status = StatusApproved
	if err := s.move(path, StatusApproved, d); err != nil {
		slog.Error("approve failed", "component", "draft", "id", d.ID, "error", err)
		return false
	}
	return true
}

// MarkPosted relocates an approved draft to posted, recording the
// posting time and the external post identifier.
func (s *Store) MarkPosted(id, tweetID string) bool {
	_, path, ok := s.find(id, StatusApproved)
	if !ok {
		return false
	}
	d, ok := readDraft(path)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	d.Status = StatusPosted
	d.PostedAt = &now
	d.TweetID = tweetID
	if err := s.move(path, StatusPosted, d); err != nil {
		slog.Error("mark posted failed", "component", "draft", "id", d.ID, "error", err)
		return false
	}
	return true
}

// AttachMedia appends a media reference to a pending or approved draft.
// Posted drafts are immutable.
func (s *Store) AttachMedia(id, mediaRef string) bool {
	st, path, ok := s.find(id, StatusPending, StatusApproved)
	if !ok {
		return false
	}
	d, ok := readDraft(path)
	if !ok {
		return false
	}
	d.Media = append(d.Media, mediaRef)
	if err := s.write(st, d); err != nil {
		slog.Error("attach media failed", "component", "draft", "id", d.ID, "error", err)
		return false
	}
	return true
}

// Update rewrites a pending or approved draft in place after caller
// mutation (enrichment). Posted drafts are immutable.
func (s *Store) Update(d *Draft) bool {
	st, _, ok := s.find(d.ID, StatusPending, StatusApproved)
	if !ok {
		return false
	}
	if err := s.write(st, d); err != nil {
		slog.Error("update failed", "component", "draft", "id", d.ID, "error", err)
		return false
	}
	return true
}

// Reject permanently deletes a pending or approved draft. No audit
// trail is kept.
func (s *Store) Reject(id string) bool {
	_, path, ok := s.find(id, StatusPending, StatusApproved)
	if !ok {
		return false
	}
	if err := os.Remove(path); err != nil {
		return false
	}
	return true
}

// Counts holds per-state queue sizes.
type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Posted   int `json:"posted"`
}

// Total returns the queue size across all states.
func (c Counts) Total() int { return c.Pending + c.Approved + c.Posted }

// Stats counts drafts in each collection.
func (s *Store) Stats() Counts {
	count := func(st Status) int {
		entries, err := os.ReadDir(s.dir(st))
		if err != nil {
			return 0
		}
		n := 0
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				n++
			}
		}
		return n
	}
	return Counts{
		Pending:  count(StatusPending),
		Approved: count(StatusApproved),
		Posted:   count(StatusPosted),
	}
}

// PostedByPattern counts posted drafts grouped by pattern.
func (s *Store) PostedByPattern() map[string]int {
	out := map[string]int{}
	for _, d := range s.ListPosted() {
		p := d.Pattern
		if p == "" {
			p = "unknown"
		}
		out[p]++
	}
	return out
}
