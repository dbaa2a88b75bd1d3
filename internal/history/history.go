// Package history manages the generation-history document shared with
// the counterpart TypeScript system. The file is a single JSON object
// with a capped recent-drafts list and an unbounded published-tweets
// list; fields this system does not understand are preserved verbatim
// so the counterpart never loses data on round-trip.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RecentDraftsCap bounds the recentDrafts list to the newest entries.
const RecentDraftsCap = 50

// DraftEntry is one draft-creation summary record.
type DraftEntry struct {
	ID          string   `json:"id"`
	Theme       string   `json:"theme"`
	NarrativeID string   `json:"narrativeId,omitempty"`
	GeneratedAt string   `json:"generatedAt"`
	FactIDs     []string `json:"factIds"`

	extra map[string]json.RawMessage
}

// PublishedEntry is one published-tweet performance record.
type PublishedEntry struct {
	ID          string         `json:"id"`
	Tweet       string         `json:"tweet"`
	PublishedAt string         `json:"publishedAt"`
	Pattern     string         `json:"pattern"`
	Performance map[string]any `json:"performance"`
	Tags        []string       `json:"tags"`
	WhyItWorked string         `json:"why_it_worked"`

	extra map[string]json.RawMessage
}

// EngagementRate returns the engagement_rate performance metric, or 0.
func (e PublishedEntry) EngagementRate() float64 {
	if v, ok := e.Performance["engagement_rate"].(float64); ok {
		return v
	}
	return 0
}

// Metadata is the document trailer block.
type Metadata struct {
	LastUpdated string `json:"lastUpdated"`
	Version     string `json:"version"`

	extra map[string]json.RawMessage
}

// Log is the in-memory generation history, bound to its file path.
type Log struct {
	path string

	RecentDrafts []DraftEntry
	Published    []PublishedEntry
	Metadata     Metadata

	extra map[string]json.RawMessage
}

// splitExtra unmarshals data into known, then returns every top-level
// key not consumed by the known structure.
func splitExtra(data []byte, known any, knownKeys ...string) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for _, k := range knownKeys {
		delete(m, k)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// mergeExtra marshals known and overlays the preserved unknown fields.
// Known fields always win on key conflict.
func mergeExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

type draftAlias DraftEntry
type publishedAlias PublishedEntry
type metadataAlias Metadata

// UnmarshalJSON captures unknown fields alongside the known ones.
func (d *DraftEntry) UnmarshalJSON(data []byte) error {
	var a draftAlias
	extra, err := splitExtra(data, &a, "id", "theme", "narrativeId", "generatedAt", "factIds")
	if err != nil {
		return err
	}
	*d = DraftEntry(a)
	d.extra = extra
	return nil
}

// MarshalJSON re-emits preserved unknown fields.
func (d DraftEntry) MarshalJSON() ([]byte, error) {
	return mergeExtra(draftAlias(d), d.extra)
}

func (e *PublishedEntry) UnmarshalJSON(data []byte) error {
	var a publishedAlias
	extra, err := splitExtra(data, &a,
		"id", "tweet", "publishedAt", "pattern", "performance", "tags", "why_it_worked")
	if err != nil {
		return err
	}
	*e = PublishedEntry(a)
	e.extra = extra
	return nil
}

func (e PublishedEntry) MarshalJSON() ([]byte, error) {
	return mergeExtra(publishedAlias(e), e.extra)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var a metadataAlias
	extra, err := splitExtra(data, &a, "lastUpdated", "version")
	if err != nil {
		return err
	}
	*m = Metadata(a)
	m.extra = extra
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	return mergeExtra(metadataAlias(m), m.extra)
}

// document is the serialized shape of the shared file.
type document struct {
	RecentDrafts []DraftEntry     `json:"recentDrafts"`
	Published    []PublishedEntry `json:"publishedTweets"`
	Metadata     Metadata         `json:"metadata"`
}

// Load reads the shared history file. A missing file yields an empty
// log bound to the same path.
func Load(path string) (*Log, error) {
	log := &Log{
		path:         path,
		RecentDrafts: []DraftEntry{},
		Published:    []PublishedEntry{},
		Metadata:     Metadata{Version: "1.0"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return log, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var doc document
	extra, err := splitExtra(data, &doc, "recentDrafts", "publishedTweets", "metadata")
	if err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	if doc.RecentDrafts != nil {
		log.RecentDrafts = doc.RecentDrafts
	}
	if doc.Published != nil {
		log.Published = doc.Published
	}
	if doc.Metadata.Version != "" || doc.Metadata.LastUpdated != "" || doc.Metadata.extra != nil {
		log.Metadata = doc.Metadata
	}
	log.extra = extra
	return log, nil
}

// Save updates the last-updated stamp and writes the document durably.
func (l *Log) Save() error {
	l.Metadata.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if l.Metadata.Version == "" {
		l.Metadata.Version = "1.0"
	}

	doc := document{
		RecentDrafts: l.RecentDrafts,
		Published:    l.Published,
		Metadata:     l.Metadata,
	}
	data, err := mergeExtra(doc, l.extra)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	var indented json.RawMessage = data
	pretty, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if dir := filepath.Dir(l.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, pretty, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// AddDraft appends a draft summary, trims the list to RecentDraftsCap,
// and saves. The identifier format matches the counterpart system.
func (l *Log) AddDraft(theme, narrativeID string, factIDs []string) (DraftEntry, error) {
	now := time.Now()
	entry := DraftEntry{
		ID:          "draft_" + now.Format("20060102_150405"),
		Theme:       theme,
		NarrativeID: narrativeID,
		GeneratedAt: now.Format(time.RFC3339),
		FactIDs:     orEmpty(factIDs),
	}
	l.RecentDrafts = append(l.RecentDrafts, entry)
	if len(l.RecentDrafts) > RecentDraftsCap {
		l.RecentDrafts = l.RecentDrafts[len(l.RecentDrafts)-RecentDraftsCap:]
	}
	return entry, l.Save()
}

// AddPublished appends a published-tweet record and saves. The
// published list is unbounded.
func (l *Log) AddPublished(tweet, pattern string, performance map[string]any, tags []string, whyItWorked string) (PublishedEntry, error) {
	now := time.Now()
	entry := PublishedEntry{
		ID:          "pub_" + now.Format("20060102_150405"),
		Tweet:       tweet,
		PublishedAt: now.Format(time.RFC3339),
		Pattern:     pattern,
		Performance: performance,
		Tags:        orEmpty(tags),
		WhyItWorked: whyItWorked,
	}
	if entry.Performance == nil {
		entry.Performance = map[string]any{}
	}
	l.Published = append(l.Published, entry)
	return entry, l.Save()
}

// PublishedMatching filters published records by text query, pattern,
// and minimum engagement rate. Empty filters match everything.
func (l *Log) PublishedMatching(query, pattern string, minEngagement float64) []PublishedEntry {
	var out []PublishedEntry
	q := strings.ToLower(query)
	for _, e := range l.Published {
		if query != "" && !strings.Contains(strings.ToLower(e.Tweet), q) {
			continue
		}
		if pattern != "" && e.Pattern != pattern {
			continue
		}
		if minEngagement > 0 && e.EngagementRate() < minEngagement {
			continue
		}
		out = append(out, e)
	}
	return out
}

// BestTemplate returns the highest-engagement published record for a
// pattern.
func (l *Log) BestTemplate(pattern string) (PublishedEntry, bool) {
	matches := l.PublishedMatching("", pattern, 0)
	if len(matches) == 0 {
		return PublishedEntry{}, false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EngagementRate() > matches[j].EngagementRate()
	})
	return matches[0], true
}

// Recent returns the newest draft summaries, up to limit.
func (l *Log) Recent(limit int) []DraftEntry {
	if limit <= 0 || limit >= len(l.RecentDrafts) {
		return l.RecentDrafts
	}
	return l.RecentDrafts[len(l.RecentDrafts)-limit:]
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
