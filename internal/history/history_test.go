package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempHistory(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "generation-history.json")
}

func TestLoadMissingFile(t *testing.T) {
	l, err := Load(tempHistory(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.RecentDrafts) != 0 || len(l.Published) != 0 {
		t.Errorf("expected empty log, got %d/%d", len(l.RecentDrafts), len(l.Published))
	}
	if l.Metadata.Version != "1.0" {
		t.Errorf("version = %s", l.Metadata.Version)
	}
}

func TestRoundTripPreservesUnknownFields(t *testing.T) {
	path := tempHistory(t)
	// A document written by the counterpart system, with fields this
	// system does not populate.
	original := `{
		"recentDrafts": [
			{"id":"draft_20260115_083000","theme":"fire parallel","narrativeId":"n1",
			 "generatedAt":"2026-01-15T08:30:00Z","factIds":["f1","f2"],
			 "tsOnlyScore": 0.87, "tsOnlyFlags": ["reviewed"]}
		],
		"publishedTweets": [
			{"id":"pub_20260114_210000","tweet":"1978: they burned 400 alive.",
			 "publishedAt":"2026-01-14T21:00:00Z","pattern":"fire_parallel",
			 "performance":{"engagement_rate":0.061,"impressions":120000},
			 "tags":["history"],"why_it_worked":"strong hook",
			 "abTestGroup":"B"}
		],
		"metadata": {"lastUpdated":"2026-01-14T21:05:00Z","version":"1.0","tsSchemaRevision":7},
		"counterpartState": {"cursor": 42}
	}`
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Save(); err != nil {
		t.Fatal(err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got, want map[string]any
	if err := json.Unmarshal(written, &got); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(original), &want); err != nil {
		t.Fatal(err)
	}

	// Save refreshes lastUpdated; everything else must survive.
	delete(got["metadata"].(map[string]any), "lastUpdated")
	delete(want["metadata"].(map[string]any), "lastUpdated")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip drift:\n got: %v\nwant: %v", got, want)
	}
}

func TestRoundTripThroughReload(t *testing.T) {
	path := tempHistory(t)
	doc := `{"recentDrafts":[{"id":"d1","theme":"x","generatedAt":"2026-01-01T00:00:00Z","factIds":[],"mystery":true}],
		"publishedTweets":[],"metadata":{"lastUpdated":"","version":"1.0"}}`
	os.WriteFile(path, []byte(doc), 0644)

	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	l.Save()

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(reloaded.RecentDrafts[0])
	if got := string(data); !jsonHasKey(t, data, "mystery") {
		t.Errorf("unknown field dropped after reload: %s", got)
	}
}

func jsonHasKey(t *testing.T, data []byte, key string) bool {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	_, ok := m[key]
	return ok
}

func TestAddDraftCapsAtFifty(t *testing.T) {
	l, err := Load(tempHistory(t))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < RecentDraftsCap+10; i++ {
		if _, err := l.AddDraft(fmt.Sprintf("theme-%d", i), "", nil); err != nil {
			t.Fatal(err)
		}
	}
	if len(l.RecentDrafts) != RecentDraftsCap {
		t.Errorf("recentDrafts = %d, want %d", len(l.RecentDrafts), RecentDraftsCap)
	}
	// The oldest entries are the ones trimmed.
	if l.RecentDrafts[0].Theme != "theme-10" {
		t.Errorf("oldest surviving theme = %s", l.RecentDrafts[0].Theme)
	}
}

func TestPublishedUnbounded(t *testing.T) {
	l, _ := Load(tempHistory(t))
	for i := 0; i < 60; i++ {
		if _, err := l.AddPublished("tweet", "fire_parallel", nil, nil, ""); err != nil {
			t.Fatal(err)
		}
	}
	if len(l.Published) != 60 {
		t.Errorf("published = %d, want 60", len(l.Published))
	}
}

func TestPublishedMatching(t *testing.T) {
	l, _ := Load(tempHistory(t))
	l.AddPublished("Cinema Rex burned", "fire_parallel",
		map[string]any{"engagement_rate": 0.08}, []string{"history"}, "hook")
	l.AddPublished("Turkmenchay treaty", "great_power_game",
		map[string]any{"engagement_rate": 0.02}, nil, "")

	if got := l.PublishedMatching("cinema", "", 0); len(got) != 1 {
		t.Errorf("query filter = %d results", len(got))
	}
	if got := l.PublishedMatching("", "great_power_game", 0); len(got) != 1 {
		t.Errorf("pattern filter = %d results", len(got))
	}
	if got := l.PublishedMatching("", "", 0.05); len(got) != 1 {
		t.Errorf("engagement filter = %d results", len(got))
	}
}

func TestBestTemplate(t *testing.T) {
	l, _ := Load(tempHistory(t))
	l.AddPublished("weak", "fire_parallel", map[string]any{"engagement_rate": 0.01}, nil, "")
	l.AddPublished("strong", "fire_parallel", map[string]any{"engagement_rate": 0.09}, nil, "")

	best, ok := l.BestTemplate("fire_parallel")
	if !ok || best.Tweet != "strong" {
		t.Errorf("best = %+v, ok=%v", best, ok)
	}
	if _, ok := l.BestTemplate("nonexistent"); ok {
		t.Error("BestTemplate matched nonexistent pattern")
	}
}

func TestRecentLimit(t *testing.T) {
	l, _ := Load(tempHistory(t))
	for i := 0; i < 5; i++ {
		l.AddDraft(fmt.Sprintf("t%d", i), "", nil)
	}
	got := l.Recent(2)
	if len(got) != 2 || got[1].Theme != "t4" {
		t.Errorf("Recent(2) = %v", got)
	}
}
