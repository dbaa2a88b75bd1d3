package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	writeDoc(t, dir, "facts.json", `{"facts":[
		{"id":"f1","statement":"Cinema Rex fire killed over 400 people in 1978","category":"historical"},
		{"id":"f2","statement":"The 1906 Constitutional Revolution created the Majles","category":"historical"},
		{"id":"f3","fact":"Treaty of Turkmenchay signed with Russia in 1828","category":"treaties"}
	]}`)
	writeDoc(t, dir, "actors.json", `{"actors":[
		{"name":"Mossadegh","role":"Prime Minister","type":"historical","keyActions":["nationalized oil"]},
		{"name":"IHRNGO","role":"monitoring organization","type":"ngo"}
	]}`)
	writeDoc(t, dir, "narratives.json", `{"narratives":[
		{"id":"n1","title":"Fire parallel","description":"Cinema Rex echoes","status":"active"},
		{"id":"n2","title":"Dormant story","description":"old","status":"retired"}
	]}`)
	writeDoc(t, dir, "anniversary-calendar.json", `{"anniversary_calendar":{
		"january":[
			{"date":"01-16","year":"1979","event":"Shah leaves Iran"},
			{"date":"01-07","year":"1978","event":"Qom protests"}
		],
		"august":[
			{"date":"08-19","year":"1978","event":"Cinema Rex fire","pattern":"fire_parallel"}
		]
	}}`)
	writeDoc(t, dir, "history.json", `{"eras":{
		"1978_revolution":{"name":"1978 Revolution","description":"The year before the fall"}
	}}`)
	writeDoc(t, dir, "quotes-persian.json", `{
		"quote_bank":{"by_topic":{"freedom":[{"quote":"Freedom is not given","author":"Unknown","context":"protests"}]}},
		"persian_phrases":{
			"protest_slogans":[{"persian":"زن زندگی آزادی","transliteration":"zan zendegi azadi","english":"Woman, Life, Freedom"}],
			"historical_terms":[{"persian":"مشروطه","transliteration":"mashrouteh","english":"constitutional"}]
		}
	}`)
	writeDoc(t, dir, "source-credibility.json", `{"source_credibility":{
		"tier_definitions":{"tier_1":{"name":"Verified"}},
		"sources":{"ngo":{"ihrngo":{"name":"IHR NGO","tier":1}}}
	}}`)

	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadMissingDocumentsNotFatal(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if len(s.Missing()) != len(Registry) {
		t.Errorf("missing = %d, want %d", len(s.Missing()), len(Registry))
	}
	if got := s.Facts(""); len(got) != 0 {
		t.Errorf("expected no facts, got %d", len(got))
	}
	if got := s.Search("anything"); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestLoadMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "facts.json", `{"facts": [truncated`)
	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Facts(""); len(got) != 0 {
		t.Errorf("malformed doc should yield no facts, got %d", len(got))
	}
}

func TestFactsByCategory(t *testing.T) {
	s := testStore(t)
	if got := s.Facts(""); len(got) != 3 {
		t.Fatalf("all facts = %d, want 3", len(got))
	}
	if got := s.Facts("treaties"); len(got) != 1 || got[0].Text() == "" {
		t.Errorf("treaties facts = %v", got)
	}
}

func TestSearchUnionsKinds(t *testing.T) {
	s := testStore(t)
	results := s.Search("cinema rex")
	var kinds []ResultKind
	for _, r := range results {
		kinds = append(kinds, r.Kind)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d (%v), want 2", len(results), kinds)
	}
	if results[0].Kind != KindFact || results[1].Kind != KindNarrative {
		t.Errorf("kind order = %v, want fact then narrative", kinds)
	}

	if got := s.Search("mossadegh"); len(got) != 1 || got[0].Kind != KindActor {
		t.Errorf("actor search = %v", got)
	}
}

func TestNarrativesByStatus(t *testing.T) {
	s := testStore(t)
	if got := s.Narratives("active"); len(got) != 1 || got[0].ID != "n1" {
		t.Errorf("active narratives = %v", got)
	}
}

func TestAnniversariesFor(t *testing.T) {
	s := testStore(t)
	if got := s.AnniversariesFor(8, 19); len(got) != 1 || got[0].Event != "Cinema Rex fire" {
		t.Errorf("08-19 = %v", got)
	}
	if got := s.AnniversariesFor(1, 2); len(got) != 0 {
		t.Errorf("01-02 = %v, want empty", got)
	}
	// Invalid month is an empty result, never a panic.
	if got := s.AnniversariesFor(13, 1); got != nil {
		t.Errorf("month 13 = %v, want nil", got)
	}
	if got := s.AnniversariesFor(0, 1); got != nil {
		t.Errorf("month 0 = %v, want nil", got)
	}
}

func TestEraLookup(t *testing.T) {
	s := testStore(t)
	era, ok := s.Era("1978_revolution")
	if !ok || era.Name != "1978 Revolution" {
		t.Errorf("Era = %v, %v", era, ok)
	}
	if _, ok := s.Era("nope"); ok {
		t.Error("unknown era should not resolve")
	}
}

func TestPhraseLookup(t *testing.T) {
	s := testStore(t)
	p, ok := s.Phrase("ZAN ZENDEGI AZADI")
	if !ok || p.English != "Woman, Life, Freedom" {
		t.Errorf("Phrase = %v, %v", p, ok)
	}
}

func TestSourceTier(t *testing.T) {
	s := testStore(t)
	src, ok := s.SourceTier("ihrngo")
	if !ok || src.Tier != 1 || src.Category != "ngo" {
		t.Errorf("SourceTier = %+v, %v", src, ok)
	}
	if got := s.SourcesByTier(1); len(got) != 1 {
		t.Errorf("SourcesByTier(1) = %v", got)
	}
	if _, ok := s.SourceTier("unknown-outlet"); ok {
		t.Error("unknown source should not resolve")
	}
}

func TestStats(t *testing.T) {
	s := testStore(t)
	stats := s.Stats()
	if stats.Facts != 3 || stats.Actors != 2 || stats.Narratives != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ActiveNarratives != 1 || stats.Anniversaries != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Quotes != 1 || stats.ProtestSlogans != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
