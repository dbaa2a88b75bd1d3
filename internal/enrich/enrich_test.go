package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/pattern"
)

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()
	dir := t.TempDir()
	facts := `{"facts":[
		{"id":"f1","statement":"Cinema Rex fire killed over 400 people in Abadan","category":"historical"},
		{"id":"f2","statement":"Unrelated fact about the Caspian Sea","category":"geography"},
		{"id":"f3","statement":"Arson was blamed on the opposition at the time","category":"historical"},
		{"id":"f4","statement":"Protests spread from Rasht across the country","category":"historical"},
		{"id":"f5","statement":"A second Cinema Rex mention that should be cut by the cap","category":"historical"}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "facts.json"), []byte(facts), 0644); err != nil {
		t.Fatal(err)
	}
	history := `{"eras":{
		"1978_revolution":{"name":"1978 Revolution","description":"The year before the fall"}
	}}`
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte(history), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := knowledge.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEnrichMatchesPatternAndFacts(t *testing.T) {
	e := New(testStore(t))
	ctx := e.Enrich("A fire broke out near the bazaar, people trapped inside")

	if ctx.Pattern != pattern.FireParallel {
		t.Fatalf("pattern = %q, want fire_parallel", ctx.Pattern)
	}
	if len(ctx.Facts) != MaxFacts {
		t.Fatalf("facts = %d, want %d", len(ctx.Facts), MaxFacts)
	}
	// Document order is preserved and the cap drops later matches.
	if ctx.Facts[0].ID != "f1" || ctx.Facts[1].ID != "f3" || ctx.Facts[2].ID != "f4" {
		t.Errorf("fact ids = %s,%s,%s; want f1,f3,f4", ctx.Facts[0].ID, ctx.Facts[1].ID, ctx.Facts[2].ID)
	}
	if ctx.Era == nil || ctx.Era.Name != "1978 Revolution" {
		t.Errorf("era = %+v, want 1978 Revolution", ctx.Era)
	}
	if ctx.EraID != "1978_revolution" {
		t.Errorf("era id = %q", ctx.EraID)
	}
}

func TestEnrichFallsBackToDefaultPattern(t *testing.T) {
	e := New(testStore(t))
	ctx := e.Enrich("completely unrelated gardening news")

	if ctx.Pattern != pattern.DefaultPattern {
		t.Errorf("pattern = %q, want default %q", ctx.Pattern, pattern.DefaultPattern)
	}
}

func TestEnrichEmptyStore(t *testing.T) {
	s, err := knowledge.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(s)
	ctx := e.Enrich("fire at the Cinema Rex")

	if ctx.Pattern != pattern.FireParallel {
		t.Errorf("pattern = %q", ctx.Pattern)
	}
	if len(ctx.Facts) != 0 {
		t.Errorf("facts = %v, want none", ctx.Facts)
	}
	if ctx.Era != nil {
		t.Errorf("era = %+v, want nil (history doc missing)", ctx.Era)
	}
}
