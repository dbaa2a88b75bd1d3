package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

const victimsFixture = `{
  "victims_database": {
    "victims": [
      {
        "name": "Test Person",
        "persianName": "تست",
        "age": 24,
        "city": "Tehran",
        "date_of_death": "2026-01-10",
        "circumstances": "Shot during protest",
        "verified": true,
        "tweet_angles": ["A young life"]
      },
      {
        "name": "Unverified Person",
        "city": "Shiraz",
        "verified": false
      }
    ],
    "usage_guidelines": {"tone": "dignified"}
  }
}`

func writeVictims(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), VictimsFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVictimsMissingFile(t *testing.T) {
	v, err := LoadVictims(filepath.Join(t.TempDir(), VictimsFile))
	if err != nil {
		t.Fatalf("LoadVictims: %v", err)
	}
	if len(v.All()) != 0 {
		t.Errorf("expected empty database, got %d records", len(v.All()))
	}
	if _, ok := v.Random(); ok {
		t.Error("Random on empty database should report no victim")
	}
}

func TestVictimsVerifiedFilter(t *testing.T) {
	v, err := LoadVictims(writeVictims(t, victimsFixture))
	if err != nil {
		t.Fatalf("LoadVictims: %v", err)
	}

	if got := len(v.All()); got != 2 {
		t.Fatalf("All() = %d records, want 2", got)
	}
	verified := v.Verified()
	if len(verified) != 1 || verified[0].Name != "Test Person" {
		t.Errorf("Verified() = %+v, want only Test Person", verified)
	}

	vic, ok := v.Random()
	if !ok || vic.Name != "Test Person" {
		t.Errorf("Random() = %q, %v; want the single verified victim", vic.Name, ok)
	}
}

func TestVictimsByName(t *testing.T) {
	v, err := LoadVictims(writeVictims(t, victimsFixture))
	if err != nil {
		t.Fatalf("LoadVictims: %v", err)
	}

	// Case-insensitive substring, unverified included.
	vic, ok := v.ByName("unverified")
	if !ok || vic.City != "Shiraz" {
		t.Errorf("ByName(unverified) = %+v, %v", vic, ok)
	}
	if _, ok := v.ByName("nobody"); ok {
		t.Error("ByName should miss on unknown name")
	}
}

func TestLoadVictimsMalformed(t *testing.T) {
	if _, err := LoadVictims(writeVictims(t, "{not json")); err == nil {
		t.Error("expected parse error for malformed database")
	}
}
