package knowledge

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// VictimsFile is the victims database file name under the knowledge
// directory. It is loaded separately from the Registry because it
// carries its own access rules (verified-only defaults).
const VictimsFile = "victims-database.json"

// Victim is one verified-victim record.
type Victim struct {
	Name          string   `json:"name"`
	PersianName   string   `json:"persianName,omitempty"`
	Age           int      `json:"age,omitempty"`
	City          string   `json:"city,omitempty"`
	Province      string   `json:"province,omitempty"`
	DateOfDeath   string   `json:"date_of_death,omitempty"`
	Circumstances string   `json:"circumstances,omitempty"`
	Occupation    string   `json:"occupation,omitempty"`
	Source        string   `json:"source,omitempty"`
	Verified      bool     `json:"verified"`
	TweetAngles   []string `json:"tweet_angles,omitempty"`
}

// Victims is the loaded victims database.
type Victims struct {
	victims []Victim
}

type victimsDoc struct {
	Database struct {
		Victims []Victim `json:"victims"`
	} `json:"victims_database"`
}

// LoadVictims reads the victims database. A missing file yields an
// empty database, not an error.
func LoadVictims(path string) (*Victims, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Victims{}, nil
		}
		return nil, fmt.Errorf("read victims database: %w", err)
	}
	var doc victimsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse victims database: %w", err)
	}
	return &Victims{victims: doc.Database.Victims}, nil
}

// Verified returns victims whose records have been verified.
func (v *Victims) Verified() []Victim {
	var out []Victim
	for _, vic := range v.victims {
		if vic.Verified {
			out = append(out, vic)
		}
	}
	return out
}

// All returns every record, verified or not.
func (v *Victims) All() []Victim {
	return v.victims
}

// ByName finds a victim by case-insensitive name substring.
func (v *Victims) ByName(name string) (Victim, bool) {
	q := strings.ToLower(name)
	for _, vic := range v.victims {
		if strings.Contains(strings.ToLower(vic.Name), q) {
			return vic, true
		}
	}
	return Victim{}, false
}

// Random returns a random verified victim for the daily memorial.
func (v *Victims) Random() (Victim, bool) {
	verified := v.Verified()
	if len(verified) == 0 {
		return Victim{}, false
	}
	return verified[rand.Intn(len(verified))], true
}
