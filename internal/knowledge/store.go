// Package knowledge loads and queries the fixed registry of knowledge
// base JSON documents. Documents are read once at construction and are
// immutable for the process lifetime.
package knowledge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Registry maps document keys to their file names under the base directory.
var Registry = map[string]string{
	// Core knowledge
	"history":     "history.json",
	"facts":       "facts.json",
	"geography":   "geographical-unity.json",
	"geopolitics": "geopolitics.json",
	"great_powers": "great-powers.json",
	"iran_not_iraq": "iran-not-iraq.json",
	"narratives":  "narratives.json",
	"actors":      "actors.json",
	"quotes":      "quotes-persian.json",
	// Operational knowledge
	"calendar":       "anniversary-calendar.json",
	"hashtags":       "hashtag-strategy.json",
	"sources":        "source-credibility.json",
	"threads":        "thread-templates.json",
	"multiplatform":  "multiplatform.json",
	"framework":      "synthesis-framework.json",
	"corpus_scraped": "corpus-scraped.json",
	"corpus_samples": "corpus-samples.json",
}

// Fact is one entry in facts.json. Older documents use "fact" for the
// text field, newer ones use "statement"; Text resolves either.
type Fact struct {
	ID        string `json:"id,omitempty"`
	Statement string `json:"statement,omitempty"`
	Fact      string `json:"fact,omitempty"`
	Category  string `json:"category,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Text returns the fact's statement regardless of which field carries it.
func (f Fact) Text() string {
	if f.Statement != "" {
		return f.Statement
	}
	return f.Fact
}

// Actor is one entry in actors.json.
type Actor struct {
	Name       string   `json:"name"`
	Role       string   `json:"role,omitempty"`
	Type       string   `json:"type,omitempty"`
	KeyActions []string `json:"keyActions,omitempty"`
}

// Narrative is one entry in narratives.json.
type Narrative struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Status            string   `json:"status,omitempty"`
	TweetAngle        string   `json:"tweetAngle,omitempty"`
	RelatedCategories []string `json:"relatedCategories,omitempty"`
	Frequency         string   `json:"frequency,omitempty"`
	Priority          int      `json:"priority,omitempty"`
	Hashtags          []string `json:"hashtags,omitempty"`
	RelatedActors     []string `json:"relatedActors,omitempty"`
}

// Quote is one entry in the quote bank.
type Quote struct {
	Quote   string `json:"quote"`
	Author  string `json:"author,omitempty"`
	Context string `json:"context,omitempty"`
}

// Phrase is a Persian slogan, historical term, or cultural phrase.
type Phrase struct {
	Persian         string `json:"persian"`
	Transliteration string `json:"transliteration"`
	English         string `json:"english"`
}

// Anniversary is one calendar entry, keyed by an "MM-DD" date string.
type Anniversary struct {
	Date         string   `json:"date"`
	Year         string   `json:"year,omitempty"`
	Event        string   `json:"event"`
	Description  string   `json:"description,omitempty"`
	Significance string   `json:"significance,omitempty"`
	TweetAngle   string   `json:"tweetAngle,omitempty"`
	Pattern      string   `json:"pattern,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
}

// Era is a historical era record from history.json.
type Era struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Source is one entry in source-credibility.json, flattened with its
// category and registry id.
type Source struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Tier       int      `json:"tier"`
	Category   string   `json:"category"`
	Website    string   `json:"website,omitempty"`
	Twitter    string   `json:"twitter,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	UseFor     []string `json:"use_for,omitempty"`
}

// CorpusTweet is a scraped or sample tweet from the corpus documents.
type CorpusTweet struct {
	Date    string   `json:"date,omitempty"`
	Text    string   `json:"text,omitempty"`
	Tweet   string   `json:"tweet,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

// Hashtag is one recommended hashtag with usage guidance.
type Hashtag struct {
	Tag   string `json:"tag"`
	Usage string `json:"usage,omitempty"`
}

// HashtagCombination is the recommended hashtag set for a content type.
type HashtagCombination struct {
	Recommended string `json:"recommended,omitempty"`
	Example     string `json:"example,omitempty"`
}

// ResultKind tags a search result with its source document.
type ResultKind string

const (
	KindFact      ResultKind = "fact"
	KindNarrative ResultKind = "narrative"
	KindActor     ResultKind = "actor"
)

// Result is one search hit.
type Result struct {
	Kind      ResultKind
	Fact      *Fact
	Narrative *Narrative
	Actor     *Actor
}

// Text returns the primary display text for the hit.
func (r Result) Text() string {
	switch r.Kind {
	case KindFact:
		return r.Fact.Text()
	case KindNarrative:
		return r.Narrative.Title
	case KindActor:
		return r.Actor.Name
	}
	return ""
}

// Store is the loaded, read-only knowledge base.
type Store struct {
	baseDir string

	facts      []Fact
	actors     []Actor
	narratives []Narrative

	quoteBank       map[string][]Quote
	protestSlogans  []Phrase
	historicalTerms []Phrase
	culturalPhrases []Phrase

	calendar map[string][]Anniversary
	eras     map[string]Era

	tierDefs map[string]json.RawMessage
	sources  []Source

	primaryHashtags []Hashtag
	combinations    map[string]HashtagCombination

	corpusScraped []CorpusTweet
	corpusSamples map[string][]CorpusTweet

	threadTemplateCount int
	platformCount       int

	// raw keeps every loaded document for opaque consumers.
	raw map[string]json.RawMessage

	missing []string
}

var monthNames = []string{"", "january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december"}

// Load reads every registry document from baseDir. A missing or
// unparseable file logs a warning and contributes an empty placeholder;
// Load itself only fails when the base directory cannot be resolved.
func Load(baseDir string) (*Store, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve knowledge dir: %w", err)
	}

	s := &Store{
		baseDir:       abs,
		quoteBank:     map[string][]Quote{},
		calendar:      map[string][]Anniversary{},
		eras:          map[string]Era{},
		combinations:  map[string]HashtagCombination{},
		corpusSamples: map[string][]CorpusTweet{},
		raw:           map[string]json.RawMessage{},
	}

	for key, filename := range Registry {
		path := filepath.Join(abs, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("knowledge document missing",
				"component", "knowledge", "document", key, "path", path)
			s.missing = append(s.missing, key)
			s.raw[key] = json.RawMessage("{}")
			continue
		}
		if !json.Valid(data) {
			slog.Warn("knowledge document malformed",
				"component", "knowledge", "document", key, "path", path)
			s.missing = append(s.missing, key)
			s.raw[key] = json.RawMessage("{}")
			continue
		}
		s.raw[key] = json.RawMessage(data)
	}

	s.decode()
	return s, nil
}

// decode projects the raw documents into typed structures. Decode errors
// on individual documents leave that document's typed view empty.
func (s *Store) decode() {
	decodeDoc(s, "facts", func(d struct {
		Facts []Fact `json:"facts"`
	}) {
		s.facts = d.Facts
	})
	decodeDoc(s, "actors", func(d struct {
		Actors []Actor `json:"actors"`
	}) {
		s.actors = d.Actors
	})
	decodeDoc(s, "narratives", func(d struct {
		Narratives []Narrative `json:"narratives"`
	}) {
		s.narratives = d.Narratives
	})
	decodeDoc(s, "quotes", func(d struct {
		QuoteBank struct {
			ByTopic map[string][]Quote `json:"by_topic"`
		} `json:"quote_bank"`
		PersianPhrases struct {
			ProtestSlogans  []Phrase `json:"protest_slogans"`
			HistoricalTerms []Phrase `json:"historical_terms"`
			CulturalPhrases []Phrase `json:"cultural_phrases"`
		} `json:"persian_phrases"`
	}) {
		if d.QuoteBank.ByTopic != nil {
			s.quoteBank = d.QuoteBank.ByTopic
		}
		s.protestSlogans = d.PersianPhrases.ProtestSlogans
		s.historicalTerms = d.PersianPhrases.HistoricalTerms
		s.culturalPhrases = d.PersianPhrases.CulturalPhrases
	})
	decodeDoc(s, "calendar", func(d struct {
		Calendar map[string][]Anniversary `json:"anniversary_calendar"`
	}) {
		if d.Calendar != nil {
			s.calendar = d.Calendar
		}
	})
	decodeDoc(s, "history", func(d struct {
		Eras map[string]Era `json:"eras"`
	}) {
		if d.Eras != nil {
			s.eras = d.Eras
		}
	})
	decodeDoc(s, "sources", func(d struct {
		Credibility struct {
			TierDefinitions map[string]json.RawMessage `json:"tier_definitions"`
			Sources         map[string]map[string]struct {
				Name       string   `json:"name"`
				Tier       int      `json:"tier"`
				Website    string   `json:"website"`
				Twitter    string   `json:"twitter"`
				Notes      string   `json:"notes"`
				Strengths  []string `json:"strengths"`
				Weaknesses []string `json:"weaknesses"`
				UseFor     []string `json:"use_for"`
			} `json:"sources"`
		} `json:"source_credibility"`
	}) {
		s.tierDefs = d.Credibility.TierDefinitions
		for category, entries := range d.Credibility.Sources {
			for id, src := range entries {
				s.sources = append(s.sources, Source{
					ID:         id,
					Name:       src.Name,
					Tier:       src.Tier,
					Category:   category,
					Website:    src.Website,
					Twitter:    src.Twitter,
					Notes:      src.Notes,
					Strengths:  src.Strengths,
					Weaknesses: src.Weaknesses,
					UseFor:     src.UseFor,
				})
			}
		}
	})
	decodeDoc(s, "hashtags", func(d struct {
		Strategy struct {
			Tiers struct {
				Primary struct {
					Hashtags []Hashtag `json:"hashtags"`
				} `json:"tier_1_primary"`
			} `json:"hashtag_tiers"`
			Combinations map[string]HashtagCombination `json:"combination_strategy"`
		} `json:"hashtag_strategy"`
	}) {
		s.primaryHashtags = d.Strategy.Tiers.Primary.Hashtags
		if d.Strategy.Combinations != nil {
			s.combinations = d.Strategy.Combinations
		}
	})
	decodeDoc(s, "corpus_scraped", func(d struct {
		Tweets []CorpusTweet `json:"tweets"`
	}) {
		s.corpusScraped = d.Tweets
	})
	decodeDoc(s, "corpus_samples", func(d struct {
		Samples map[string]struct {
			Tweets []CorpusTweet `json:"tweets"`
		} `json:"sample_tweets_generated"`
	}) {
		for cat, group := range d.Samples {
			s.corpusSamples[cat] = group.Tweets
		}
	})
	decodeDoc(s, "threads", func(d struct {
		ThreadTemplates struct {
			Templates map[string]json.RawMessage `json:"templates"`
		} `json:"thread_templates"`
	}) {
		s.threadTemplateCount = len(d.ThreadTemplates.Templates)
	})
	decodeDoc(s, "multiplatform", func(d struct {
		Guide struct {
			Platforms map[string]json.RawMessage `json:"platforms"`
		} `json:"multiplatform_guide"`
	}) {
		s.platformCount = len(d.Guide.Platforms)
	})
}

func decodeDoc[T any](s *Store, key string, apply func(T)) {
	var doc T
	if err := json.Unmarshal(s.raw[key], &doc); err != nil {
		slog.Warn("knowledge document decode failed",
			"component", "knowledge", "document", key, "error", err)
		return
	}
	apply(doc)
}

// Missing returns the keys of registry documents that failed to load.
func (s *Store) Missing() []string { return s.missing }

// Raw returns the undecoded JSON for a registry document.
func (s *Store) Raw(key string) (json.RawMessage, bool) {
	data, ok := s.raw[key]
	return data, ok
}

// Facts returns all facts, optionally filtered by category.
func (s *Store) Facts(category string) []Fact {
	if category == "" {
		return s.facts
	}
	var out []Fact
	for _, f := range s.facts {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Actors returns all actors, optionally filtered by type.
func (s *Store) Actors(actorType string) []Actor {
	if actorType == "" {
		return s.actors
	}
	var out []Actor
	for _, a := range s.actors {
		if a.Type == actorType {
			out = append(out, a)
		}
	}
	return out
}

// Narratives returns all narratives, optionally filtered by status.
func (s *Store) Narratives(status string) []Narrative {
	if status == "" {
		return s.narratives
	}
	var out []Narrative
	for _, n := range s.narratives {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out
}

// Search unions case-insensitive substring matches across facts,
// narratives, and actors, preserving document order within each kind.
func (s *Store) Search(query string) []Result {
	q := strings.ToLower(query)
	var out []Result

	for i := range s.facts {
		if strings.Contains(strings.ToLower(s.facts[i].Text()), q) {
			out = append(out, Result{Kind: KindFact, Fact: &s.facts[i]})
		}
	}
	for i := range s.narratives {
		n := &s.narratives[i]
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Description), q) {
			out = append(out, Result{Kind: KindNarrative, Narrative: n})
		}
	}
	for i := range s.actors {
		a := &s.actors[i]
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Role), q) {
			out = append(out, Result{Kind: KindActor, Actor: a})
		}
	}
	return out
}

// RelevantActors returns actors whose name, role, or key actions mention
// the topic.
func (s *Store) RelevantActors(topic string) []Actor {
	q := strings.ToLower(topic)
	var out []Actor
	for _, a := range s.actors {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Role), q) {
			out = append(out, a)
			continue
		}
		for _, action := range a.KeyActions {
			if strings.Contains(strings.ToLower(action), q) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// AnniversariesFor returns calendar entries whose date exactly matches or
// starts with "MM-DD". An out-of-range month yields an empty result.
func (s *Store) AnniversariesFor(month, day int) []Anniversary {
	if month < 1 || month > 12 {
		return nil
	}
	dateStr := fmt.Sprintf("%02d-%02d", month, day)
	var out []Anniversary
	for _, event := range s.calendar[monthNames[month]] {
		if event.Date == dateStr || strings.HasPrefix(event.Date, dateStr) {
			out = append(out, event)
		}
	}
	return out
}

// Era returns the era record with the given identifier.
func (s *Store) Era(id string) (Era, bool) {
	era, ok := s.eras[id]
	return era, ok
}

// Quotes returns quotes for a topic, or all quotes when topic is empty.
func (s *Store) Quotes(topic string) []Quote {
	if topic != "" {
		return s.quoteBank[topic]
	}
	var out []Quote
	for _, quotes := range s.quoteBank {
		out = append(out, quotes...)
	}
	return out
}

// QuotesMatching returns quotes whose text or context mentions the topic.
func (s *Store) QuotesMatching(topic string) []Quote {
	q := strings.ToLower(topic)
	var out []Quote
	for _, quote := range s.Quotes("") {
		if strings.Contains(strings.ToLower(quote.Quote), q) ||
			strings.Contains(strings.ToLower(quote.Context), q) {
			out = append(out, quote)
		}
	}
	return out
}

// ProtestSlogans returns the Persian protest slogans.
func (s *Store) ProtestSlogans() []Phrase { return s.protestSlogans }

// HistoricalTerms returns the Persian historical terms.
func (s *Store) HistoricalTerms() []Phrase { return s.historicalTerms }

// Phrase finds a Persian phrase by transliteration across all phrase lists.
func (s *Store) Phrase(transliteration string) (Phrase, bool) {
	want := strings.ToLower(transliteration)
	for _, list := range [][]Phrase{s.protestSlogans, s.historicalTerms, s.culturalPhrases} {
		for _, p := range list {
			if strings.ToLower(p.Transliteration) == want {
				return p, true
			}
		}
	}
	return Phrase{}, false
}

// SourceTier looks up a source by id or display name substring.
func (s *Store) SourceTier(name string) (Source, bool) {
	q := strings.ToLower(name)
	for _, src := range s.sources {
		if strings.Contains(strings.ToLower(src.ID), q) ||
			strings.Contains(strings.ToLower(src.Name), q) {
			return src, true
		}
	}
	return Source{}, false
}

// SourcesByTier returns all sources at a credibility tier.
func (s *Store) SourcesByTier(tier int) []Source {
	var out []Source
	for _, src := range s.sources {
		if src.Tier == tier {
			out = append(out, src)
		}
	}
	return out
}

// TierDefinitions returns the raw tier definition records.
func (s *Store) TierDefinitions() map[string]json.RawMessage { return s.tierDefs }

// PrimaryHashtags returns the tier 1 hashtags.
func (s *Store) PrimaryHashtags() []Hashtag { return s.primaryHashtags }

// HashtagsForContentType returns the recommended combination for a
// content type.
func (s *Store) HashtagsForContentType(contentType string) (HashtagCombination, bool) {
	c, ok := s.combinations[contentType]
	return c, ok
}

// CorpusScraped returns the scraped reference tweets.
func (s *Store) CorpusScraped() []CorpusTweet { return s.corpusScraped }

// CorpusSamples returns sample generated tweets, optionally for one
// category ("3" and "category_3" are equivalent).
func (s *Store) CorpusSamples(category string) []CorpusTweet {
	if category != "" {
		if !strings.HasPrefix(category, "category_") {
			category = "category_" + category
		}
		return s.corpusSamples[category]
	}
	var out []CorpusTweet
	for _, tweets := range s.corpusSamples {
		out = append(out, tweets...)
	}
	return out
}

// CorpusByPattern returns sample tweets tagged with the given pattern.
func (s *Store) CorpusByPattern(p string) []CorpusTweet {
	var out []CorpusTweet
	for _, t := range s.CorpusSamples("") {
		if t.Pattern == p {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes the loaded knowledge base.
type Stats struct {
	Facts            int `json:"facts"`
	Actors           int `json:"actors"`
	Narratives       int `json:"narratives"`
	ActiveNarratives int `json:"active_narratives"`
	Quotes           int `json:"quotes"`
	ProtestSlogans   int `json:"persian_slogans"`
	HistoricalTerms  int `json:"persian_terms"`
	Anniversaries    int `json:"anniversaries"`
	SourcesTracked   int `json:"sources_tracked"`
	ThreadTemplates  int `json:"thread_templates"`
	Platforms        int `json:"platforms"`
	CorpusScraped    int `json:"corpus_scraped"`
	CorpusSamples    int `json:"corpus_samples"`
}

// Stats returns aggregate counts over the loaded documents.
func (s *Store) Stats() Stats {
	anniversaries := 0
	for _, events := range s.calendar {
		anniversaries += len(events)
	}
	return Stats{
		Facts:            len(s.facts),
		Actors:           len(s.actors),
		Narratives:       len(s.narratives),
		ActiveNarratives: len(s.Narratives("active")),
		Quotes:           len(s.Quotes("")),
		ProtestSlogans:   len(s.protestSlogans),
		HistoricalTerms:  len(s.historicalTerms),
		Anniversaries:    anniversaries,
		SourcesTracked:   len(s.sources),
		ThreadTemplates:  s.threadTemplateCount,
		Platforms:        s.platformCount,
		CorpusScraped:    len(s.corpusScraped),
		CorpusSamples:    len(s.CorpusSamples("")),
	}
}
