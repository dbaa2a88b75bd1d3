package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faytuks/engine/internal/enrich"
	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/pattern"
)

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()
	dir := t.TempDir()
	docs := map[string]string{
		"facts.json": `{"facts":[
			{"id":"f1","statement":"Cinema Rex fire killed over 400 people","category":"historical"}
		]}`,
		"quotes-persian.json": `{
			"quote_bank":{"by_topic":{"fire":[{"quote":"The fire revealed everything","author":"Witness","context":"cinema rex fire"}]}},
			"persian_phrases":{
				"protest_slogans":[{"persian":"زن زندگی آزادی","transliteration":"zan zendegi azadi","english":"Woman, Life, Freedom"}],
				"historical_terms":[]
			}
		}`,
		"anniversary-calendar.json": `{"anniversary_calendar":{
			"august":[{"date":"08-19","year":"1978","event":"Cinema Rex fire","significance":"Turning point","tweetAngle":"Same fire, same lies"}]
		}}`,
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := knowledge.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTweetIncludesPatternAndFacts(t *testing.T) {
	b := New(testStore(t))
	got := b.Tweet("cinema rex fire", pattern.FireParallel, TweetOptions{Emotion: "OUTRAGE"})

	for _, want := range []string{
		"PATTERN TO USE: fire_parallel",
		"Cinema Rex fire killed over 400 people",
		"EMOTIONAL TARGET: OUTRAGE",
		"OPENING HOOK",
		"Maximum 280 characters",
		"zan zendegi azadi",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tweet prompt missing %q", want)
		}
	}
}

func TestTweetHookOverride(t *testing.T) {
	b := New(testStore(t))
	hook, ok := pattern.HookByID("question_hook")
	if !ok {
		t.Fatal("question_hook not in table")
	}
	got := b.Tweet("topic", pattern.FireParallel, TweetOptions{HookID: "question_hook"})
	if !strings.Contains(got, hook.Example) {
		t.Error("explicit hook not used")
	}
}

func TestTweetAdditionalContext(t *testing.T) {
	b := New(testStore(t))
	got := b.Tweet("topic", pattern.FireParallel, TweetOptions{Context: "crowd estimates revised"})
	if !strings.Contains(got, "ADDITIONAL CONTEXT:\ncrowd estimates revised") {
		t.Error("context block missing")
	}
}

func TestThreadLength(t *testing.T) {
	b := New(testStore(t))
	got := b.Thread("oil nationalization", 8)
	if !strings.Contains(got, "TARGET LENGTH: 8 tweets") {
		t.Error("length not applied")
	}
	if !strings.Contains(got, "2-7/ Build through historical evidence") {
		t.Error("structure numbering wrong")
	}

	// Too-short requests are clamped rather than producing a broken structure.
	got = b.Thread("x", 1)
	if !strings.Contains(got, "TARGET LENGTH: 3 tweets") {
		t.Error("minimum length not enforced")
	}
}

func TestCounterUnknownSourceFallsBack(t *testing.T) {
	b := New(testStore(t))
	got := b.Counter("the protesters started the fire", "unknown-type")
	if !strings.Contains(got, "SOURCE TYPE: regime") {
		t.Error("unknown source type did not fall back to regime")
	}
	if strings.Contains(got, "the protesters started the fire\n") == false {
		t.Error("claim missing from prompt")
	}
}

func TestDailyIncludesAnniversaries(t *testing.T) {
	b := New(testStore(t))
	date := time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC)
	got := b.Daily(date, []string{"protests in Tehran"}, "")

	for _, want := range []string{
		"DATE: 2026-08-19",
		"- protests in Tehran",
		"HISTORICAL ANNIVERSARIES",
		"Cinema Rex fire",
		"PREVIOUS FOCUS: N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("daily prompt missing %q", want)
		}
	}
}

func TestDailyNoAnniversaries(t *testing.T) {
	b := New(testStore(t))
	date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	got := b.Daily(date, nil, "previous topic")
	if strings.Contains(got, "HISTORICAL ANNIVERSARIES") {
		t.Error("anniversary block present on a date with none")
	}
	if !strings.Contains(got, "PREVIOUS FOCUS: previous topic") {
		t.Error("previous focus missing")
	}
}

func TestEnrichmentPrompt(t *testing.T) {
	b := New(testStore(t))
	ctx := enrich.Context{
		Pattern: pattern.FireParallel,
		Facts:   []knowledge.Fact{{Statement: "Cinema Rex fire killed over 400 people"}},
		Era:     &knowledge.Era{Name: "1978 Revolution", Description: "The year before the fall"},
	}
	got := b.Enrichment("Fire reported in Rasht", ctx)

	for _, want := range []string{
		"Fire reported in Rasht",
		"DETECTED PATTERN: fire_parallel",
		"- Cinema Rex fire killed over 400 people",
		"Historical era: 1978 Revolution",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("enrichment prompt missing %q", want)
		}
	}
}

func TestTranslationPrompt(t *testing.T) {
	got := Translation("BREAKING: strikes reported")
	if !strings.Contains(got, "BREAKING: strikes reported") {
		t.Error("english text missing")
	}
	if !strings.HasSuffix(got, "PERSIAN:") {
		t.Error("prompt should end with the PERSIAN: cue")
	}
}

func TestAnniversaryPromptFallbackPattern(t *testing.T) {
	b := New(testStore(t))
	ann := knowledge.Anniversary{Date: "08-19", Year: "1978", Event: "Cinema Rex fire", Pattern: "not_a_pattern"}
	got := b.Anniversary(ann, "")

	if !strings.Contains(got, "PATTERN: counter_revolution") {
		t.Error("unknown pattern did not fall back to counter_revolution")
	}
	if !strings.Contains(got, "Event: Cinema Rex fire") {
		t.Error("event missing")
	}
}

func TestValidationPrompts(t *testing.T) {
	fc := FactCheck("tweet text", []ClaimedFact{{Claim: "400 died"}, {Claim: "1978", Source: "history.json"}})
	if !strings.Contains(fc, "- Claim: 400 died, Source: unknown") {
		t.Error("missing source should default to unknown")
	}
	if !strings.Contains(fc, "OVERALL: PUBLISH/REVISE/REJECT") {
		t.Error("fact-check verdict line missing")
	}

	if got := VoiceCheck("tweet"); !strings.Contains(got, "VERDICT: ON-VOICE/NEEDS-ADJUSTMENT/OFF-VOICE") {
		t.Error("voice verdict line missing")
	}
	if got := ParallelCheck("tweet", "cinema rex"); !strings.Contains(got, "PARALLEL CLAIMED: cinema rex") {
		t.Error("parallel claim missing")
	}
	if got := FullValidation("tweet"); !strings.Contains(got, "READY TO PUBLISH: YES/NO") {
		t.Error("full validation verdict missing")
	}
}
