// Package pattern classifies free text into narrative patterns using
// keyword triggers, and exposes the per-pattern metadata (emotions, hook
// preference, fact-retrieval keywords, era) used throughout the engine.
package pattern

import (
	"sort"
	"strings"
)

// Pattern identifies a narrative category.
type Pattern string

const (
	FireParallel         Pattern = "fire_parallel"
	CounterRevolution    Pattern = "counter_revolution"
	WesternBetrayal      Pattern = "western_betrayal"
	IraqContrast         Pattern = "iraq_contrast"
	EthnicUnity          Pattern = "ethnic_unity"
	MassacreEscalation   Pattern = "massacre_escalation"
	GreatPowerGame       Pattern = "great_power_game"
	ConstitutionalMemory Pattern = "constitutional_memory"
	GeographyFortress    Pattern = "geography_fortress"
	DiasporaReturn       Pattern = "diaspora_return"
)

// DefaultPattern is the catch-all used when detection finds nothing.
var DefaultPattern = MassacreEscalation

// DefaultEmotion is returned for patterns with no emotion metadata.
const DefaultEmotion = "OUTRAGE"

// DefaultHook is the fallback hook template identifier.
const DefaultHook = "historical_reveal"

// Spec holds all metadata for one pattern. Trigger keywords drive
// detection; FactKeywords drive knowledge-base fact retrieval and are
// deliberately narrower than Triggers.
type Spec struct {
	Pattern      Pattern
	Triggers     []string
	Emotions     []string
	FactKeywords []string
	Era          string
}

// Table is ordered; detection ties are broken by table position.
var Table = []Spec{
	{
		Pattern:      FireParallel,
		Triggers:     []string{"fire", "burn", "arson", "flames", "Cinema Rex", "Rasht", "bazaar", "trapped"},
		Emotions:     []string{"OUTRAGE", "IRONY"},
		FactKeywords: []string{"Cinema Rex", "Rasht", "arson"},
		Era:          "1978_revolution",
	},
	{
		Pattern:      CounterRevolution,
		Triggers:     []string{"revolution", "1979", "hijacked", "Khomeini", "stole", "1978", "grandchildren"},
		Emotions:     []string{"OUTRAGE", "HOPE"},
		FactKeywords: []string{"1979", "Khomeini", "hijacked"},
		Era:          "islamic_republic_1979",
	},
	{
		Pattern:      WesternBetrayal,
		Triggers:     []string{"West", "US", "Europe", "silent", "Guadeloupe", "Carter", "abandoned", "betrayal"},
		Emotions:     []string{"CONTEMPT", "OUTRAGE"},
		FactKeywords: []string{"Guadeloupe", "Carter", "1979"},
	},
	{
		Pattern:      IraqContrast,
		Triggers:     []string{"Iraq", "invasion", "regime change", "troops", "Afghanistan", "Vietnam", "quagmire"},
		Emotions:     []string{"IRONY", "PRIDE"},
		FactKeywords: []string{"Iraq", "2003", "Afghanistan"},
	},
	{
		Pattern:      EthnicUnity,
		Triggers:     []string{"Kurd", "Azeri", "Baluch", "Arab", "fragment", "unity", "ethnic", "Yugoslavia"},
		Emotions:     []string{"PRIDE", "HOPE"},
		FactKeywords: []string{"Khuzestan", "Azerbaijan", "unity"},
	},
	{
		Pattern:      MassacreEscalation,
		Triggers:     []string{"killed", "massacre", "death toll", "1988", "executed", "bodies", "hospital"},
		Emotions:     []string{"GRIEF", "OUTRAGE"},
		FactKeywords: []string{"1988", "2019", "Bloody November", "death toll"},
		Era:          "uprisings_2019_2022",
	},
	{
		Pattern:      GreatPowerGame,
		Triggers:     []string{"China", "Russia", "Turkmenchay", "Silk Road", "partner", "deal"},
		Emotions:     []string{"PRIDE", "IRONY"},
		FactKeywords: []string{"Turkmenchay", "China", "Russia"},
	},
	{
		Pattern:      ConstitutionalMemory,
		Triggers:     []string{"1906", "constitution", "Mossadegh", "democratic", "parliament", "Majles"},
		Emotions:     []string{"PRIDE", "HOPE"},
		FactKeywords: []string{"1906", "Mossadegh", "constitutional"},
		Era:          "constitutional_1906",
	},
	{
		Pattern:      GeographyFortress,
		Triggers:     []string{"geography", "mountains", "invasion", "fortress", "Zagros", "terrain"},
		Emotions:     []string{"PRIDE", "CONTEMPT"},
	},
	{
		Pattern:      DiasporaReturn,
		Triggers:     []string{"diaspora", "return", "exile", "abroad", "4 million", "educated"},
		Emotions:     []string{"HOPE", "PRIDE"},
		FactKeywords: []string{"diaspora", "exile", "4 million"},
	},
}

// Hook is an opening-line template associated with patterns.
type Hook struct {
	ID       string
	Template string
	Example  string
	BestFor  []Pattern
}

// Hooks is ordered; BestHook returns the first match.
var Hooks = []Hook{
	{
		ID:       "shocking_stat",
		Template: "[NUMBER] [SHOCKING FACT]. [CONTRAST/IRONY].",
		Example:  "12,000 dead in 20 days. Media coverage: none.",
		BestFor:  []Pattern{MassacreEscalation, WesternBetrayal},
	},
	{
		ID:       "historical_reveal",
		Template: "In [YEAR], [UNEXPECTED FACT]. [CONNECTION TO NOW].",
		Example:  "In 1978, Islamists burned 400 alive. They blamed the Shah.",
		BestFor:  []Pattern{FireParallel, CounterRevolution, ConstitutionalMemory},
	},
	{
		ID:       "question_hook",
		Template: "[QUESTION THAT CHALLENGES ASSUMPTION]?",
		Example:  "Why is Saudi Arabia silent while Iran burns?",
		BestFor:  []Pattern{WesternBetrayal, GreatPowerGame},
	},
	{
		ID:       "contrast",
		Template: "[THING 1] vs [THING 2]. [IMPLICATION].",
		Example:  "1 USD = 70 rials in 1979. Today: 700,000.",
		BestFor:  []Pattern{CounterRevolution, MassacreEscalation},
	},
	{
		ID:       "pattern_break",
		Template: "'[COMMON BELIEF].' [REFUTATION/EVIDENCE].",
		Example:  "'Iran will fragment.' No. 2,500 years says otherwise.",
		BestFor:  []Pattern{EthnicUnity, GeographyFortress, IraqContrast},
	},
	{
		ID:       "time_anchor",
		Template: "[X] years ago, [EVENT]. Now, [ECHO/COMPLETION].",
		Example:  "47 years ago a Crown Prince left Iran. Now they chant his name.",
		BestFor:  []Pattern{DiasporaReturn, CounterRevolution, FireParallel},
	},
}

// Match is one detection result.
type Match struct {
	Pattern  Pattern
	Score    float64
	Keywords []string
}

// Detect scores every pattern against text by case-insensitive substring
// matching of its trigger keywords. The score is the matched fraction of
// the pattern's trigger set, so large trigger sets gain no advantage.
// Patterns with no matched keyword are excluded. Results are sorted by
// score descending; ties keep table order.
func Detect(text string) []Match {
	lower := strings.ToLower(text)
	var out []Match
	for _, spec := range Table {
		var matched []string
		for _, kw := range spec.Triggers {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, Match{
			Pattern:  spec.Pattern,
			Score:    float64(len(matched)) / float64(len(spec.Triggers)),
			Keywords: matched,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Best returns the top-scoring pattern for text, or (DefaultPattern, false)
// when nothing matched.
func Best(text string) (Pattern, bool) {
	matches := Detect(text)
	if len(matches) == 0 {
		return DefaultPattern, false
	}
	return matches[0].Pattern, true
}

// Lookup returns the metadata record for p.
func Lookup(p Pattern) (Spec, bool) {
	for _, spec := range Table {
		if spec.Pattern == p {
			return spec, true
		}
	}
	return Spec{}, false
}

// Valid reports whether p names a known pattern.
func Valid(p Pattern) bool {
	_, ok := Lookup(p)
	return ok
}

// Emotions returns the emotion tags for p, falling back to DefaultEmotion.
func Emotions(p Pattern) []string {
	if spec, ok := Lookup(p); ok && len(spec.Emotions) > 0 {
		return spec.Emotions
	}
	return []string{DefaultEmotion}
}

// BestHook returns the first hook template listing p, falling back to
// DefaultHook.
func BestHook(p Pattern) Hook {
	for _, h := range Hooks {
		for _, b := range h.BestFor {
			if b == p {
				return h
			}
		}
	}
	hook, _ := HookByID(DefaultHook)
	return hook
}

// HookByID returns the hook template with the given identifier.
func HookByID(id string) (Hook, bool) {
	for _, h := range Hooks {
		if h.ID == id {
			return h, true
		}
	}
	return Hook{}, false
}

// All returns every known pattern in table order.
func All() []Pattern {
	out := make([]Pattern, len(Table))
	for i, spec := range Table {
		out[i] = spec.Pattern
	}
	return out
}
