// Package prompt assembles the text prompts sent to the generation
// collaborator. Builders are pure string assembly over the knowledge
// base; they never call the LLM themselves.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/faytuks/engine/internal/enrich"
	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/pattern"
)

// uprisingStart anchors the "day N" counter in daily packages.
var uprisingStart = time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)

// synthesisTemplates carries the structural template and a worked
// example for the patterns that have one.
var synthesisTemplates = map[pattern.Pattern]struct {
	Template string
	Example  string
}{
	pattern.FireParallel: {
		Template: "[Event 1978] + [Blame then] → [Event 2026] + [Blame now] → [Reveal truth]",
		Example:  "1978: Islamists burn 400 alive in Cinema Rex, blame Shah. 2026: Same Islamists burn protesters in Rasht, blame 'rioters.' Same fire. Same lies.",
	},
	pattern.CounterRevolution: {
		Template: "[1978 aspiration] → [1979 hijacking] → [47 years of tyranny] → [2026 completion]",
		Example:  "1978: Iranians wanted freedom. 1979: Khomeini stole it. 2026: The grandchildren finish what grandparents started.",
	},
	pattern.IraqContrast: {
		Template: "[Iraq failure reason] → [Iran opposite] → [Why 2026 different]",
		Example:  "Iraq: No democratic history. Iran: Constitutional revolution 1906. Not the same.",
	},
	pattern.GreatPowerGame: {
		Template: "[Historical humiliation] → [Current dependency] → [Future leverage]",
		Example:  "1828: Russia took Caucasus. 2021: Mullahs sold Iran to China. 2026: Free Iran plays all powers.",
	},
}

var emotionGuidance = map[string]string{
	"OUTRAGE":  "Trigger moral outrage at injustice. Lead with the most shocking fact.",
	"PRIDE":    "Invoke Persian historical pride. Emphasize achievements and legacy.",
	"HOPE":     "Inspire with possibility of change. Connect struggle to eventual victory.",
	"IRONY":    "Expose regime contradictions with bitter humor. Let absurdity speak.",
	"GRIEF":    "Honor the human cost. Make deaths feel personal, not statistical.",
	"CONTEMPT": "Expose cowardice and hypocrisy. Use precise, cutting language.",
}

// counterStrategies maps a hostile source type to the counter approach.
var counterStrategies = map[string]string{
	"regime":       "Use Cinema Rex parallel. Cite victim names. Note pattern of blaming outsiders.",
	"tankie":       "Use Iraq Contrast. Cite 1906 Constitutional Revolution. Note silence on deaths.",
	"isolationist": "Distinguish support from invasion. Cite Iran's sabotage of Iraq. Note no troops proposed.",
	"fragmenter":   "Use ethnic unity evidence. Cite 2,500 years. Note Yugoslavia comparison is false.",
	"mek":          "Cite Saddam alliance during Iran-Iraq war. Note zero support inside Iran. Follow the money - Giuliani $20K/speech, Bolton paid appearances.",
	"niac":         "Cite federal court ruling: 'not inconsistent with lobbying for regime'. Note 'NIAC' is slur inside Iran. Parsi met Obama officials 33 times.",
	"bbc":          "Cite 'Ayatollah BBC' campaign by Iranians. Note Gaza vs Iran coverage disparity. 2019: BBC agreed to regime conditions on reporting.",
	"voa":          "Note editorial choices platform various opposition factions. Accused of not adequately supporting Pahlavi.",
}

// CounterSources lists the source types the counter builder knows.
func CounterSources() []string {
	out := make([]string, 0, len(counterStrategies))
	for k := range counterStrategies {
		out = append(out, k)
	}
	return out
}

// Builder assembles prompts from the knowledge base.
type Builder struct {
	store *knowledge.Store
}

// New returns a Builder backed by the given knowledge store.
func New(store *knowledge.Store) *Builder {
	return &Builder{store: store}
}

// TweetOptions tune the single-tweet builder.
type TweetOptions struct {
	Emotion string
	HookID  string
	Context string
}

// Tweet builds the single-tweet generation prompt: pattern template,
// emotional target, opening hook, plus relevant facts, quotes, and
// Persian slogans from the knowledge base.
func (b *Builder) Tweet(topic string, p pattern.Pattern, opts TweetOptions) string {
	tmpl := synthesisTemplates[p]
	template := tmpl.Template
	example := tmpl.Example
	if template == "" {
		template = "N/A"
	}
	if example == "" {
		example = "N/A"
	}

	var facts []string
	for i, r := range b.store.Search(topic) {
		if i == 5 {
			break
		}
		facts = append(facts, "- "+r.Text())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a tweet about: %s\n\n", topic)
	fmt.Fprintf(&sb, "PATTERN TO USE: %s\nTemplate: %s\nExample: %s", p, template, example)

	if opts.Emotion != "" {
		fmt.Fprintf(&sb, "\n\nEMOTIONAL TARGET: %s\n%s", opts.Emotion, emotionGuidance[opts.Emotion])
	}

	hook, ok := pattern.HookByID(opts.HookID)
	if !ok {
		hook = pattern.BestHook(p)
	}
	fmt.Fprintf(&sb, "\n\nOPENING HOOK (CRITICAL - first line must stop scrolling):\nTemplate: %s\nExample: %s\nThe FIRST LINE must grab attention using this pattern.", hook.Template, hook.Example)

	sb.WriteString("\n\nRELEVANT FACTS FROM KNOWLEDGE BASE:\n")
	sb.WriteString(strings.Join(facts, "\n"))

	if quotes := b.store.QuotesMatching(topic); len(quotes) > 0 {
		sb.WriteString("\n\nAVAILABLE QUOTES:\n")
		for i, q := range quotes {
			if i == 2 {
				break
			}
			author := q.Author
			if author == "" {
				author = "Unknown"
			}
			fmt.Fprintf(&sb, "- %q - %s\n", q.Quote, author)
		}
	}

	if slogans := b.store.ProtestSlogans(); len(slogans) > 0 {
		sb.WriteString("\n\nPERSIAN PHRASES (optional, 1 max):\n")
		for i, s := range slogans {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "- %s (%s) = %q\n", s.Persian, s.Transliteration, s.English)
		}
	}

	sb.WriteString(`

REQUIREMENTS:
1. Maximum 280 characters
2. Ground in specific historical facts with dates
3. Use parallel structure for comparisons
4. 1-2 hashtags maximum
5. Match Faytuks voice: authoritative, passionate, fact-based
6. Persian phrases optional - use sparingly for authenticity
7. FIRST LINE MUST BE SCROLL-STOPPING (use the hook template)

OUTPUT FORMAT:
TWEET: [the tweet text]
SOURCES: [list facts/sources used]
CONFIDENCE: [high/medium/low]
`)

	if opts.Context != "" {
		fmt.Fprintf(&sb, "\nADDITIONAL CONTEXT:\n%s\n", opts.Context)
	}
	return sb.String()
}

// Thread builds the multi-tweet thread prompt.
func (b *Builder) Thread(topic string, length int) string {
	if length < 3 {
		length = 3
	}

	var facts []string
	for i, r := range b.store.Search(topic) {
		if i == 10 {
			break
		}
		facts = append(facts, "- "+r.Text())
	}

	return fmt.Sprintf(`Create a Twitter thread about: %s

TARGET LENGTH: %d tweets

RELEVANT FACTS:
%s

STRUCTURE:
1/ Hook with 🧵 - create curiosity
2-%d/ Build through historical evidence
%d/ Forward-looking conclusion

REQUIREMENTS:
- Each tweet max 280 characters
- Ground in specific facts with dates
- Build narrative across tweets
- End with call to reflection or action

OUTPUT FORMAT:
1/ [tweet 1]

2/ [tweet 2]

... etc

SOURCES USED: [list]
`, topic, length, strings.Join(facts, "\n"), length-1, length)
}

// Counter builds the counter-narrative prompt. Unknown source types
// fall back to the regime strategy.
func (b *Builder) Counter(claim, sourceType string) string {
	strategy, ok := counterStrategies[sourceType]
	if !ok {
		sourceType = "regime"
		strategy = counterStrategies["regime"]
	}

	return fmt.Sprintf(`Counter this claim without repeating it.

CLAIM TO COUNTER: %s
SOURCE TYPE: %s

STRATEGY: %s

REQUIREMENTS:
1. Do NOT repeat the false claim
2. Present factual counter with evidence
3. Reframe in Faytuks terms
4. Maintain composure
5. Max 280 characters

OUTPUT FORMAT:
COUNTER-TWEET: [the tweet]
STRATEGY USED: [strategy name]
FACTS DEPLOYED: [list]
`, claim, sourceType, strategy)
}

// Daily builds the four-tweet daily package prompt, folding in any
// historical anniversaries that fall on the date.
func (b *Builder) Daily(date time.Time, developments []string, previousFocus string) string {
	devLines := make([]string, len(developments))
	for i, d := range developments {
		devLines[i] = "- " + d
	}

	days := int(date.Sub(uprisingStart).Hours() / 24)

	var annText strings.Builder
	if anns := b.store.AnniversariesFor(int(date.Month()), date.Day()); len(anns) > 0 {
		annText.WriteString("\n\n📅 TODAY'S HISTORICAL ANNIVERSARIES:\n")
		for _, ann := range anns {
			year := ann.Year
			if year == "" {
				year = "N/A"
			}
			fmt.Fprintf(&annText, "- %s: %s\n  Significance: %s\n", year, ann.Event, ann.Significance)
			if ann.TweetAngle != "" {
				fmt.Fprintf(&annText, "  Suggested angle: %s\n", ann.TweetAngle)
			}
		}
		annText.WriteString("\n⚡ INTEGRATE ANNIVERSARY into morning history tweet if relevant!")
	}

	if previousFocus == "" {
		previousFocus = "N/A"
	}
	dateStr := date.Format("2006-01-02")

	return fmt.Sprintf(`Generate daily tweet package for Faytuks Network.

DATE: %s
DAY %d OF UPRISING

OVERNIGHT DEVELOPMENTS:
%s%s

PREVIOUS FOCUS: %s

GENERATE 4 TWEETS:

1. MORNING HISTORY TWEET
   - Deep historical parallel
   - Educational, sets context
   - Best for: 8-9 AM EST

2. MIDDAY UPDATE TWEET
   - Breaking news + historical echo
   - Timely, news-focused
   - Best for: 12-1 PM EST

3. EVENING NARRATIVE TWEET
   - Synthesizes day into pattern
   - Thematic, connective
   - Best for: 6-7 PM EST

4. NIGHT REFLECTION TWEET
   - Human story or diaspora voice
   - Emotional, personal
   - Best for: 10-11 PM EST

Also provide:
- THREAD OPPORTUNITY: Topic worth full thread?
- COUNTER-NARRATIVE NEEDED: Claims to address?
- HASHTAG STRATEGY: What to use today?

OUTPUT FORMAT:
=== DAILY PACKAGE: %s ===

MORNING:
[tweet]

MIDDAY:
[tweet]

EVENING:
[tweet]

NIGHT:
[tweet]

THREAD: [yes/no - topic]
COUNTER: [claim if any]
HASHTAGS: [list]
`, dateStr, days, strings.Join(devLines, "\n"), annText.String(), previousFocus, dateStr)
}

// Enrichment builds the supplemental-tweet prompt from a detected
// pattern and its attached historical context.
func (b *Builder) Enrichment(originalTweet string, ctx enrich.Context) string {
	var factLines []string
	for _, f := range ctx.Facts {
		factLines = append(factLines, "- "+f.Text())
	}

	eraText := ""
	if ctx.Era != nil {
		eraText = fmt.Sprintf("\nHistorical era: %s\n%s", ctx.Era.Name, ctx.Era.Description)
	}

	return fmt.Sprintf(`Create a supplemental tweet that adds historical depth to this current news.

ORIGINAL TWEET (from Iranian commentator):
%s

DETECTED PATTERN: %s

RELEVANT HISTORICAL FACTS:
%s
%s

YOUR TASK:
Create a tweet that:
1. References the current event implicitly (don't repeat it)
2. Draws a specific historical parallel
3. Uses the pattern: "[Historical fact]. [Connection to now]. [Insight]."
4. Maximum 280 characters
5. 1-2 hashtags maximum
6. Tone: authoritative, ironic, fact-based

OUTPUT FORMAT:
TWEET: [your tweet]
PARALLEL: [which historical parallel you used]
HASHTAGS: [suggested hashtags]
`, originalTweet, ctx.Pattern, strings.Join(factLines, "\n"), eraText)
}

// Translation builds the Persian translation prompt for breaking news.
func Translation(english string) string {
	return fmt.Sprintf(`Translate this breaking news tweet to Persian (Farsi).

ENGLISH:
%s

RULES:
1. Keep the same factual content and tone
2. Use standard Persian, not overly formal
3. If there are hashtags in English, translate them to Persian equivalents
4. Keep names transliterated (not translated)
5. Maximum 280 characters
6. Output ONLY the Persian translation, nothing else

PERSIAN:`, english)
}

// Anniversary builds the anniversary-tweet prompt for a calendar entry.
func (b *Builder) Anniversary(ann knowledge.Anniversary, currentContext string) string {
	p := pattern.Pattern(ann.Pattern)
	if !pattern.Valid(p) {
		p = pattern.CounterRevolution
	}
	emotions := pattern.Emotions(p)
	hook := pattern.BestHook(p)

	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	if currentContext == "" {
		currentContext = "N/A"
	}

	return fmt.Sprintf(`Generate an anniversary tweet for Faytuks Network.

HISTORICAL EVENT:
Date: %s (%s)
Event: %s
Description: %s
Significance: %s

EXISTING ANGLE (optional reference):
%s

PATTERN: %s
PRIMARY EMOTION: %s
HOOK TYPE: %s
Hook template: %s

CURRENT CONTEXT (if provided):
%s

REQUIREMENTS:
1. Connect historical event to 2026 revolution
2. Maximum 280 characters
3. Use provided pattern and emotional tone
4. Ground in specific historical facts with dates
5. 1-2 hashtags maximum (use from: %v)

OUTPUT FORMAT:
ANNIVERSARY TWEET: [the tweet]
PATTERN USED: [pattern]
CONNECTION TO 2026: [how it connects]
`, ann.Date, orNA(ann.Year), ann.Event, orNA(ann.Description), orNA(ann.Significance),
		orNA(ann.TweetAngle), p, emotions[0], hook.ID, hook.Template, currentContext, ann.Hashtags)
}
