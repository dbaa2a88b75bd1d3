package prompt

import (
	"fmt"
	"strings"
)

// ClaimedFact is one factual claim to verify during fact-checking.
type ClaimedFact struct {
	Claim  string
	Source string
}

// FactCheck builds the fact-checking prompt for a tweet and its claims.
func FactCheck(tweet string, claims []ClaimedFact) string {
	lines := make([]string, len(claims))
	for i, c := range claims {
		source := c.Source
		if source == "" {
			source = "unknown"
		}
		lines[i] = fmt.Sprintf("- Claim: %s, Source: %s", c.Claim, source)
	}

	return fmt.Sprintf(`Fact-check this tweet.

TWEET: %s

CLAIMED FACTS:
%s

For each fact, verify:
1. Is the fact present in cited source?
2. Is it stated accurately (numbers, dates)?
3. Is context preserved?

OUTPUT:
FACT 1: [claim]
- Accurate: YES/NO
- Verdict: PASS/FAIL
- Fix needed: [if any]

[repeat for each fact]

OVERALL: PUBLISH/REVISE/REJECT
`, tweet, strings.Join(lines, "\n"))
}

// VoiceCheck builds the voice consistency check prompt.
func VoiceCheck(tweet string) string {
	return fmt.Sprintf(`Check this tweet for Faytuks voice consistency.

TWEET: %s

SCORE 1-5 ON:
1. Authoritative but not academic
2. Passionate but fact-based
3. Historical depth with present urgency
4. Persian pride without chauvinism
5. Critical of regime, supportive of people

CHECK FOR VIOLATIONS:
- Excessive hashtags (>2)
- Sycophantic praise
- Gratuitous violence
- Sectarian language
- Ethnic division
- Speculation as fact

OUTPUT:
VOICE SCORES: [1]/5, [2]/5, [3]/5, [4]/5, [5]/5
TOTAL: [X]/25
VIOLATIONS: [list any]
VERDICT: ON-VOICE/NEEDS-ADJUSTMENT/OFF-VOICE
SUGGESTIONS: [if needed]
`, tweet)
}

// ParallelCheck builds the historical-parallel strength check prompt.
func ParallelCheck(tweet, parallel string) string {
	return fmt.Sprintf(`Evaluate historical parallel strength.

TWEET: %s
PARALLEL CLAIMED: %s

SCORE 1-5 ON:
1. Accuracy of both events
2. Relevance of connection
3. Proportionality (not hyperbolic)
4. Novelty (not overused)
5. Emotional resonance

OUTPUT:
PARALLEL SCORES: [1]/5, [2]/5, [3]/5, [4]/5, [5]/5
TOTAL: [X]/25
VERDICT: USE/MODIFY/RETIRE
SUGGESTIONS: [if needed]
`, tweet, parallel)
}

// FullValidation builds the combined fact, voice, and parallel check.
func FullValidation(tweet string) string {
	return fmt.Sprintf(`Perform full validation of this tweet.

TWEET: %s

=== FACT CHECK ===
List all factual claims and verify each.

=== VOICE CHECK ===
Score 1-5 on each criterion:
1. Authoritative/Accessible
2. Passionate/Factual
3. Historical/Urgent
4. Pride/Not Chauvinist
5. Anti-regime/Pro-people

=== PARALLEL CHECK (if applicable) ===
If tweet uses historical parallel, evaluate strength.

=== FINAL VERDICT ===
READY TO PUBLISH: YES/NO
ISSUES: [list any]
SUGGESTIONS: [list any]
CONFIDENCE: high/medium/low
`, tweet)
}
