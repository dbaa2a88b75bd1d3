// Package enrich builds supplemental historical context for a news item
// by detecting its narrative pattern and pulling the matching facts and
// era background from the knowledge base.
package enrich

import (
	"strings"

	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/pattern"
)

// MaxFacts caps the number of facts attached to a single item.
const MaxFacts = 3

// Context is the historical context assembled for one news item.
type Context struct {
	Pattern pattern.Pattern  `json:"pattern"`
	Facts   []knowledge.Fact `json:"facts,omitempty"`
	Era     *knowledge.Era   `json:"era,omitempty"`
	EraID   string           `json:"eraId,omitempty"`
}

// Enricher matches news text against the pattern tables and the
// knowledge base.
type Enricher struct {
	store *knowledge.Store
}

// New returns an Enricher backed by the given knowledge store.
func New(store *knowledge.Store) *Enricher {
	return &Enricher{store: store}
}

// Enrich detects the best-matching pattern for text and collects up to
// MaxFacts facts whose statements mention one of the pattern's fact
// keywords, preserving knowledge-base document order. When no pattern
// matches, the default pattern is used so every item gets context.
func (e *Enricher) Enrich(text string) Context {
	p, ok := pattern.Best(text)
	if !ok {
		p = pattern.DefaultPattern
	}
	ctx := Context{Pattern: p}

	spec, ok := pattern.Lookup(p)
	if !ok {
		return ctx
	}

	ctx.Facts = e.matchFacts(spec.FactKeywords)

	if spec.Era != "" {
		ctx.EraID = spec.Era
		if era, ok := e.store.Era(spec.Era); ok {
			ctx.Era = &era
		}
	}
	return ctx
}

// matchFacts scans all facts in document order and keeps those whose
// text contains any keyword, case-insensitively, up to MaxFacts.
func (e *Enricher) matchFacts(keywords []string) []knowledge.Fact {
	if len(keywords) == 0 {
		return nil
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	var out []knowledge.Fact
	for _, f := range e.store.Facts("") {
		text := strings.ToLower(f.Text())
		for _, kw := range lowered {
			if strings.Contains(text, kw) {
				out = append(out, f)
				break
			}
		}
		if len(out) == MaxFacts {
			break
		}
	}
	return out
}
