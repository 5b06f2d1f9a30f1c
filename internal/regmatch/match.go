// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package regmatch joins classified features against regulation clauses
// on attribute class, validates each resulting pair with the oracle, and
// applies the final regulation-status filter.
// See docs/ARCHITECTURE § Feature-Regulation Match.
package regmatch

import (
	"strings"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

// DefaultRegulations is the ordered allow-list of regulation IDs kept
// for validation: the high-priority EU set followed by the US set.
var DefaultRegulations = []string{
	"GDPR",
	"ePrivacy Directive",
	"NIS2",
	"PSD2",
	"EU eHealth Network",
	"CCPA",
	"CPRA",
	"HIPAA",
	"HITECH",
	"GLBA",
	"COPPA",
	"FERPA",
	"ECPA",
}

// ExplodedClause is one clause row restricted to a single class from its
// semicolon-joined class set.
type ExplodedClause struct {
	types.Clause
	Class types.AttributeClass
}

// ExplodeClauses splits every clause's multi-class field on ";" into one
// row per (clause, class). Tokens are trimmed; empty tokens and the
// residual Other class carry no regulatory signal and are dropped.
func ExplodeClauses(clauses []types.Clause) []ExplodedClause {
	var out []ExplodedClause
	for _, c := range clauses {
		for _, tok := range strings.Split(c.AttributeClass, ";") {
			cls := strings.TrimSpace(tok)
			if cls == "" || cls == string(types.ClassOther) {
				continue
			}
			out = append(out, ExplodedClause{Clause: c, Class: types.AttributeClass(cls)})
		}
	}
	return out
}

// group accumulates one output pair plus the dedup state behind it.
type group struct {
	pair      types.FeatureRegulationPair
	refIndex  map[string]int
	seenQuote map[string]bool
}

// Match inner-joins features against exploded clauses on exact attribute
// class equality and aggregates the hits into one row per distinct
// (feature, regulation) combination:
//
//   - article_ref: distinct matched refs, first-occurrence order, ";"-joined
//   - quoted_text: per-ref deduplicated passages, both levels in
//     first-occurrence order
//
// Pairs whose regulation is outside the allow-list are discarded; a nil
// allow-list means DefaultRegulations. Output order follows the first
// encounter of each group, so equal inputs always produce equal output.
func Match(features []types.Feature, clauses []types.Clause, allowed []string) []types.FeatureRegulationPair {
	if allowed == nil {
		allowed = DefaultRegulations
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = true
	}

	exploded := ExplodeClauses(clauses)

	var order []string
	groups := make(map[string]*group)
	for _, f := range features {
		for _, ec := range exploded {
			if ec.Class != f.AttributeClass {
				continue
			}

			key := strings.Join([]string{
				f.Name, f.Title, f.Abstract, f.DOI, f.Domain,
				string(f.AttributeClass), f.Notes, ec.RegID,
			}, "\x00")
			g, ok := groups[key]
			if !ok {
				g = &group{
					pair:      types.FeatureRegulationPair{Feature: f, RegID: ec.RegID},
					refIndex:  make(map[string]int),
					seenQuote: make(map[string]bool),
				}
				groups[key] = g
				order = append(order, key)
			}

			idx, ok := g.refIndex[ec.ArticleRef]
			if !ok {
				idx = len(g.pair.QuotedText)
				g.refIndex[ec.ArticleRef] = idx
				g.pair.QuotedText = append(g.pair.QuotedText, types.Evidence{ArticleRef: ec.ArticleRef})
			}
			quoteKey := ec.ArticleRef + "\x00" + ec.QuotedText
			if !g.seenQuote[quoteKey] {
				g.seenQuote[quoteKey] = true
				g.pair.QuotedText[idx].Passages = append(g.pair.QuotedText[idx].Passages, ec.QuotedText)
			}
		}
	}

	var pairs []types.FeatureRegulationPair
	for _, key := range order {
		g := groups[key]
		if len(g.pair.QuotedText) == 0 || !allowedSet[g.pair.RegID] {
			continue
		}
		refs := make([]string, len(g.pair.QuotedText))
		for i, ev := range g.pair.QuotedText {
			refs[i] = ev.ArticleRef
		}
		g.pair.ArticleRef = strings.Join(refs, ";")
		pairs = append(pairs, g.pair)
	}
	return pairs
}
