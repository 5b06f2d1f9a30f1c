// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feature canonicalizes free-text feature names and resolves them
// against the synonym vocabulary.
// See docs/ARCHITECTURE § Feature Canonicalization.
package feature

import (
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
)

// nonAlnumRe matches every character outside the canonical alphabet.
var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9 ]+`)

// SanitizeName cleans a raw feature name into its canonical lexical form:
// strip to letters, digits, and spaces; singularize each word; capitalize
// only the first word; join with single spaces. The result is the stable
// key used for feature dedup and vocabulary lookups.
//
//	SanitizeName("Credit Scores") == "Credit score"
func SanitizeName(name string) string {
	name = nonAlnumRe.ReplaceAllString(name, "")
	words := strings.Fields(name)
	for i, w := range words {
		if s := inflection.Singular(w); s != "" {
			w = s
		}
		if i == 0 {
			w = capitalize(w)
		} else {
			w = strings.ToLower(w)
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
