// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regulation

import (
	"regexp"
	"strings"
)

// DefaultMaxSnippet is the per-passage character budget.
const DefaultMaxSnippet = 450

// headingRe recognizes the citation headings legal texts are segmented
// on: "Article 5", "ART. 12", "§ 164.514(b)", lettered sub-paragraphs
// at the start of a line, and bullet markers.
var headingRe = regexp.MustCompile(
	`(?im)(Article\s+\d+[A-Za-z]?\b|ART\.\s*\d+|§\s*\d[\dA-Za-z.()]*|^\([A-Za-z]\)\s+|^•)`,
)

// Segment is one passage of legal text under the citation heading that
// precedes it.
type Segment struct {
	// ArticleRef is the heading, with internal newlines flattened.
	ArticleRef string

	// Snippet is the passage body, flattened and truncated to the
	// snippet budget.
	Snippet string
}

// Segments splits page text on citation headings and pairs each heading
// with the text that follows it, up to the next heading. Text before
// the first heading has no citation to anchor it and is dropped, as are
// headings with nothing under them. maxSnippet bounds each passage;
// values <= 0 mean DefaultMaxSnippet.
func Segments(text string, maxSnippet int) []Segment {
	if maxSnippet <= 0 {
		maxSnippet = DefaultMaxSnippet
	}

	matches := headingRe.FindAllStringIndex(text, -1)
	var segs []Segment
	for i, m := range matches {
		ref := flatten(text[m[0]:m[1]])

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		snip := flatten(text[m[1]:end])
		if ref == "" || snip == "" {
			continue
		}
		segs = append(segs, Segment{ArticleRef: ref, Snippet: truncate(snip, maxSnippet)})
	}
	return segs
}

// flatten strips surrounding whitespace and joins the lines of a
// heading or passage into a single line.
func flatten(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
