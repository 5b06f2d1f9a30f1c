// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regulation

import (
	"strings"
	"testing"
)

func TestSegmentsPairsHeadingsWithText(t *testing.T) {
	text := "Preamble text with no citation.\n" +
		"Article 5\nPersonal data shall be processed lawfully.\n" +
		"Article 6\nProcessing shall be lawful only if consented."

	segs := Segments(text, 0)
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2: %+v", len(segs), segs)
	}
	if segs[0].ArticleRef != "Article 5" {
		t.Errorf("ref = %q, want %q", segs[0].ArticleRef, "Article 5")
	}
	if segs[0].Snippet != "Personal data shall be processed lawfully." {
		t.Errorf("snippet = %q", segs[0].Snippet)
	}
	if segs[1].ArticleRef != "Article 6" {
		t.Errorf("ref = %q, want %q", segs[1].ArticleRef, "Article 6")
	}
}

func TestSegmentsHeadingForms(t *testing.T) {
	tests := []struct {
		text    string
		wantRef string
	}{
		{"ART. 12 Transparent information for the data subject", "ART. 12"},
		{"§ 164.514(b) De-identification standard applies here", "§ 164.514(b)"},
		{"(a) any identifier assigned to the consumer", "(a)"},
		{"• unique personal identifiers and probabilistic identifiers", "•"},
		{"article 17 Right to erasure without undue delay", "article 17"},
	}

	for _, tt := range tests {
		segs := Segments(tt.text, 0)
		if len(segs) != 1 {
			t.Errorf("Segments(%q) yielded %d segments, want 1", tt.text, len(segs))
			continue
		}
		if got := strings.TrimSpace(segs[0].ArticleRef); got != tt.wantRef {
			t.Errorf("Segments(%q) ref = %q, want %q", tt.text, got, tt.wantRef)
		}
	}
}

func TestSegmentsDropsTextBeforeFirstHeading(t *testing.T) {
	segs := Segments("Recitals without any citation marker at all.", 0)
	if len(segs) != 0 {
		t.Fatalf("segments = %+v, want none: no heading anchors the text", segs)
	}
}

func TestSegmentsSkipsEmptyPassages(t *testing.T) {
	// Back-to-back headings leave nothing under the first one.
	segs := Segments("Article 1\nArticle 2\nScope of this regulation.", 0)
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1: %+v", len(segs), segs)
	}
	if segs[0].ArticleRef != "Article 2" {
		t.Errorf("ref = %q, want %q", segs[0].ArticleRef, "Article 2")
	}
}

func TestSegmentsTruncatesToBudget(t *testing.T) {
	text := "Article 9\n" + strings.Repeat("x", 2*DefaultMaxSnippet)
	segs := Segments(text, 0)
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if n := len([]rune(segs[0].Snippet)); n != DefaultMaxSnippet {
		t.Errorf("snippet length = %d, want %d", n, DefaultMaxSnippet)
	}

	segs = Segments(text, 10)
	if n := len([]rune(segs[0].Snippet)); n != 10 {
		t.Errorf("snippet length = %d, want 10", n)
	}
}

func TestSegmentsFlattensNewlines(t *testing.T) {
	segs := Segments("Article 22\nAutomated individual decision-making,\nincluding profiling.", 0)
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if strings.Contains(segs[0].Snippet, "\n") {
		t.Errorf("snippet retains newlines: %q", segs[0].Snippet)
	}
}
