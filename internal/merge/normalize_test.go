// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"encoding/json"
	"testing"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

func decodeRaw(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("decoding raw record: %v", err)
	}
	return m
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://doi.org/10.1000/XYZ", "10.1000/xyz"},
		{"http://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"  10.1000/Xyz  ", "10.1000/xyz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromCrossref(t *testing.T) {
	rec := decodeRaw(t, `{
		"title": ["Decision Trees for Credit Scoring"],
		"DOI": "https://doi.org/10.5555/ABC",
		"author": [
			{"given": "Ada", "family": "Lovelace"},
			{"given": "Alan", "family": "Turing"}
		],
		"container-title": ["Journal of Risk"],
		"published-print": {"date-parts": [[2019, 4]]},
		"abstract": "<jats:p>Credit scores predict default.</jats:p>",
		"publisher": "Springer",
		"language": "en",
		"type": "journal-article",
		"URL": "https://example.org/paper",
		"is-referenced-by-count": 42
	}`)

	got := FromCrossref(rec, "finance")

	want := types.Record{
		Title:     "Decision Trees for Credit Scoring",
		Author:    "Ada Lovelace; Alan Turing",
		Year:      2019,
		Venue:     "Journal of Risk",
		DOI:       "10.5555/abc",
		Source:    types.SourceCrossref,
		Domain:    "finance",
		Abstract:  "Credit scores predict default.",
		Publisher: "Springer",
		Language:  "en",
		Type:      "journal-article",
		URL:       "https://example.org/paper",
		CitedBy:   42,
	}
	if got != want {
		t.Errorf("FromCrossref() = %+v, want %+v", got, want)
	}
}

func TestFromCrossrefYearFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "year from DOI when date-parts missing",
			raw:  `{"title": ["T"], "DOI": "10.5555/conf.2017.12"}`,
			want: 2017,
		},
		{
			name: "year from abstract as last resort",
			raw:  `{"title": ["T"], "abstract": "A study from 1998 on risk."}`,
			want: 1998,
		},
		{
			name: "no year anywhere",
			raw:  `{"title": ["T"]}`,
			want: 0,
		},
		{
			name: "malformed date-parts degrades to fallback",
			raw:  `{"title": ["T"], "issued": {"date-parts": "oops"}, "DOI": "10.1/x.2005"}`,
			want: 2005,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromCrossref(decodeRaw(t, tt.raw), "d")
			if got.Year != tt.want {
				t.Errorf("Year = %d, want %d", got.Year, tt.want)
			}
		})
	}
}

func TestFromCrossrefMalformedFields(t *testing.T) {
	// Nested non-mapping values must degrade to zero values, never panic.
	rec := decodeRaw(t, `{
		"title": "Bare string title",
		"author": "not a list",
		"container-title": [],
		"abstract": 12345
	}`)

	got := FromCrossref(rec, "d")
	if got.Title != "Bare string title" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Author != "" || got.Venue != "" || got.Abstract != "" {
		t.Errorf("malformed fields should be empty, got %+v", got)
	}
}

func TestFromOpenAlex(t *testing.T) {
	rec := decodeRaw(t, `{
		"display_name": "IoT Sensor Privacy",
		"doi": "https://doi.org/10.9999/IOT",
		"publication_year": 2021,
		"language": "en",
		"type": "article",
		"cited_by_count": 7,
		"abstract": "  Ambient sensors leak location.  ",
		"authorships": [
			{"author": {"display_name": "Grace Hopper"}},
			{"author": {}}
		],
		"primary_location": {
			"landing_page_url": "https://example.org/iot",
			"source": {"display_name": "Sensors Journal", "id": "S1"}
		}
	}`)

	got := FromOpenAlex(rec, "iot")

	want := types.Record{
		Title:     "IoT Sensor Privacy",
		Author:    "Grace Hopper",
		Year:      2021,
		Venue:     "Sensors Journal",
		DOI:       "10.9999/iot",
		Source:    types.SourceOpenAlex,
		Domain:    "iot",
		Abstract:  "Ambient sensors leak location.",
		Publisher: "Sensors Journal",
		Language:  "en",
		Type:      "article",
		URL:       "https://example.org/iot",
		CitedBy:   7,
	}
	if got != want {
		t.Errorf("FromOpenAlex() = %+v, want %+v", got, want)
	}
}

func TestFromOpenAlexInvertedIndexAbstract(t *testing.T) {
	rec := decodeRaw(t, `{
		"display_name": "T",
		"abstract_inverted_index": {"hello": [0], "world": [1]}
	}`)

	got := FromOpenAlex(rec, "d")
	if got.Abstract != "hello world" {
		t.Errorf("Abstract = %q, want %q", got.Abstract, "hello world")
	}
}

func TestFromOpenAlexMissingNests(t *testing.T) {
	rec := decodeRaw(t, `{"title": "Fallback title", "primary_location": "not a map"}`)

	got := FromOpenAlex(rec, "d")
	if got.Title != "Fallback title" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Venue != "" || got.URL != "" || got.Publisher != "" {
		t.Errorf("missing nests should be empty, got %+v", got)
	}
}
