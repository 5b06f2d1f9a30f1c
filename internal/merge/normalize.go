// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

var (
	// doiPrefixRe strips the URL form of a DOI down to the bare identifier.
	doiPrefixRe = regexp.MustCompile(`^https?://doi\.org/`)

	// yearRe matches a plausible four-digit publication year.
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// tagRe matches <tag>-shaped substrings in Crossref JATS abstracts.
	tagRe = regexp.MustCompile(`<[^>]+>`)
)

// NormalizeDOI lowercases and trims a DOI and removes any doi.org URL
// prefix. Returns "" for a missing DOI.
func NormalizeDOI(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return doiPrefixRe.ReplaceAllString(s, "")
}

// asMap returns v as a JSON object, or nil when v is anything else. Raw
// records are schema-variable; a non-mapping where a mapping is expected
// degrades to nil rather than failing the record.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString returns v as a string, or "".
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt returns v as an int, accepting the float64 that encoding/json
// produces for JSON numbers.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// firstString returns v itself when it is a string, or the first element
// when it is a non-empty list. Crossref wraps scalar fields in
// single-element arrays.
func firstString(v any) string {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		return asString(list[0])
	}
	return asString(v)
}

// crossrefDateFields lists the structured date fields searched for a
// publication year, in priority order.
var crossrefDateFields = []string{"published-print", "published", "issued", "created"}

// extractYear applies the year policy: structured date-parts fields first,
// then a four-digit-year scan of the DOI, then of the abstract. Returns 0
// when no step yields a year.
func extractYear(rec map[string]any, dateFields []string, doi, abstract string) int {
	for _, field := range dateFields {
		part := asMap(rec[field])
		dp, ok := part["date-parts"].([]any)
		if !ok || len(dp) == 0 {
			continue
		}
		first, ok := dp[0].([]any)
		if !ok || len(first) == 0 {
			continue
		}
		if y := asInt(first[0]); y > 0 {
			return y
		}
	}
	if m := yearRe.FindString(doi); m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	if m := yearRe.FindString(abstract); m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	return 0
}

// FromCrossref normalizes a raw Crossref work record. Pure; malformed
// nested fields degrade to zero values.
func FromCrossref(rec map[string]any, domain string) types.Record {
	abstract := asString(rec["abstract"])
	if abstract != "" {
		abstract = strings.TrimSpace(tagRe.ReplaceAllString(abstract, ""))
	}

	var names []string
	if authors, ok := rec["author"].([]any); ok {
		for _, a := range authors {
			am := asMap(a)
			if am == nil {
				continue
			}
			name := strings.TrimSpace(asString(am["given"]) + " " + asString(am["family"]))
			if name != "" {
				names = append(names, name)
			}
		}
	}

	doi := NormalizeDOI(asString(rec["DOI"]))

	return types.Record{
		Title:     firstString(rec["title"]),
		Author:    strings.Join(names, "; "),
		Year:      extractYear(rec, crossrefDateFields, doi, abstract),
		Venue:     firstString(rec["container-title"]),
		DOI:       doi,
		Source:    types.SourceCrossref,
		Domain:    domain,
		Abstract:  abstract,
		Publisher: asString(rec["publisher"]),
		Language:  asString(rec["language"]),
		Type:      asString(rec["type"]),
		URL:       asString(rec["URL"]),
		CitedBy:   asInt(rec["is-referenced-by-count"]),
	}
}

// FromOpenAlex normalizes a raw OpenAlex work record. Abstracts already
// reconstructed at harvest time pass through trimmed; records still carrying
// an inverted index are reconstructed here.
func FromOpenAlex(rec map[string]any, domain string) types.Record {
	primary := asMap(rec["primary_location"])
	source := asMap(primary["source"])

	venue := asString(source["display_name"])
	if venue == "" {
		venue = asString(source["id"])
	}

	abstract := strings.TrimSpace(asString(rec["abstract"]))
	if abstract == "" {
		abstract = ReconstructAbstractJSON(rec["abstract_inverted_index"])
	}

	var names []string
	if authorships, ok := rec["authorships"].([]any); ok {
		for _, a := range authorships {
			author := asMap(asMap(a)["author"])
			if name := asString(author["display_name"]); name != "" {
				names = append(names, name)
			}
		}
	}

	title := asString(rec["display_name"])
	if title == "" {
		title = asString(rec["title"])
	}

	doi := NormalizeDOI(asString(rec["doi"]))

	year := asInt(rec["publication_year"])
	if year == 0 {
		year = extractYear(rec, nil, doi, abstract)
	}

	return types.Record{
		Title:     title,
		Author:    strings.Join(names, "; "),
		Year:      year,
		Venue:     venue,
		DOI:       doi,
		Source:    types.SourceOpenAlex,
		Domain:    domain,
		Abstract:  abstract,
		Publisher: asString(source["display_name"]),
		Language:  asString(rec["language"]),
		Type:      asString(rec["type"]),
		URL:       asString(primary["landing_page_url"]),
		CitedBy:   asInt(rec["cited_by_count"]),
	}
}
