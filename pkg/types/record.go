// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the privacy-scan pipeline.
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

// Source identifies the bibliographic API a record was harvested from.
type Source string

const (
	SourceCrossref Source = "crossref"
	SourceOpenAlex Source = "openalex"
)

// KnownSources lists the supported harvest sources in lexical order. The
// merge stage uses this order as the dedup tie-break.
var KnownSources = []Source{SourceCrossref, SourceOpenAlex}

// Record is the canonical bibliographic record shape shared by both harvest
// sources. A Record with an empty Title never enters the corpus; all other
// fields are optional and default to their zero value when the source does
// not supply them.
type Record struct {
	// Title is the paper title. The minimal identity requirement.
	Title string `json:"title" yaml:"title"`

	// Author holds display names joined with "; " in source order.
	// Empty when the source listed no authors.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Year is the publication year, or 0 when unknown. A zero year never
	// merges a record with a dated duplicate during dedup.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is the normalized DOI: lowercased, trimmed, with any
	// https://doi.org/ prefix removed. Empty when the source has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source identifies the harvest API that produced this record.
	Source Source `json:"source" yaml:"source"`

	// Domain is the harvest-configuration domain the record was collected
	// under (e.g. "healthcare").
	Domain string `json:"domain" yaml:"domain"`

	// Abstract is the plain-text abstract. HTML tags are stripped for
	// Crossref; OpenAlex abstracts are reconstructed from the inverted
	// index at harvest time.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`

	// CitedBy is the citation count reported by the source.
	CitedBy int `json:"cited_by,omitempty" yaml:"cited_by,omitempty"`
}
