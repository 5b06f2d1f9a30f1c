// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest pulls raw bibliographic records from the Crossref and
// OpenAlex APIs into per-domain batch files for the merge stage.
// See docs/ARCHITECTURE § Harvest.
package harvest

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// DomainQueries is one domain's entry in the query file. Source-specific
// query lists override the shared query when present.
type DomainQueries struct {
	Query           string   `yaml:"query"`
	CrossrefQueries []string `yaml:"crossref_queries"`
	OpenAlexQueries []string `yaml:"openalex_queries"`

	// MaxRecords caps the deduplicated records per (source, domain).
	MaxRecords int `yaml:"max_records"`
}

// QueryFile maps domain names to their harvest queries.
type QueryFile map[string]DomainQueries

// For returns the queries to run against the named source.
func (d DomainQueries) For(source string) []string {
	switch source {
	case "crossref":
		if len(d.CrossrefQueries) > 0 {
			return d.CrossrefQueries
		}
	case "openalex":
		if len(d.OpenAlexQueries) > 0 {
			return d.OpenAlexQueries
		}
	}
	if d.Query != "" {
		return []string{d.Query}
	}
	return nil
}

// Domains returns the domain names in sorted order.
func (q QueryFile) Domains() []string {
	domains := make([]string, 0, len(q))
	for d := range q {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// LoadQueries reads the per-domain query configuration. An empty file is
// an error: a harvest run without queries cannot do anything.
func LoadQueries(path string) (QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading queries %s: %w", path, err)
	}

	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing queries %s: %w", path, err)
	}
	if len(qf) == 0 {
		return nil, fmt.Errorf("queries %s: no domains defined", path)
	}
	return qf, nil
}
