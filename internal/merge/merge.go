// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge unions raw harvested record batches into a single
// deduplicated corpus.
// See docs/ARCHITECTURE § Corpus Merge.
package merge

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// Normalizer maps one raw source record into the canonical shape.
type Normalizer func(rec map[string]any, domain string) types.Record

// normalizers maps filename prefixes to their source normalizer.
var normalizers = map[string]Normalizer{
	"crossref": FromCrossref,
	"openalex": FromOpenAlex,
}

// Result holds the merged corpus and run diagnostics.
type Result struct {
	// Corpus is the deduplicated record set, ordered by source then by
	// input position.
	Corpus []types.Record

	// Raw counts every record normalized across all batches, including
	// the duplicates later removed.
	Raw int

	// Dropped counts records discarded for a missing title or a malformed
	// shape.
	Dropped int

	// Files counts the batch files consumed.
	Files int
}

// Merge scans rawDir for {prefix}_{domain}.json batches, normalizes each
// record through the prefix's source normalizer, and applies the two-pass
// dedup. Unknown prefixes and unreadable files are skipped with a warning;
// individual malformed records are dropped without aborting the batch. An
// empty result across all inputs is an error.
func Merge(rawDir string, w io.Writer) (*Result, error) {
	paths, err := filepath.Glob(filepath.Join(rawDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning raw directory %s: %w", rawDir, err)
	}
	sort.Strings(paths)

	res := &Result{}
	var records []types.Record

	for _, path := range paths {
		name := filepath.Base(path)
		stem := strings.TrimSuffix(name, ".json")
		prefix, domain, _ := strings.Cut(stem, "_")

		normalize, ok := normalizers[prefix]
		if !ok {
			fmt.Fprintf(w, "warning: unknown prefix %q; skipping %s\n", prefix, name)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", name, err)
			continue
		}

		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			fmt.Fprintf(w, "warning: %s is not a JSON array; skipping: %v\n", name, err)
			continue
		}

		res.Files++
		for i, item := range raw {
			rec, ok := item.(map[string]any)
			if !ok {
				fmt.Fprintf(w, "warning: %s record %d is not an object; skipping\n", name, i)
				res.Dropped++
				continue
			}
			norm := normalize(rec, domain)
			if norm.Title == "" {
				res.Dropped++
				continue
			}
			records = append(records, norm)
			res.Raw++
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", rawDir)
	}

	res.Corpus = Dedup(records)
	fmt.Fprintf(w, "merged %d raw records into %d unique rows (%d dropped)\n",
		res.Raw, len(res.Corpus), res.Dropped)
	return res, nil
}

// Dedup applies the two dedup passes in strict order: first by normalized
// DOI, then by (lowercased title, year). Records are stable-sorted by source
// name beforehand so the survivor of each duplicate group is the one from
// the lexically first source; within a source, input order decides. The
// tie-break is deterministic, not a quality signal.
func Dedup(records []types.Record) []types.Record {
	sorted := make([]types.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source < sorted[j].Source
	})

	// Pass 1: one survivor per non-empty DOI. Records without a DOI are
	// never excluded here.
	seenDOI := make(map[string]bool)
	var pass1 []types.Record
	for _, r := range sorted {
		if r.DOI != "" {
			if seenDOI[r.DOI] {
				continue
			}
			seenDOI[r.DOI] = true
		}
		pass1 = append(pass1, r)
	}

	// Pass 2: one survivor per (title, year). A record without a year only
	// collapses with a literally identical record; an unknown year must
	// not merge differently-dated papers.
	seenTitle := make(map[string]bool)
	var pass2 []types.Record
	for _, r := range pass1 {
		key := titleYearKey(r)
		if seenTitle[key] {
			continue
		}
		seenTitle[key] = true
		pass2 = append(pass2, r)
	}
	return pass2
}

func titleYearKey(r types.Record) string {
	title := strings.TrimSpace(strings.ToLower(r.Title))
	if r.Year != 0 {
		return title + "\x00" + strconv.Itoa(r.Year)
	}
	// Year unknown: fall back to the full record as identity.
	fp, _ := json.Marshal(r)
	return "fp\x00" + string(fp)
}

// corpusColumns is the CSV column order for corpus snapshots.
var corpusColumns = []string{
	"title", "author", "year", "venue", "doi", "source", "domain",
	"abstract", "publisher", "language", "type", "url", "cited_by",
}

// WriteSnapshots publishes the corpus as JSON and CSV under processedDir.
// Both files are written atomically so a failed run never leaves a partial
// corpus behind.
func WriteSnapshots(res *Result, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "merged_corpus.json"), res.Corpus); err != nil {
		return err
	}

	rows := make([][]string, 0, len(res.Corpus))
	for _, r := range res.Corpus {
		year := ""
		if r.Year != 0 {
			year = strconv.Itoa(r.Year)
		}
		rows = append(rows, []string{
			r.Title, r.Author, year, r.Venue, r.DOI, string(r.Source),
			r.Domain, r.Abstract, r.Publisher, r.Language, r.Type, r.URL,
			strconv.Itoa(r.CitedBy),
		})
	}
	return artifact.WriteCSV(filepath.Join(processedDir, "merged_corpus.csv"), corpusColumns, rows)
}
