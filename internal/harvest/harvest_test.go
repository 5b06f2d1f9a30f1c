// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

func TestCrossrefHarvestPaginates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if q.Get("filter") != "has-abstract:true" {
			t.Errorf("filter = %q", q.Get("filter"))
		}
		if q.Get("mailto") != "research@example.org" {
			t.Errorf("mailto = %q", q.Get("mailto"))
		}
		switch q.Get("cursor") {
		case "*":
			fmt.Fprint(w, `{"message": {"items": [{"DOI": "10.1/a", "title": ["A"]}], "next-cursor": "c2"}}`)
		case "c2":
			fmt.Fprint(w, `{"message": {"items": [{"DOI": "10.1/b", "title": ["B"]}], "next-cursor": ""}}`)
		default:
			t.Errorf("unexpected cursor %q", q.Get("cursor"))
		}
	}))
	defer srv.Close()

	oldBase := crossrefBase
	crossrefBase = srv.URL
	defer func() { crossrefBase = oldBase }()

	b := &CrossrefBackend{Client: srv.Client(), Cfg: types.HarvestConfig{Mailto: "research@example.org"}}
	items, err := b.Harvest(context.Background(), "decision trees", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || calls != 2 {
		t.Fatalf("items = %d calls = %d, want 2/2", len(items), calls)
	}
	if b.DedupKey(items[0]) != "10.1/a" {
		t.Errorf("dedup key = %q", b.DedupKey(items[0]))
	}
}

func TestCrossrefHarvestStopsAtBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"items": [{"DOI": "10.1/a"}], "next-cursor": "more"}}`)
	}))
	defer srv.Close()

	oldBase := crossrefBase
	crossrefBase = srv.URL
	defer func() { crossrefBase = oldBase }()

	b := &CrossrefBackend{Client: srv.Client()}
	items, err := b.Harvest(context.Background(), "q", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1: cursor still had more", len(items))
	}
}

func TestOpenAlexHarvestResolvesAbstracts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"results": [{"id": "W1", "abstract_inverted_index": {"Decision": [0], "trees": [1]}}],
			"meta": {"next_cursor": ""}
		}`)
	}))
	defer srv.Close()

	oldBase := openAlexBase
	openAlexBase = srv.URL
	defer func() { openAlexBase = oldBase }()

	b := &OpenAlexBackend{Client: srv.Client()}
	items, err := b.Harvest(context.Background(), "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0]["abstract"] != "Decision trees" {
		t.Errorf("abstract = %v", items[0]["abstract"])
	}
	if _, ok := items[0]["abstract_inverted_index"]; ok {
		t.Error("inverted index not removed")
	}
}

func TestOpenAlexHarvestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	oldBase := openAlexBase
	openAlexBase = srv.URL
	defer func() { openAlexBase = oldBase }()

	b := &OpenAlexBackend{Client: srv.Client()}
	if _, err := b.Harvest(context.Background(), "q", 10); err == nil {
		t.Fatal("want error on HTTP 403")
	}
}

// --- query file ---

func TestLoadQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.yaml")
	contents := `
banking_finance:
  query: "decision tree credit scoring"
  max_records: 100
healthcare_pharma:
  crossref_queries: ["decision tree diagnosis"]
  openalex_queries: ["clinical decision tree", "diagnosis tree"]
  max_records: 50
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	qf, err := LoadQueries(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := qf["banking_finance"].For("crossref"); len(got) != 1 || got[0] != "decision tree credit scoring" {
		t.Errorf("shared query fallback = %v", got)
	}
	if got := qf["healthcare_pharma"].For("openalex"); len(got) != 2 {
		t.Errorf("source-specific queries = %v", got)
	}
	if got := qf.Domains(); got[0] != "banking_finance" || got[1] != "healthcare_pharma" {
		t.Errorf("domains = %v, want sorted", got)
	}
}

func TestLoadQueriesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadQueries(path); err == nil {
		t.Fatal("want error for empty query file")
	}
}

// --- driver ---

type fakeBackend struct {
	name    string
	batches map[string][]map[string]any
	err     error
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Harvest(ctx context.Context, query string, max int) ([]map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := f.batches[query]
	if len(items) > max {
		items = items[:max]
	}
	return items, nil
}

func (f *fakeBackend) DedupKey(rec map[string]any) string {
	key, _ := rec["id"].(string)
	return key
}

func TestRunWritesBatchesAndDedups(t *testing.T) {
	rawDir := t.TempDir()
	backend := &fakeBackend{
		name: "crossref",
		batches: map[string][]map[string]any{
			"q1": {{"id": "a"}, {"id": "b"}},
			"q2": {{"id": "b"}, {"id": "c"}},
		},
	}
	queries := QueryFile{
		"finance": {CrossrefQueries: []string{"q1", "q2"}, MaxRecords: 10},
	}

	var buf bytes.Buffer
	results, err := Run(context.Background(), []Backend{backend}, queries, types.HarvestConfig{RawDir: rawDir}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 || results[0].Records != 3 {
		t.Fatalf("results = %+v, want one batch of 3 deduped records", results)
	}
	if _, err := os.Stat(filepath.Join(rawDir, "crossref_finance.json")); err != nil {
		t.Errorf("missing batch file: %v", err)
	}
}

func TestRunFailedQueryIsWarning(t *testing.T) {
	rawDir := t.TempDir()
	ok := &fakeBackend{
		name:    "openalex",
		batches: map[string][]map[string]any{"q": {{"id": "a"}}},
	}
	broken := &fakeBackend{name: "crossref", err: errors.New("api down")}
	queries := QueryFile{"finance": {Query: "q", MaxRecords: 5}}

	var buf bytes.Buffer
	results, err := Run(context.Background(), []Backend{broken, ok}, queries, types.HarvestConfig{RawDir: rawDir}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Source != "openalex" {
		t.Fatalf("results = %+v, want only the healthy backend", results)
	}
}

func TestRunErrorsWhenNothingHarvested(t *testing.T) {
	broken := &fakeBackend{name: "crossref", err: errors.New("api down")}
	queries := QueryFile{"finance": {Query: "q", MaxRecords: 5}}

	var buf bytes.Buffer
	if _, err := Run(context.Background(), []Backend{broken}, queries, types.HarvestConfig{RawDir: t.TempDir()}, &buf); err == nil {
		t.Fatal("want error when no backend produced records")
	}
}
