// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// Backend harvests raw records from one bibliographic source. The two
// implementations follow the Strategy pattern used across the pipeline's
// external adapters.
type Backend interface {
	// Name is the source identifier and the batch filename prefix.
	Name() string

	// Harvest collects up to max raw records for one query.
	Harvest(ctx context.Context, query string, max int) ([]map[string]any, error)

	// DedupKey identifies a record for cross-query dedup within a domain.
	// Records with an empty key are always kept.
	DedupKey(rec map[string]any) string
}

// Result summarizes one written batch file.
type Result struct {
	Source  string
	Domain  string
	Records int
	Path    string
}

// Run harvests every (source, domain) combination and writes each batch
// to rawDir/{prefix}_{domain}.json. Within a domain, records collected
// by later queries are dropped when an earlier query already produced
// the same record. A failing query is a warning, not a run failure; the
// run errors only when nothing at all was harvested.
func Run(ctx context.Context, backends []Backend, queries QueryFile, cfg types.HarvestConfig, w io.Writer) ([]Result, error) {
	var results []Result
	for _, domain := range queries.Domains() {
		dq := queries[domain]
		if dq.MaxRecords <= 0 {
			fmt.Fprintf(w, "warning: %s: no record budget; skipping\n", domain)
			continue
		}

		for _, b := range backends {
			recs, err := harvestDomain(ctx, b, domain, dq, w)
			if err != nil {
				return nil, err
			}
			if len(recs) == 0 {
				fmt.Fprintf(w, "warning: %s: no %s data collected\n", domain, b.Name())
				continue
			}

			path := filepath.Join(cfg.RawDir, fmt.Sprintf("%s_%s.json", b.Name(), domain))
			if err := artifact.WriteJSON(path, recs); err != nil {
				return nil, err
			}
			fmt.Fprintf(w, "%s: wrote %d %s records\n", domain, len(recs), b.Name())
			results = append(results, Result{Source: b.Name(), Domain: domain, Records: len(recs), Path: path})
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no records harvested for any domain")
	}
	return results, nil
}

// harvestDomain runs one backend's queries for a domain, deduplicating
// across queries and truncating to the domain budget.
func harvestDomain(ctx context.Context, b Backend, domain string, dq DomainQueries, w io.Writer) ([]map[string]any, error) {
	seen := make(map[string]bool)
	var collected []map[string]any

	for _, query := range dq.For(b.Name()) {
		remaining := dq.MaxRecords - len(collected)
		if remaining <= 0 {
			break
		}
		fmt.Fprintf(w, "%s: running %s query %q\n", domain, b.Name(), query)

		items, err := b.Harvest(ctx, query, remaining)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(w, "warning: %s: %s query failed: %v\n", domain, b.Name(), err)
			continue
		}

		for _, rec := range items {
			if key := b.DedupKey(rec); key != "" {
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			collected = append(collected, rec)
		}
	}

	if len(collected) > dq.MaxRecords {
		collected = collected[:dq.MaxRecords]
	}
	return collected, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
