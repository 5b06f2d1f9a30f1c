// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/privacy-scan/internal/httputil"
	"github.com/pdiddy/privacy-scan/internal/merge"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// openAlexBase is the OpenAlex Works endpoint. Declared as a var so tests
// can substitute an httptest server.
var openAlexBase = "https://api.openalex.org/works"

// openAlexPageSize is the API's per-page ceiling.
const openAlexPageSize = 200

// OpenAlexBackend harvests raw records from the OpenAlex API using
// cursor pagination. Inverted-index abstracts are resolved to plain text
// at harvest time so downstream stages see a uniform "abstract" field.
type OpenAlexBackend struct {
	Client *http.Client
	Cfg    types.HarvestConfig
}

// Name returns the backend identifier used as the batch filename prefix.
func (b *OpenAlexBackend) Name() string { return "openalex" }

// DedupKey identifies a raw OpenAlex record for cross-query dedup.
func (b *OpenAlexBackend) DedupKey(rec map[string]any) string {
	id, _ := rec["id"].(string)
	return id
}

// openAlexPage is one cursor page of works.
type openAlexPage struct {
	Results []map[string]any `json:"results"`
	Meta    struct {
		NextCursor string `json:"next_cursor"`
	} `json:"meta"`
}

// Harvest collects up to max raw records for one query.
func (b *OpenAlexBackend) Harvest(ctx context.Context, query string, max int) ([]map[string]any, error) {
	var items []map[string]any
	cursor := "*"

	for len(items) < max && cursor != "" {
		perPage := max - len(items)
		if perPage > openAlexPageSize {
			perPage = openAlexPageSize
		}

		params := url.Values{
			"search":   {query},
			"per_page": {strconv.Itoa(perPage)},
			"cursor":   {cursor},
			"filter":   {"has_abstract:true"},
		}
		if b.Cfg.Mailto != "" {
			params.Set("mailto", b.Cfg.Mailto)
		}

		page, err := b.fetch(ctx, openAlexBase+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		if len(page.Results) == 0 {
			break
		}
		items = append(items, page.Results...)
		cursor = page.Meta.NextCursor

		if err := pause(ctx, b.Cfg.PageDelay); err != nil {
			return nil, err
		}
	}

	if len(items) > max {
		items = items[:max]
	}
	for _, rec := range items {
		if inv, ok := rec["abstract_inverted_index"]; ok {
			rec["abstract"] = merge.ReconstructAbstractJSON(inv)
			delete(rec, "abstract_inverted_index")
		}
	}
	return items, nil
}

func (b *OpenAlexBackend) fetch(ctx context.Context, reqURL string) (*openAlexPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var page openAlexPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return &page, nil
}
