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
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// crossrefBase is the Crossref Works endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefBase = "https://api.crossref.org/works"

// crossrefPageSize is the rows-per-request budget Crossref recommends for
// cursor pagination.
const crossrefPageSize = 100

// CrossrefBackend harvests raw records from the Crossref API using
// cursor ("deep") pagination, restricted to works with abstracts.
type CrossrefBackend struct {
	Client *http.Client
	Cfg    types.HarvestConfig
}

// Name returns the backend identifier used as the batch filename prefix.
func (b *CrossrefBackend) Name() string { return "crossref" }

// DedupKey identifies a raw Crossref record for cross-query dedup.
func (b *CrossrefBackend) DedupKey(rec map[string]any) string {
	doi, _ := rec["DOI"].(string)
	return doi
}

// crossrefResponse is the envelope Crossref wraps every works list in.
type crossrefResponse struct {
	Message struct {
		Items      []map[string]any `json:"items"`
		NextCursor string           `json:"next-cursor"`
	} `json:"message"`
}

// Harvest collects up to max raw records for one query. Pagination stops
// when the cursor runs out, the budget is met, or the context ends.
func (b *CrossrefBackend) Harvest(ctx context.Context, query string, max int) ([]map[string]any, error) {
	var items []map[string]any
	cursor := "*"

	for len(items) < max && cursor != "" {
		rows := max - len(items)
		if rows > crossrefPageSize {
			rows = crossrefPageSize
		}

		params := url.Values{
			"query":  {query},
			"rows":   {strconv.Itoa(rows)},
			"cursor": {cursor},
			"filter": {"has-abstract:true"},
		}
		if b.Cfg.Mailto != "" {
			params.Set("mailto", b.Cfg.Mailto)
		}

		page, err := b.fetch(ctx, crossrefBase+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		if len(page.Message.Items) == 0 {
			break
		}
		items = append(items, page.Message.Items...)
		cursor = page.Message.NextCursor

		if err := pause(ctx, b.Cfg.PageDelay); err != nil {
			return nil, err
		}
	}

	if len(items) > max {
		items = items[:max]
	}
	return items, nil
}

func (b *CrossrefBackend) fetch(ctx context.Context, reqURL string) (*crossrefResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var page crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}
	return &page, nil
}
