// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

// QueryOptions holds parameters for corpus queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title and abstract.
	Query string

	// Source, Domain, and Year filter on exact values; zero values mean
	// no filter.
	Source string
	Domain string
	Year   int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Source == "" && q.Domain == "" && q.Year == 0
}

// Retrieve queries the corpus index with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries come back in source then title order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.title, r.author, r.year, r.venue, r.doi, r.source, r.domain,
				r.abstract, r.publisher, r.language, r.type, r.url, r.cited_by
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.title, r.author, r.year, r.venue, r.doi, r.source, r.domain,
				r.abstract, r.publisher, r.language, r.type, r.url, r.cited_by
			FROM records r
			WHERE 1=1`)
	}

	if opts.Source != "" {
		qb.WriteString(` AND r.source = ?`)
		args = append(args, opts.Source)
	}
	if opts.Domain != "" {
		qb.WriteString(` AND r.domain = ?`)
		args = append(args, opts.Domain)
	}
	if opts.Year != 0 {
		qb.WriteString(` AND r.year = ?`)
		args = append(args, opts.Year)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.source, r.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus index: %w", err)
	}
	defer rows.Close()

	var results []types.Record
	for rows.Next() {
		var (
			r      types.Record
			year   sql.NullInt64
			source string
		)
		if err := rows.Scan(
			&r.Title, &r.Author, &year, &r.Venue, &r.DOI, &source, &r.Domain,
			&r.Abstract, &r.Publisher, &r.Language, &r.Type, &r.URL, &r.CitedBy,
		); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if year.Valid {
			r.Year = int(year.Int64)
		}
		r.Source = types.Source(source)
		results = append(results, r)
	}
	return results, rows.Err()
}
