// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/internal/corpus"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the corpus index (store, retrieve)",
	Long: `Corpus maintains a local SQLite index over the merged corpus with FTS5
full-text search across titles and abstracts. Use subcommands to index the
merged corpus or query it.`,
}

// --- store subcommand ---

var corpusStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Index the merged corpus into the SQLite database",
	Long: `Store reads the merged corpus snapshot and replaces the contents of the
SQLite index with it. The swap runs in one transaction, so a failed ingest
leaves the previous index intact.`,
	RunE: runCorpusStore,
}

func runCorpusStore(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")

	var records []types.Record
	if err := artifact.ReadJSON(filepath.Join(processedDir, "merged_corpus.json"), &records); err != nil {
		return err
	}

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Ingest(context.Background(), records)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d records\n", n)
	return nil
}

// --- retrieve subcommand ---

var corpusRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the corpus index with full-text search and filters",
	Long: `Retrieve searches the corpus index using FTS5 full-text search over titles
and abstracts, structured filters (source, domain, year), or a combination
of both. Full-text results are ranked by relevance.`,
	RunE: runCorpusRetrieve,
}

func runCorpusRetrieve(cmd *cobra.Command, args []string) error {
	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := corpusQueryOpts(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --source, --domain, or --year")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-9s  %-22s  %-6s  %s\n",
		"Rank", "Title", "Source", "Domain", "Year", "DOI")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		domain := r.Domain
		if len(domain) > 22 {
			domain = domain[:19] + "..."
		}
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-50s  %-9s  %-22s  %-6s  %s\n",
			i+1, title, r.Source, domain, year, r.DOI)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "data/index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CorpusConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func corpusQueryOpts(cmd *cobra.Command, args []string) corpus.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	source, _ := cmd.Flags().GetString("source")
	domain, _ := cmd.Flags().GetString("domain")
	year, _ := cmd.Flags().GetInt("year")
	limit, _ := cmd.Flags().GetInt("limit")

	return corpus.QueryOptions{
		Query:      queryText,
		Source:     source,
		Domain:     domain,
		Year:       year,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	corpusCmd.PersistentFlags().String("index-dir", "data/index", "directory holding the SQLite database")
	corpusCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store flags.
	corpusStoreCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")

	// Retrieve flags.
	corpusRetrieveCmd.Flags().String("query", "", "full-text search query")
	corpusRetrieveCmd.Flags().String("source", "", "filter by source: crossref or openalex")
	corpusRetrieveCmd.Flags().String("domain", "", "filter by application domain")
	corpusRetrieveCmd.Flags().Int("year", 0, "filter by publication year")
	corpusRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	corpusCmd.AddCommand(corpusStoreCmd)
	corpusCmd.AddCommand(corpusRetrieveCmd)

	rootCmd.AddCommand(corpusCmd)
}
