// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/harvest"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

const (
	defaultHarvestTimeout = 60 * time.Second
	defaultPageDelay      = 300 * time.Millisecond
	defaultUserAgent      = "privacy-scan/0.1"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest raw records from Crossref and OpenAlex",
	Long: `Harvest runs the per-domain queries from the queries file against the
Crossref and OpenAlex APIs and writes one raw batch file per (source, domain)
combination to the raw directory. Both sources are restricted to works with
abstracts; records are deduplicated across queries within a domain.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("queries", "config/queries.yaml", "YAML file mapping domains to search queries")
	harvestCmd.Flags().String("raw-dir", defaultRawDir, "output directory for raw record batches")
	harvestCmd.Flags().String("mailto", "", "contact email for the polite pools (default: .secrets/contact-email)")
	harvestCmd.Flags().Duration("timeout", defaultHarvestTimeout, "HTTP request timeout")
	harvestCmd.Flags().Duration("page-delay", defaultPageDelay, "pause between pagination requests")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	queriesFile, _ := cmd.Flags().GetString("queries")
	rawDir, _ := cmd.Flags().GetString("raw-dir")
	mailto, _ := cmd.Flags().GetString("mailto")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	pageDelay, _ := cmd.Flags().GetDuration("page-delay")

	cfg := types.HarvestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		QueriesFile: queriesFile,
		RawDir:      rawDir,
		Mailto:      secretDefault("contact-email", mailto),
		PageDelay:   pageDelay,
	}

	queries, err := harvest.LoadQueries(cfg.QueriesFile)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	backends := []harvest.Backend{
		&harvest.CrossrefBackend{Client: client, Cfg: cfg},
		&harvest.OpenAlexBackend{Client: client, Cfg: cfg},
	}

	_, err = harvest.Run(context.Background(), backends, queries, cfg, os.Stdout)
	return err
}
