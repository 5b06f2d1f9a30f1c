// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/classify"
	"github.com/pdiddy/privacy-scan/internal/harvest"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify corpus papers for relevance and domain",
	Long: `Classify runs the two corpus-level oracle gates. The relevance gate labels
every merged paper as related to decision-tree models or not; the domain gate
assigns each relevant paper an application domain from the configured
vocabulary. Papers outside both gates stay in the relevance snapshot but are
dropped from the domain-validated set downstream stages consume.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")
	classifyCmd.Flags().StringSlice("domains", nil, "domain label vocabulary (default: derived from the queries file)")
	classifyCmd.Flags().String("queries", "config/queries.yaml", "queries file used to derive the domain vocabulary")
	registerOracleFlags(classifyCmd)

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	domains, _ := cmd.Flags().GetStringSlice("domains")
	queriesFile, _ := cmd.Flags().GetString("queries")

	if len(domains) == 0 {
		// The harvest queries file already names the domains the corpus was
		// collected for; reuse it when present.
		if qf, err := harvest.LoadQueries(queriesFile); err == nil {
			domains = append(qf.Domains(), classify.DomainNone)
		}
	}

	cfg := types.ClassifyConfig{
		OracleConfig: oracleConfigFromFlags(cmd),
		ProcessedDir: processedDir,
		Domains:      domains,
	}

	papers, err := classify.LoadCorpus(filepath.Join(processedDir, "merged_corpus.json"))
	if err != nil {
		return err
	}

	c := &classify.Classifier{Backend: newOracleBackend(cfg.OracleConfig), Cfg: cfg, W: os.Stdout}
	ctx := context.Background()

	if err := c.Relevance(ctx, papers); err != nil {
		return err
	}
	if err := classify.WriteRelevanceSnapshot(papers, processedDir); err != nil {
		return err
	}

	relevant := classify.FilterRelevant(papers)
	fmt.Printf("%d of %d papers passed the relevance gate\n", len(relevant), len(papers))

	if err := c.Domain(ctx, relevant); err != nil {
		return err
	}
	if err := classify.WriteDomainSnapshots(relevant, processedDir); err != nil {
		return err
	}

	fmt.Printf("wrote domain-validated set to %s\n", processedDir)
	return nil
}
