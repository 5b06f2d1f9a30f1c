// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/classify"
	"github.com/pdiddy/privacy-scan/internal/regmatch"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Join features against regulation clauses and validate each pair",
	Long: `Match joins the classified features against the tagged regulation clauses
on attribute class, aggregating the clause references and passages each
feature-regulation pair collects. Pairs outside the regulation allow-list
are dropped. The oracle then issues a per-pair verdict: a regulation status,
a confidence level, and a short rationale.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")
	matchCmd.Flags().StringSlice("regulations", nil, "regulation ID allow-list (default: the curated high-priority set)")
	registerOracleFlags(matchCmd)

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	regulations, _ := cmd.Flags().GetStringSlice("regulations")

	cfg := types.MatchConfig{
		OracleConfig: oracleConfigFromFlags(cmd),
		ProcessedDir: processedDir,
		Regulations:  regulations,
	}

	feats, err := classify.LoadFeatures(filepath.Join(processedDir, "attribute_classes.json"))
	if err != nil {
		return err
	}
	clauses, err := regmatch.LoadClauses(filepath.Join(processedDir, "reg_sections_clauses.json"))
	if err != nil {
		return err
	}

	pairs := regmatch.Match(feats, clauses, cfg.Regulations)
	if len(pairs) == 0 {
		return fmt.Errorf("no feature-regulation pairs matched")
	}
	fmt.Printf("matched %d feature-regulation pairs; validating\n", len(pairs))

	v := &regmatch.Validator{Backend: newOracleBackend(cfg.OracleConfig), Cfg: cfg, W: os.Stdout}
	validated, err := v.Validate(context.Background(), pairs)
	if err != nil {
		return err
	}

	return regmatch.WriteValidatedSnapshots(validated, processedDir)
}
