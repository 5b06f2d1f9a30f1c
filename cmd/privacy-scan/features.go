// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/classify"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Extract and validate model features from abstracts",
	Long: `Features runs the extraction oracle over every domain-validated paper,
collecting the model input features the abstract names together with their
supporting evidence, then runs the validation oracle over each extracted
set. Papers whose features fail validation stay in the snapshot with the
Not valid label.`,
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")
	registerOracleFlags(featuresCmd)

	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")

	cfg := types.ClassifyConfig{
		OracleConfig: oracleConfigFromFlags(cmd),
		ProcessedDir: processedDir,
	}

	papers, err := classify.LoadPapers(filepath.Join(processedDir, "merged_domain_validated.json"))
	if err != nil {
		return err
	}

	c := &classify.Classifier{Backend: newOracleBackend(cfg.OracleConfig), Cfg: cfg, W: os.Stdout}
	ctx := context.Background()

	if err := c.ExtractFeatures(ctx, papers); err != nil {
		return err
	}
	if err := c.ValidateFeatures(ctx, papers); err != nil {
		return err
	}

	return classify.WriteFeatureSnapshots(papers, processedDir)
}
