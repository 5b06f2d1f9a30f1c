// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/classify"
	"github.com/pdiddy/privacy-scan/internal/feature"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var attributeCmd = &cobra.Command{
	Use:   "attribute",
	Short: "Assign privacy attribute classes to validated features",
	Long: `Attribute explodes the validated feature lists into one sanitized row per
feature and asks the oracle to place each feature into one of the thirteen
privacy attribute classes. The synonym vocabulary supplies a hint for
features it recognizes; the oracle's verdict always decides.`,
	RunE: runAttribute,
}

func init() {
	attributeCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")
	attributeCmd.Flags().String("vocab", "", "YAML file overriding the built-in synonym vocabulary")
	registerOracleFlags(attributeCmd)

	rootCmd.AddCommand(attributeCmd)
}

func runAttribute(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	vocabFile, _ := cmd.Flags().GetString("vocab")

	cfg := types.ClassifyConfig{
		OracleConfig: oracleConfigFromFlags(cmd),
		ProcessedDir: processedDir,
		VocabFile:    vocabFile,
	}

	papers, err := classify.LoadPapers(filepath.Join(processedDir, "validated_features.json"))
	if err != nil {
		return err
	}

	feats := classify.ExpandFeatures(papers)
	if len(feats) == 0 {
		return fmt.Errorf("no validated features to classify in %s", processedDir)
	}
	fmt.Printf("classifying %d features from %d papers\n", len(feats), len(papers))

	vocab := feature.DefaultVocabulary()
	if cfg.VocabFile != "" {
		vocab, err = feature.LoadVocabulary(cfg.VocabFile)
		if err != nil {
			return err
		}
	}

	c := &classify.Classifier{Backend: newOracleBackend(cfg.OracleConfig), Cfg: cfg, W: os.Stdout}
	if err := c.AssignClasses(context.Background(), feats, vocab); err != nil {
		return err
	}

	return classify.WriteAttributeSnapshots(feats, processedDir)
}
