// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/regulation"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

var clausesCmd = &cobra.Command{
	Use:   "clauses",
	Short: "Segment regulation PDFs and tag regulated clauses",
	Long: `Clauses extracts the text of every regulation PDF in the legal-texts
directory, segments it at legal-citation headings (articles, sections,
lettered clauses), and asks the oracle which segments regulate personal
attributes and which attribute classes they cover. Every oracle exchange is
appended to a JSONL audit log next to the snapshots.`,
	RunE: runClauses,
}

func init() {
	clausesCmd.Flags().String("pdf-dir", "data/legal_texts", "directory of authoritative regulation PDFs")
	clausesCmd.Flags().String("processed-dir", defaultProcessedDir, "output directory for clause snapshots")
	clausesCmd.Flags().Int("max-snippet", regulation.DefaultMaxSnippet, "per-passage character budget")
	registerOracleFlags(clausesCmd)

	rootCmd.AddCommand(clausesCmd)
}

func runClauses(cmd *cobra.Command, args []string) error {
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	maxSnippet, _ := cmd.Flags().GetInt("max-snippet")

	cfg := types.SegmentConfig{
		OracleConfig: oracleConfigFromFlags(cmd),
		PDFDir:       pdfDir,
		ProcessedDir: processedDir,
		MaxSnippet:   maxSnippet,
	}

	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return fmt.Errorf("creating processed directory: %w", err)
	}
	audit, err := os.Create(filepath.Join(processedDir, "reg_sections_audit.jsonl"))
	if err != nil {
		return fmt.Errorf("creating audit log: %w", err)
	}
	defer audit.Close()

	backend := newOracleBackend(cfg.OracleConfig)
	res, err := regulation.Extract(context.Background(), backend, cfg, os.Stdout, audit)
	if err != nil {
		return err
	}

	if err := regulation.WriteSnapshots(res, processedDir); err != nil {
		return err
	}

	fmt.Printf("tagged %d regulated clauses (%d oracle calls)\n", len(res.Clauses), res.Calls)
	return nil
}
