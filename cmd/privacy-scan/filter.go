package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/regmatch"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Keep only high-confidence regulated pairs",
	Long: `Filter reads the validated feature-regulation pairs and keeps those the
oracle marked Regulated with High confidence. The filtered set is the
pipeline's final deliverable.`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().String("processed-dir", defaultProcessedDir, "directory of corpus snapshots")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")

	pairs, err := regmatch.LoadValidated(filepath.Join(processedDir, "validated_feature_regulation.json"))
	if err != nil {
		return err
	}

	kept := regmatch.FilterRegulated(pairs)
	if err := regmatch.WriteFilteredSnapshot(kept, processedDir); err != nil {
		return err
	}

	fmt.Printf("kept %d of %d pairs (Regulated, High confidence)\n", len(kept), len(pairs))
	return nil
}
