package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge raw batches into a deduplicated corpus",
	Long: `Merge normalizes every raw batch file into the common record schema and
deduplicates the combined corpus in two passes: first by normalized DOI,
then by lowercased title and year. The merged corpus is written to the
processed directory as JSON and CSV snapshots.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("raw-dir", defaultRawDir, "directory of raw record batches")
	mergeCmd.Flags().String("processed-dir", defaultProcessedDir, "output directory for corpus snapshots")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	rawDir, _ := cmd.Flags().GetString("raw-dir")
	processedDir, _ := cmd.Flags().GetString("processed-dir")

	res, err := merge.Merge(rawDir, os.Stdout)
	if err != nil {
		return err
	}
	if err := merge.WriteSnapshots(res, processedDir); err != nil {
		return err
	}

	fmt.Printf("wrote %d corpus rows to %s\n", len(res.Corpus), processedDir)
	return nil
}
