package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stancelab/internal/dataset"
	"stancelab/internal/stats"
)

var (
	compareFileA string
	compareFileB string
)

// compareCmd computes accuracy and agreement metrics from processed files.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compute accuracy, F1, and cross-model agreement from processed spreadsheets",
	Long: `Reads one or two processed spreadsheets and prints overall accuracy,
per-label precision/recall/F1, macro F1, and the confusion matrix for each.
With two files it also prints the agreement rate over jointly-present texts
and up to 10 example disagreements.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareFileA, "a", "", "first processed spreadsheet (required)")
	compareCmd.Flags().StringVar(&compareFileB, "b", "", "second processed spreadsheet (optional)")
	_ = compareCmd.MarkFlagRequired("a")
}

func runCompare(cmd *cobra.Command, args []string) error {
	resultsA, err := dataset.LoadProcessed(compareFileA)
	if err != nil {
		return err
	}
	nameA := reportName(compareFileA)

	stats.RenderStatistics(os.Stdout, nameA, stats.Compute(resultsA))

	if compareFileB == "" {
		return nil
	}

	resultsB, err := dataset.LoadProcessed(compareFileB)
	if err != nil {
		return err
	}
	nameB := reportName(compareFileB)

	fmt.Println()
	stats.RenderStatistics(os.Stdout, nameB, stats.Compute(resultsB))

	fmt.Println()
	stats.RenderComparison(os.Stdout, nameA, nameB, stats.CompareModels(resultsA, resultsB))
	return nil
}

// reportName shortens a path to its base without extension for headings.
func reportName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
