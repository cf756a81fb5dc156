package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"redline/internal/compare"
	"redline/internal/config"
	"redline/internal/logging"
	"redline/internal/report"
)

var (
	compareScore bool
	compareXlsx  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <original> <revised>",
	Short: "Compare two documents paragraph by paragraph",
	Long: `Compare aligns the original and revised documents and prints one record
per changed paragraph pair with its word-level changes. With --score, each
pair also gets an LLM confidence score for meaning preservation.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareScore, "score", false, "score each changed pair with the LLM")
	compareCmd.Flags().BoolVar(&compareXlsx, "xlsx", false, "write the comparison as xlsx next to the original")
}

func runCompare(cmd *cobra.Command, args []string) error {
	originalPath, revisedPath := args[0], args[1]
	originalData, err := os.ReadFile(originalPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", originalPath, err)
	}
	revisedData, err := os.ReadFile(revisedPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", revisedPath, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var scorer *compare.Scorer
	if compareScore {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		completer, err := buildCompleter(&cfg.LLM, logger)
		if err != nil {
			return err
		}
		scorer = compare.NewScorer(completer, logger)
	}

	svc := compare.NewService(scorer, logger)
	records, err := svc.Compare(cmd.Context(),
		filepath.Base(originalPath), originalData,
		filepath.Base(revisedPath), revisedData,
	)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("no changed paragraphs")
		return nil
	}
	for i, r := range records {
		cmd.Printf("%d. original: %s\n   revised:  %s\n", i+1, r.Original, r.Revised)
		for _, c := range r.WordChanges {
			cmd.Printf("   change: %s\n", c)
		}
		cmd.Printf("   confidence: %s\n", r.Confidence)
	}

	if compareXlsx {
		return writeArtifact(filepath.Dir(originalPath), filepath.Base(originalPath), "comparison", "xlsx", func() ([]byte, error) {
			return report.DiffXlsx(records)
		})
	}
	return nil
}
