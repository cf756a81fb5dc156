package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/llm"
	"redline/internal/logging"
	"redline/internal/port"
	"redline/internal/proofread"
	"redline/internal/report"

	_ "redline/internal/llm/claude"
	_ "redline/internal/llm/gemini"
	_ "redline/internal/llm/openai"
)

var analyzeStructure bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Proofread a PDF or DOCX document",
	Long: `Analyze proofreads the given document and writes artifacts next to it:
the findings report (docx and xlsx) and, for DOCX inputs, the revised and
highlighted documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeStructure, "structure", false, "also run the coherence/structure analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := svc.Analyze(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeStructure {
		notes, err := svc.AnalyzeStructure(cmd.Context(), result.Units)
		if err != nil {
			return fmt.Errorf("structure analysis failed: %w", err)
		}
		result.StructuralNotes = notes
	}

	printSummary(cmd, result)

	dir := filepath.Dir(path)
	if err := writeArtifact(dir, result.FileName, "report", "docx", func() ([]byte, error) {
		return report.ErrorTableDocx(result)
	}); err != nil {
		return err
	}
	if err := writeArtifact(dir, result.FileName, "findings", "xlsx", func() ([]byte, error) {
		return report.FindingsXlsx(result.Findings)
	}); err != nil {
		return err
	}
	if analyzeStructure {
		if err := writeArtifact(dir, result.FileName, "structure", "xlsx", func() ([]byte, error) {
			return report.StructureXlsx(result.StructuralNotes)
		}); err != nil {
			return err
		}
	}

	if result.FileType == domain.FileTypeDOCX {
		if err := writeArtifact(dir, result.FileName, "revised", "docx", func() ([]byte, error) {
			return report.RevisedDocx(result)
		}); err != nil {
			return err
		}
		if err := writeArtifact(dir, result.FileName, "highlighted", "docx", func() ([]byte, error) {
			return report.HighlightedDocx(result)
		}); err != nil {
			return err
		}
	} else {
		cmd.Println("source is not docx; revised and highlighted documents skipped")
	}

	return nil
}

func printSummary(cmd *cobra.Command, result *domain.AnalysisResult) {
	cmd.Printf("analysis %s: %d unit(s), %d finding(s), %d clean unit(s)\n",
		result.ID, len(result.UnitReports), len(result.Findings), result.CleanUnits())
	for _, f := range result.Findings {
		cmd.Printf("  unit %d: %q -> %q\n", f.UnitIndex, f.Wrong, f.Correct)
	}
	for _, n := range result.StructuralNotes {
		cmd.Printf("  structure [%s]: %s (%s)\n", n.Section, n.Issue, n.Suggestion)
	}
}

func writeArtifact(dir, sourceName, suffix, ext string, build func() ([]byte, error)) error {
	data, err := build()
	if err != nil {
		return fmt.Errorf("building %s artifact: %w", suffix, err)
	}
	name := report.BuildFilename(sourceName, suffix, ext)
	out := filepath.Join(dir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Println("wrote", out)
	return nil
}

// buildService loads config and wires the provider chain, mirroring the
// server wiring.
func buildService() (*proofread.Service, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}

	completer, err := buildCompleter(&cfg.LLM, logger)
	if err != nil {
		return nil, nil, err
	}
	return proofread.NewService(completer, logger), logger, nil
}

func buildCompleter(cfg *config.LLMConfig, logger *zap.Logger) (port.Completer, error) {
	primary, err := llm.NewCompleter(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	completers := []port.Completer{primary}
	names := []string{cfg.Primary.Provider}
	for _, pc := range []*config.LLMProviderConfig{cfg.SecondaryConfig(), cfg.TertiaryConfig()} {
		if pc == nil {
			continue
		}
		c, err := llm.NewCompleter(pc)
		if err != nil {
			return nil, err
		}
		completers = append(completers, c)
		names = append(names, pc.Provider)
	}

	if len(completers) == 1 {
		return primary, nil
	}
	return llm.NewFallback(completers, names, logger), nil
}
