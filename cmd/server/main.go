package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"redline/internal/compare"
	"redline/internal/config"
	"redline/internal/handler"
	"redline/internal/llm"
	"redline/internal/logging"
	"redline/internal/port"
	"redline/internal/proofread"
	"redline/internal/router"
	"redline/internal/session"

	// Completion providers register themselves on import.
	_ "redline/internal/llm/claude"
	_ "redline/internal/llm/gemini"
	_ "redline/internal/llm/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	completer, err := buildCompleter(&cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize llm providers: %w", err)
	}

	store := session.NewMemoryStore()

	// Initialize services
	proofreadSvc := proofread.NewService(completer, logger)
	var scorer *compare.Scorer
	if cfg.Confidence.Enabled {
		scorer = compare.NewScorer(completer, logger)
	}
	compareSvc := compare.NewService(scorer, logger)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(proofreadSvc, store, logger, cfg.Upload.MaxFileSizeMB)
	compareH := handler.NewCompareHandler(compareSvc, logger)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(analysisH, compareH, healthH, logger, cfg.CORS.AllowedOrigins)

	logger.Info("server starting", zap.String("addr", cfg.Server.Port))
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildCompleter wires the primary provider plus optional secondary and
// tertiary fallbacks behind the circuit-aware Fallback.
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
