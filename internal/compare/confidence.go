package compare

import (
	"context"

	"go.uber.org/zap"

	"redline/internal/domain"
	"redline/internal/port"
	"redline/internal/proofread"
)

// Scorer asks the LLM how confident it is that a revision preserves the
// original paragraph's meaning.
type Scorer struct {
	completer port.Completer
	logger    *zap.Logger
}

func NewScorer(completer port.Completer, logger *zap.Logger) *Scorer {
	return &Scorer{completer: completer, logger: logger}
}

// Score returns "0".."100" or domain.ConfidenceNotAvailable. Identical
// strings short-circuit to "100" without an LLM call. A failed call degrades
// to "not available" rather than failing the comparison.
func (s *Scorer) Score(ctx context.Context, original, revised string) string {
	if original == revised {
		return "100"
	}

	reply, err := s.completer.Complete(ctx, proofread.BuildConfidencePrompt(original, revised))
	if err != nil {
		s.logger.Warn("confidence scoring failed", zap.Error(err))
		return domain.ConfidenceNotAvailable
	}
	return proofread.ParseConfidence(reply)
}
