package compare

import (
	"context"

	"go.uber.org/zap"

	"redline/internal/domain"
	"redline/internal/extract"
)

// Service compares two uploaded documents paragraph by paragraph.
type Service struct {
	scorer *Scorer
	logger *zap.Logger
}

// NewService creates a comparison service. A nil scorer disables confidence
// scoring and every record carries domain.ConfidenceNotAvailable.
func NewService(scorer *Scorer, logger *zap.Logger) *Service {
	return &Service{scorer: scorer, logger: logger}
}

// Compare extracts both files, splits each into non-blank paragraphs, diffs
// them and scores each changed pair.
func (s *Service) Compare(ctx context.Context, originalName string, originalData []byte, revisedName string, revisedData []byte) ([]domain.DiffRecord, error) {
	originalUnits, err := extract.Extract(originalName, originalData)
	if err != nil {
		return nil, err
	}
	revisedUnits, err := extract.Extract(revisedName, revisedData)
	if err != nil {
		return nil, err
	}

	records := Diff(
		extract.NonBlankParagraphs(originalUnits),
		extract.NonBlankParagraphs(revisedUnits),
	)
	for i := range records {
		if s.scorer == nil {
			records[i].Confidence = domain.ConfidenceNotAvailable
			continue
		}
		records[i].Confidence = s.scorer.Score(ctx, records[i].Original, records[i].Revised)
	}

	s.logger.Info("comparison complete",
		zap.String("original", originalName),
		zap.String("revised", revisedName),
		zap.Int("changed_pairs", len(records)),
	)
	return records, nil
}
