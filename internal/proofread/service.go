package proofread

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"redline/internal/domain"
	"redline/internal/extract"
	"redline/internal/port"
)

// Service runs the full proofreading analysis over an uploaded document.
type Service struct {
	completer port.Completer
	logger    *zap.Logger
	rules     RuleSet
}

func NewService(completer port.Completer, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		logger:    logger,
		rules:     DefaultRules(),
	}
}

// Analyze extracts the document into units and proofreads each unit with one
// blocking LLM call, in order. A failed call records the error on its unit
// and analysis continues with the next one. Whitespace-only units never reach
// the LLM.
func (s *Service) Analyze(ctx context.Context, filename string, data []byte) (*domain.AnalysisResult, error) {
	units, err := extract.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	fileType, err := extract.FileTypeFor(filename)
	if err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{
		ID:          uuid.New(),
		FileName:    filename,
		FileType:    fileType,
		SourceBytes: data,
		Units:       units,
		CreatedAt:   time.Now().UTC(),
	}

	for _, unit := range units {
		report := domain.UnitReport{Index: unit.Index}

		if strings.TrimSpace(unit.Text) == "" {
			report.Status = domain.UnitStatusSkipped
			result.UnitReports = append(result.UnitReports, report)
			continue
		}

		prompt := BuildProofreadPrompt(s.rules, unit.Text)
		reply, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("unit proofread failed",
				zap.Int("unit", unit.Index),
				zap.Error(err),
			)
			report.Status = domain.UnitStatusError
			report.Error = err.Error()
			result.UnitReports = append(result.UnitReports, report)
			continue
		}

		findings := ParseFindings(reply, unit.Index)
		switch {
		case len(findings) > 0:
			report.Status = domain.UnitStatusFindings
			report.Findings = len(findings)
			result.Findings = append(result.Findings, findings...)
		case IsNoErrorsReply(reply):
			report.Status = domain.UnitStatusClean
		default:
			s.logger.Warn("unit reply did not match response grammar",
				zap.Int("unit", unit.Index),
			)
			report.Status = domain.UnitStatusUnparsed
		}
		result.UnitReports = append(result.UnitReports, report)
	}

	s.logger.Info("analysis complete",
		zap.String("analysis_id", result.ID.String()),
		zap.String("file", filename),
		zap.Int("units", len(units)),
		zap.Int("findings", len(result.Findings)),
		zap.Int("clean_units", result.CleanUnits()),
	)
	return result, nil
}

// AnalyzeStructure runs one coherence/structure review over the joined unit
// texts. A whitespace-only document makes no LLM call and yields nil notes.
func (s *Service) AnalyzeStructure(ctx context.Context, units []domain.ExtractedUnit) ([]domain.StructuralNote, error) {
	texts := make([]string, 0, len(units))
	for _, u := range units {
		texts = append(texts, u.Text)
	}
	joined := strings.Join(texts, "\n\n")
	if strings.TrimSpace(joined) == "" {
		return nil, nil
	}

	reply, err := s.completer.Complete(ctx, BuildStructurePrompt(joined))
	if err != nil {
		return nil, err
	}
	return ParseStructuralNotes(reply), nil
}
