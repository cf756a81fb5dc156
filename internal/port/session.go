package port

import (
	"github.com/google/uuid"

	"redline/internal/domain"
)

// AnalysisStore retains analysis results between independent user
// interactions within one process lifetime. There is no persistence
// guarantee: a result is replaced wholesale by Put and lost on restart.
type AnalysisStore interface {
	Put(result *domain.AnalysisResult)
	Get(id uuid.UUID) (*domain.AnalysisResult, bool)
}
