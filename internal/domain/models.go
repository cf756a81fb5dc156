package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedUnit is one granule of text sent to the LLM: a single page for
// paginated formats (PDF), or the whole document for DOCX.
type ExtractedUnit struct {
	Index int    `json:"index"` // 1-based
	Text  string `json:"text"`
}

// Finding is one flagged span from proofreading: the wrong phrase, its
// correction, and the sentence it was found in. Duplicates across units are
// allowed and meaningful (the same typo recurring on several pages).
type Finding struct {
	Wrong     string `json:"wrong"`
	Correct   string `json:"correct"`
	Sentence  string `json:"sentence"`
	UnitIndex int    `json:"unit_index"`
}

// UnitReport records how a single unit's LLM reply was handled.
type UnitReport struct {
	Index    int        `json:"index"`
	Status   UnitStatus `json:"status"`
	Findings int        `json:"findings"`
	Error    string     `json:"error,omitempty"`
}

// DiffRecord is one aligned original/revised paragraph pair from document
// comparison. Confidence is "0".."100" or ConfidenceNotAvailable.
type DiffRecord struct {
	Original    string   `json:"original"`
	Revised     string   `json:"revised"`
	WordChanges []string `json:"word_changes"`
	Confidence  string   `json:"confidence"`
}

// ConfidenceNotAvailable marks a DiffRecord whose revision could not be scored.
const ConfidenceNotAvailable = "not available"

// StructuralNote is one row of the document coherence/structure analysis.
type StructuralNote struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// AnalysisResult is the full outcome of proofreading one uploaded document.
// It is a session-scoped value: each new analysis stores a fresh result,
// never mutating a stored one in place.
type AnalysisResult struct {
	ID              uuid.UUID        `json:"id"`
	FileName        string           `json:"file_name"`
	FileType        FileType         `json:"file_type"`
	SourceBytes     []byte           `json:"-"`
	Units           []ExtractedUnit  `json:"-"`
	UnitReports     []UnitReport     `json:"unit_reports"`
	Findings        []Finding        `json:"findings"`
	StructuralNotes []StructuralNote `json:"structural_notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// CleanUnits counts units whose reply was the explicit no-error sentinel,
// as opposed to units that errored or produced an unparseable reply.
func (r *AnalysisResult) CleanUnits() int {
	n := 0
	for _, u := range r.UnitReports {
		if u.Status == UnitStatusClean {
			n++
		}
	}
	return n
}
