package proofread

import (
	"regexp"
	"strconv"
	"strings"

	"redline/internal/domain"
)

var (
	findingPattern    = regexp.MustCompile(`(?i)\[WRONG\]\s*(.*?)\s*->\s*\[CORRECT\]\s*(.*?)\s*->\s*\[SENTENCE\]\s*(.*?)\s*(?:\n|$)`)
	structurePattern  = regexp.MustCompile(`(?i)\[SECTION\]\s*(.*?)\s*->\s*\[ISSUE\]\s*(.*?)\s*->\s*\[SUGGESTION\]\s*(.*?)\s*(?:\n|$)`)
	confidencePattern = regexp.MustCompile(`\d{1,3}`)
)

// IsNoErrorsReply reports whether the reply is the no-errors sentinel,
// tolerating case and a trailing period.
func IsNoErrorsReply(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	trimmed = strings.TrimSuffix(trimmed, ".")
	trimmed = strings.Trim(trimmed, `"`)
	return strings.EqualFold(trimmed, NoErrorsSentinel)
}

// ParseFindings extracts findings from a model reply. A reply that matches
// nothing (sentinel or free-form prose) yields nil; callers distinguish the
// two via IsNoErrorsReply.
func ParseFindings(reply string, unitIndex int) []domain.Finding {
	matches := findingPattern.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil
	}

	findings := make([]domain.Finding, 0, len(matches))
	for _, m := range matches {
		wrong := strings.TrimSpace(m[1])
		if wrong == "" {
			continue
		}
		findings = append(findings, domain.Finding{
			Wrong:     wrong,
			Correct:   strings.TrimSpace(m[2]),
			Sentence:  strings.TrimSpace(m[3]),
			UnitIndex: unitIndex,
		})
	}
	if len(findings) == 0 {
		return nil
	}
	return findings
}

// ParseConfidence extracts the first 0-100 integer from a reply, clamped to
// 100. Replies with no digits map to domain.ConfidenceNotAvailable.
func ParseConfidence(reply string) string {
	m := confidencePattern.FindString(reply)
	if m == "" {
		return domain.ConfidenceNotAvailable
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return domain.ConfidenceNotAvailable
	}
	if n > 100 {
		n = 100
	}
	return strconv.Itoa(n)
}

// ParseStructuralNotes extracts structure observations from a model reply.
func ParseStructuralNotes(reply string) []domain.StructuralNote {
	matches := structurePattern.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil
	}

	notes := make([]domain.StructuralNote, 0, len(matches))
	for _, m := range matches {
		section := strings.TrimSpace(m[1])
		issue := strings.TrimSpace(m[2])
		if section == "" && issue == "" {
			continue
		}
		notes = append(notes, domain.StructuralNote{
			Section:    section,
			Issue:      issue,
			Suggestion: strings.TrimSpace(m[3]),
		})
	}
	if len(notes) == 0 {
		return nil
	}
	return notes
}
