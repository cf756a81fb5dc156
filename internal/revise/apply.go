// Package revise builds the revised and highlighted DOCX variants of an
// analyzed document by rewriting only the paragraphs that corrections touch.
package revise

import (
	"sort"
	"strings"

	"redline/internal/docx"
	"redline/internal/domain"
)

type claim struct {
	start   int
	end     int
	correct string
}

// Apply writes corrections into the document. Each finding replaces at most
// one occurrence in the whole document: the first exact case-sensitive match,
// searched paragraph by paragraph in document order. Within one paragraph,
// spans are claimed against the pre-edit text in reverse discovery order and
// a finding whose span overlaps an already claimed span is dropped for that
// paragraph. Touched paragraphs are rebuilt as a single run carrying the
// paragraph's first-run style; run-level formatting inside them is not kept.
func Apply(doc *docx.Document, findings []domain.Finding) int {
	paragraphs := doc.Paragraphs()

	pending := make([]domain.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Wrong != "" && f.Wrong != f.Correct {
			pending = append(pending, f)
		}
	}

	applied := 0
	for _, para := range paragraphs {
		if len(pending) == 0 {
			break
		}
		text := para.Text()
		if text == "" {
			continue
		}

		var claims []claim
		claimed := make(map[int]bool)
		for i := len(pending) - 1; i >= 0; i-- {
			f := pending[i]
			start := strings.Index(text, f.Wrong)
			if start < 0 {
				continue
			}
			end := start + len(f.Wrong)
			if overlapsAny(claims, start, end) {
				// Conflicting span: the finding is dropped for this
				// paragraph but stays pending for later ones.
				continue
			}
			claims = append(claims, claim{start: start, end: end, correct: f.Correct})
			claimed[i] = true
		}
		if len(claims) == 0 {
			continue
		}

		rest := pending[:0:0]
		for i, f := range pending {
			if !claimed[i] {
				rest = append(rest, f)
			}
		}
		pending = rest

		sort.Slice(claims, func(i, j int) bool { return claims[i].start > claims[j].start })
		style := para.BaseStyle()
		for _, c := range claims {
			text = text[:c.start] + c.correct + text[c.end:]
			applied++
		}
		para.SetRuns([]docx.Run{{Text: text, Style: style}})
	}
	return applied
}

func overlapsAny(claims []claim, start, end int) bool {
	for _, c := range claims {
		if start < c.end && end > c.start {
			return true
		}
	}
	return false
}
