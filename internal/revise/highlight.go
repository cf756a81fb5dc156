package revise

import (
	"regexp"
	"sort"
	"strings"

	"redline/internal/docx"
	"redline/internal/domain"
)

// Highlight marks every case-insensitive occurrence of each finding's wrong
// phrase with a yellow highlight. All targets are matched in a single
// combined pass, longer targets winning over shorter ones at the same
// position. Paragraphs with no match keep their runs untouched; matching
// paragraphs are rebuilt from their concatenated text in the paragraph's
// first-run style.
func Highlight(doc *docx.Document, findings []domain.Finding) int {
	targets := uniqueTargets(findings)
	if len(targets) == 0 {
		return 0
	}

	quoted := make([]string, len(targets))
	for i, t := range targets {
		quoted[i] = regexp.QuoteMeta(t)
	}
	pattern := regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))

	marked := 0
	for _, para := range doc.Paragraphs() {
		text := para.Text()
		spans := pattern.FindAllStringIndex(text, -1)
		if len(spans) == 0 {
			continue
		}

		base := para.BaseStyle()
		hit := base
		hit.Highlight = docx.HighlightYellow

		var runs []docx.Run
		prev := 0
		for _, span := range spans {
			if span[0] > prev {
				runs = append(runs, docx.Run{Text: text[prev:span[0]], Style: base})
			}
			runs = append(runs, docx.Run{Text: text[span[0]:span[1]], Style: hit})
			prev = span[1]
			marked++
		}
		if prev < len(text) {
			runs = append(runs, docx.Run{Text: text[prev:], Style: base})
		}
		para.SetRuns(runs)
	}
	return marked
}

// uniqueTargets dedupes wrong phrases case-insensitively and orders them
// longest first so the alternation prefers the longer match.
func uniqueTargets(findings []domain.Finding) []string {
	seen := make(map[string]bool)
	var targets []string
	for _, f := range findings {
		key := strings.ToLower(strings.TrimSpace(f.Wrong))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		targets = append(targets, strings.TrimSpace(f.Wrong))
	}
	sort.SliceStable(targets, func(i, j int) bool { return len(targets[i]) > len(targets[j]) })
	return targets
}
