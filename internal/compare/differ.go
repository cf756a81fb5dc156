// Package compare aligns an original document against its revision paragraph
// by paragraph and reports what changed in each aligned pair.
package compare

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"redline/internal/domain"
)

// MinorChangeMarker flags a replaced pair whose differences are only
// punctuation or whitespace.
const MinorChangeMarker = "minor change (punctuation/whitespace)"

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Diff aligns original and revised paragraph lists and returns one record
// per changed pair. Only replace opcodes produce records: paragraphs are
// paired positionally inside each replace block, and the unpaired tail of a
// lopsided block is dropped. Insertions and deletions are therefore not
// reported.
func Diff(original, revised []string) []domain.DiffRecord {
	matcher := difflib.NewMatcher(original, revised)

	var records []domain.DiffRecord
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'r' {
			continue
		}
		n := op.I2 - op.I1
		if m := op.J2 - op.J1; m < n {
			n = m
		}
		for k := 0; k < n; k++ {
			before := original[op.I1+k]
			after := revised[op.J1+k]
			records = append(records, domain.DiffRecord{
				Original:    before,
				Revised:     after,
				WordChanges: wordChanges(before, after),
			})
		}
	}
	return records
}

// wordChanges diffs the two paragraphs word by word. Pairs whose words are
// identical changed only in punctuation or whitespace and get the minor
// change marker instead of spans.
func wordChanges(before, after string) []string {
	a := wordPattern.FindAllString(before, -1)
	b := wordPattern.FindAllString(after, -1)

	var changes []string
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			changes = append(changes, fmt.Sprintf("%q → %q",
				strings.Join(a[op.I1:op.I2], " "),
				strings.Join(b[op.J1:op.J2], " ")))
		case 'd':
			changes = append(changes, fmt.Sprintf("%q → %q",
				strings.Join(a[op.I1:op.I2], " "), ""))
		case 'i':
			changes = append(changes, fmt.Sprintf("%q → %q",
				"", strings.Join(b[op.J1:op.J2], " ")))
		}
	}
	if len(changes) == 0 {
		return []string{MinorChangeMarker}
	}
	return changes
}
