// Package extract pulls plain text out of uploaded documents at the
// granularity the proofreading pipeline works in: one unit per page for
// PDF, one unit for the whole document for DOCX.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"redline/internal/docx"
	"redline/internal/domain"
)

// FileTypeFor maps a file name to its FileType, or ErrUnsupportedFileType.
func FileTypeFor(filename string) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	ft, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}
	return ft, nil
}

// Extract returns the document's text units in order. PDF pages are
// 1-indexed; a DOCX yields a single unit with index 1 containing all
// paragraph texts joined by newlines.
func Extract(filename string, data []byte) ([]domain.ExtractedUnit, error) {
	ft, err := FileTypeFor(filename)
	if err != nil {
		return nil, err
	}
	var units []domain.ExtractedUnit
	switch ft {
	case domain.FileTypePDF:
		units, err = pdfUnits(data)
	case domain.FileTypeDOCX:
		units, err = docxUnits(data)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	return units, nil
}

func pdfUnits(data []byte) (units []domain.ExtractedUnit, err error) {
	// The pdf library panics on some malformed files; the contract is an
	// extraction-failed error, never an escaped panic.
	defer func() {
		if r := recover(); r != nil {
			units = nil
			err = fmt.Errorf("%w: %v", domain.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	total := reader.NumPage()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		text := ""
		if !page.V.IsNull() {
			var b strings.Builder
			for _, t := range page.Content().Text {
				b.WriteString(t.S)
				b.WriteString(" ")
			}
			text = norm.NFC.String(b.String())
		}
		units = append(units, domain.ExtractedUnit{Index: pageNum, Text: text})
	}
	return units, nil
}

func docxUnits(data []byte) ([]domain.ExtractedUnit, error) {
	doc, err := docx.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	full := norm.NFC.String(strings.Join(texts, "\n"))
	return []domain.ExtractedUnit{{Index: 1, Text: full}}, nil
}

// NonBlankParagraphs splits extracted units into trimmed, non-blank
// paragraph strings, the input shape the document differ works on.
func NonBlankParagraphs(units []domain.ExtractedUnit) []string {
	var out []string
	for _, u := range units {
		for _, line := range strings.Split(u.Text, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
