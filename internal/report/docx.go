// Package report renders analysis results into downloadable artifacts:
// findings tables as DOCX and XLSX, structure notes as XLSX, and the
// revised/highlighted document bundle.
package report

import (
	"fmt"
	"strconv"
	"time"

	"redline/internal/docx"
	"redline/internal/domain"
	"redline/internal/revise"
)

const (
	// Arial sizes in half-points, 12pt titles and 11pt body.
	titleSizeHalfPoints = 24
	bodySizeHalfPoints  = 22
	fontName            = "Arial"
)

// MIME types for the produced artifacts.
const (
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEZip  = "application/zip"
)

// ErrorTableDocx builds the proofreading report document: a title, a
// metadata line, and one table row per finding.
func ErrorTableDocx(result *domain.AnalysisResult) ([]byte, error) {
	doc := docx.New()

	titleStyle := docx.RunStyle{Font: fontName, SizeHalfPoints: titleSizeHalfPoints, Bold: true}
	bodyStyle := docx.RunStyle{Font: fontName, SizeHalfPoints: bodySizeHalfPoints}

	doc.AddParagraph(docx.Run{Text: "Proofreading Report", Style: titleStyle})
	meta := fmt.Sprintf("File: %s | Units: %d | Findings: %d | %s",
		result.FileName, len(result.UnitReports), len(result.Findings),
		result.CreatedAt.Format(time.RFC3339))
	doc.AddParagraph(docx.Run{Text: meta, Style: bodyStyle})
	doc.AddParagraph()

	header := []string{"No", "Wrong", "Correction", "Unit"}
	rows := make([][]string, 0, len(result.Findings))
	for i, f := range result.Findings {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), f.Wrong, f.Correct, strconv.Itoa(f.UnitIndex),
		})
	}
	doc.AddTable(header, rows, titleStyle, bodyStyle)

	return doc.Save()
}

// RevisedDocx applies every finding's correction to the source document and
// serializes the result. Only DOCX sources can be revised.
func RevisedDocx(result *domain.AnalysisResult) ([]byte, error) {
	doc, err := sourceDoc(result)
	if err != nil {
		return nil, err
	}
	revise.Apply(doc, result.Findings)
	return doc.Save()
}

// HighlightedDocx marks every finding's wrong phrase in the source document
// and serializes the result. Only DOCX sources can be highlighted.
func HighlightedDocx(result *domain.AnalysisResult) ([]byte, error) {
	doc, err := sourceDoc(result)
	if err != nil {
		return nil, err
	}
	revise.Highlight(doc, result.Findings)
	return doc.Save()
}

func sourceDoc(result *domain.AnalysisResult) (*docx.Document, error) {
	if result.FileType != domain.FileTypeDOCX {
		return nil, domain.ErrNotDocx
	}
	return docx.Parse(result.SourceBytes)
}
