package report

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"redline/internal/domain"
)

const (
	minColWidth = 10
	maxColWidth = 80
)

// FindingsXlsx builds a one-sheet workbook with one row per finding.
func FindingsXlsx(findings []domain.Finding) ([]byte, error) {
	rows := make([][]string, 0, len(findings))
	for i, f := range findings {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), f.Wrong, f.Correct, f.Sentence, strconv.Itoa(f.UnitIndex),
		})
	}
	return buildSheet("Findings", []string{"No", "Wrong", "Correction", "Sentence", "Unit"}, rows)
}

// StructureXlsx builds a one-sheet workbook with one row per structural note.
func StructureXlsx(notes []domain.StructuralNote) ([]byte, error) {
	rows := make([][]string, 0, len(notes))
	for i, n := range notes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), n.Section, n.Issue, n.Suggestion,
		})
	}
	return buildSheet("Structure", []string{"No", "Section", "Issue", "Suggestion"}, rows)
}

// DiffXlsx builds a one-sheet workbook with one row per changed paragraph
// pair, word changes joined by "; ".
func DiffXlsx(records []domain.DiffRecord) ([]byte, error) {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		changes := ""
		for j, c := range r.WordChanges {
			if j > 0 {
				changes += "; "
			}
			changes += c
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), r.Original, r.Revised, changes, r.Confidence,
		})
	}
	return buildSheet("Comparison", []string{"No", "Original", "Revised", "Word Changes", "Confidence"}, rows)
}

func buildSheet(name string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	widths := make([]int, len(header))
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return nil, err
		}
		widths[col] = len(h)
	}
	for r, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, val); err != nil {
				return nil, err
			}
			if col < len(widths) && len(val) > widths[col] {
				widths[col] = len(val)
			}
		}
	}

	for col := range header {
		width := float64(widths[col]) + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
