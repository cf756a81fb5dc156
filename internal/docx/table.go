package docx

import "bytes"

// AddTable appends a full-width bordered table. The header row uses
// headerStyle, body rows bodyStyle. Tables are write-only: the builder is
// meant for generated reports, parsed tables surface only through their
// cell paragraphs.
func (d *Document) AddTable(header []string, rows [][]string, headerStyle, bodyStyle RunStyle) {
	var buf bytes.Buffer
	buf.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		buf.WriteString(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="auto"/>`)
	}
	buf.WriteString(`</w:tblBorders></w:tblPr>`)

	writeRow := func(cells []string, style RunStyle) {
		buf.WriteString("<w:tr>")
		for _, cell := range cells {
			buf.WriteString("<w:tc>")
			writeParagraph(&buf, &Paragraph{runs: []Run{{Text: cell, Style: style}}})
			buf.WriteString("</w:tc>")
		}
		buf.WriteString("</w:tr>")
	}

	writeRow(header, headerStyle)
	for _, row := range rows {
		writeRow(row, bodyStyle)
	}
	buf.WriteString("</w:tbl>")

	d.segments = append(d.segments, segment{raw: buf.Bytes()})
}
