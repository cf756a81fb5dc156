package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	contentTypesXML = xmlHeader +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	relsXML = xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	documentOpen = xmlHeader +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentClose = `</w:body></w:document>`
)

// Save serializes the document back to .docx bytes. Documents opened with
// Parse keep every archive part except word/document.xml untouched; within
// document.xml, only rewritten paragraphs change.
func (d *Document) Save() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if d.parts == nil {
		for _, part := range []zipPart{
			{name: "[Content_Types].xml", data: []byte(contentTypesXML)},
			{name: "_rels/.rels", data: []byte(relsXML)},
			{name: "word/document.xml", data: d.buildDocumentXML(true)},
		} {
			if err := writePart(zw, part); err != nil {
				return nil, err
			}
		}
	} else {
		for _, part := range d.parts {
			if part.name == "word/document.xml" {
				part = zipPart{name: part.name, data: d.buildDocumentXML(false)}
			}
			if err := writePart(zw, part); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, part zipPart) error {
	w, err := zw.Create(part.name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", part.name, err)
	}
	if _, err := w.Write(part.data); err != nil {
		return fmt.Errorf("writing part %s: %w", part.name, err)
	}
	return nil
}

func (d *Document) buildDocumentXML(skeleton bool) []byte {
	var buf bytes.Buffer
	if skeleton {
		buf.WriteString(documentOpen)
	}
	for _, seg := range d.segments {
		switch {
		case seg.para == nil:
			buf.Write(seg.raw)
		case seg.para.dirty || seg.para.raw == nil:
			writeParagraph(&buf, seg.para)
		default:
			buf.Write(seg.para.raw)
		}
	}
	if skeleton {
		buf.WriteString(documentClose)
	}
	return buf.Bytes()
}

func writeParagraph(buf *bytes.Buffer, p *Paragraph) {
	buf.WriteString("<w:p>")
	buf.WriteString(p.props)
	for _, r := range p.runs {
		writeRun(buf, r)
	}
	buf.WriteString("</w:p>")
}

func writeRun(buf *bytes.Buffer, r Run) {
	buf.WriteString("<w:r>")
	writeRunProps(buf, r.Style)
	inText := false
	flushText := func() {
		if inText {
			buf.WriteString("</w:t>")
			inText = false
		}
	}
	for _, c := range r.Text {
		switch c {
		case '\t':
			flushText()
			buf.WriteString("<w:tab/>")
		case '\n':
			flushText()
			buf.WriteString("<w:br/>")
		default:
			if !inText {
				buf.WriteString(`<w:t xml:space="preserve">`)
				inText = true
			}
			writeEscaped(buf, c)
		}
	}
	flushText()
	buf.WriteString("</w:r>")
}

func writeRunProps(buf *bytes.Buffer, s RunStyle) {
	if s == (RunStyle{}) {
		return
	}
	buf.WriteString("<w:rPr>")
	if s.Font != "" {
		f := escapeAttr(s.Font)
		fmt.Fprintf(buf, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`, f, f, f)
	}
	if s.Bold {
		buf.WriteString("<w:b/>")
	}
	if s.Italic {
		buf.WriteString("<w:i/>")
	}
	if s.Underline {
		buf.WriteString(`<w:u w:val="single"/>`)
	}
	if s.Color != "" {
		fmt.Fprintf(buf, `<w:color w:val="%s"/>`, escapeAttr(s.Color))
	}
	if s.SizeHalfPoints > 0 {
		sz := strconv.Itoa(s.SizeHalfPoints)
		fmt.Fprintf(buf, `<w:sz w:val="%s"/><w:szCs w:val="%s"/>`, sz, sz)
	}
	if s.Highlight != "" {
		fmt.Fprintf(buf, `<w:highlight w:val="%s"/>`, escapeAttr(s.Highlight))
	}
	buf.WriteString("</w:rPr>")
}

func writeEscaped(buf *bytes.Buffer, c rune) {
	switch c {
	case '&':
		buf.WriteString("&amp;")
	case '<':
		buf.WriteString("&lt;")
	case '>':
		buf.WriteString("&gt;")
	default:
		buf.WriteRune(c)
	}
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
