package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrNoDocumentPart indicates the archive is a zip but not a Word document.
var ErrNoDocumentPart = errors.New("word/document.xml not found in archive")

// Parse opens a .docx file from memory.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}

	d := &Document{}
	var docXML []byte
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		d.parts = append(d.parts, zipPart{name: f.Name, data: b})
		if f.Name == "word/document.xml" {
			docXML = b
		}
	}
	if docXML == nil {
		return nil, ErrNoDocumentPart
	}

	segs, err := splitParagraphs(docXML)
	if err != nil {
		return nil, err
	}
	d.segments = segs
	return d, nil
}

// splitParagraphs slices document.xml into alternating raw chunks and
// parsed w:p elements. Everything that is not a paragraph (table plumbing,
// section properties, drawings) stays in the raw chunks and is written
// back verbatim.
func splitParagraphs(docXML []byte) ([]segment, error) {
	var segs []segment
	rest := docXML
	for {
		idx := indexParagraphOpen(rest)
		if idx < 0 {
			break
		}
		end, err := paragraphEnd(rest, idx)
		if err != nil {
			return nil, err
		}
		if idx > 0 {
			segs = append(segs, segment{raw: rest[:idx]})
		}
		raw := rest[idx:end]
		p, err := parseParagraph(raw)
		if err != nil {
			return nil, err
		}
		segs = append(segs, segment{para: p})
		rest = rest[end:]
	}
	if len(rest) > 0 {
		segs = append(segs, segment{raw: rest})
	}
	return segs, nil
}

// indexParagraphOpen finds the next "<w:p" that opens a paragraph element
// (and not <w:pPr>, <w:pgSz> etc.).
func indexParagraphOpen(b []byte) int {
	off := 0
	for {
		i := bytes.Index(b[off:], []byte("<w:p"))
		if i < 0 {
			return -1
		}
		i += off
		if j := i + len("<w:p"); j < len(b) {
			switch b[j] {
			case '>', ' ', '/', '\t', '\r', '\n':
				return i
			}
		}
		off = i + 1
	}
}

// paragraphEnd returns the offset just past the matching close of the
// paragraph opening at start. Paragraph elements never nest, so the first
// "</w:p>" after the open tag closes it.
func paragraphEnd(b []byte, start int) (int, error) {
	gt := bytes.IndexByte(b[start:], '>')
	if gt < 0 {
		return 0, fmt.Errorf("malformed document.xml: unterminated paragraph tag")
	}
	gt += start
	if b[gt-1] == '/' { // <w:p/> or <w:p .../>
		return gt + 1, nil
	}
	end := bytes.Index(b[gt:], []byte("</w:p>"))
	if end < 0 {
		return 0, fmt.Errorf("malformed document.xml: unterminated paragraph element")
	}
	return gt + end + len("</w:p>"), nil
}

type xmlRun struct {
	Props *xmlRunProps  `xml:"rPr"`
	Items []xmlRunChild `xml:",any"`
}

type xmlRunChild struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type xmlRunProps struct {
	Fonts     *xmlFonts  `xml:"rFonts"`
	Bold      *xmlToggle `xml:"b"`
	Italic    *xmlToggle `xml:"i"`
	Underline *xmlVal    `xml:"u"`
	Size      *xmlVal    `xml:"sz"`
	Color     *xmlVal    `xml:"color"`
	Highlight *xmlVal    `xml:"highlight"`
}

type xmlFonts struct {
	Ascii string `xml:"ascii,attr"`
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlToggle struct {
	Val string `xml:"val,attr"`
}

func (t *xmlToggle) on() bool {
	if t == nil {
		return false
	}
	return t.Val != "false" && t.Val != "0"
}

// parseParagraph decodes one w:p element. The fragment is parsed without
// its enclosing namespace declarations; Go's decoder resolves unbound
// prefixes to the prefix string itself, and matching is by local name, so
// this is safe.
func parseParagraph(raw []byte) (*Paragraph, error) {
	p := &Paragraph{raw: raw}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	sawRoot := false
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing paragraph: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			sawRoot = true
			continue
		}
		switch se.Name.Local {
		case "pPr":
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parsing paragraph properties: %w", err)
			}
			p.props = string(raw[start:dec.InputOffset()])
		case "r":
			var xr xmlRun
			if err := dec.DecodeElement(&xr, &se); err != nil {
				return nil, fmt.Errorf("parsing run: %w", err)
			}
			p.runs = append(p.runs, xr.toRun())
		default:
			// hyperlinks, bookmarks, revision marks: outside the run model
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parsing paragraph child: %w", err)
			}
		}
	}
	return p, nil
}

func (xr *xmlRun) toRun() Run {
	var text bytes.Buffer
	for _, c := range xr.Items {
		switch c.XMLName.Local {
		case "t":
			text.WriteString(c.Text)
		case "tab":
			text.WriteByte('\t')
		case "br", "cr":
			text.WriteByte('\n')
		}
	}
	r := Run{Text: text.String()}
	if pr := xr.Props; pr != nil {
		if pr.Fonts != nil {
			r.Style.Font = pr.Fonts.Ascii
		}
		r.Style.Bold = pr.Bold.on()
		r.Style.Italic = pr.Italic.on()
		if pr.Underline != nil && pr.Underline.Val != "none" {
			r.Style.Underline = true
		}
		if pr.Size != nil {
			r.Style.SizeHalfPoints = atoiSafe(pr.Size.Val)
		}
		if pr.Color != nil && pr.Color.Val != "auto" {
			r.Style.Color = pr.Color.Val
		}
		if pr.Highlight != nil && pr.Highlight.Val != "none" {
			r.Style.Highlight = pr.Highlight.Val
		}
	}
	return r
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
