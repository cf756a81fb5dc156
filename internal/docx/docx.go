// Package docx reads and writes the paragraph/run structure of
// WordprocessingML (.docx) documents.
//
// The model is deliberately narrow: a document is an ordered sequence of
// paragraphs, a paragraph an ordered sequence of styled runs. Paragraphs
// that are never modified are written back byte-for-byte from the source
// archive, so edits to one paragraph cannot disturb formatting anywhere
// else. A rewritten paragraph keeps its paragraph-level properties (w:pPr)
// verbatim but replaces its run content; non-run paragraph children
// (bookmarks, hyperlinks, revision marks) are dropped from rewritten
// paragraphs only.
package docx

// RunStyle holds the character formatting of a run.
// SizeHalfPoints follows the OOXML convention (22 = 11pt).
type RunStyle struct {
	Font           string
	SizeHalfPoints int
	Bold           bool
	Italic         bool
	Underline      bool
	Color          string // hex RGB without '#', e.g. "FF0000"
	Highlight      string // named highlight color, e.g. HighlightYellow
}

// Named highlight colors from the ST_HighlightColor enumeration.
const (
	HighlightYellow = "yellow"
	HighlightGreen  = "green"
	HighlightCyan   = "cyan"
)

// Run is a contiguous span of text sharing one style.
type Run struct {
	Text  string
	Style RunStyle
}

// Paragraph is an ordered sequence of runs plus its preserved
// paragraph-level properties.
type Paragraph struct {
	runs  []Run
	props string // raw w:pPr XML from the source, emitted verbatim on rewrite
	raw   []byte // original bytes of the whole w:p element, nil for new paragraphs
	dirty bool
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var b []byte
	for _, r := range p.runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Runs returns a copy of the paragraph's runs.
func (p *Paragraph) Runs() []Run {
	out := make([]Run, len(p.runs))
	copy(out, p.runs)
	return out
}

// BaseStyle returns the style of the first run, or a zero style for an
// empty paragraph.
func (p *Paragraph) BaseStyle() RunStyle {
	if len(p.runs) == 0 {
		return RunStyle{}
	}
	return p.runs[0].Style
}

// SetRuns replaces the paragraph's content. The paragraph is rewritten on
// save: its w:pPr is kept, everything else is regenerated from the runs.
func (p *Paragraph) SetRuns(runs []Run) {
	p.runs = make([]Run, len(runs))
	copy(p.runs, runs)
	p.dirty = true
}

// segment is one slice of word/document.xml: either raw bytes copied
// through untouched, or a paragraph.
type segment struct {
	raw  []byte
	para *Paragraph
}

// Document is a parsed .docx file, or a new one built from scratch.
type Document struct {
	segments []segment
	parts    []zipPart // source archive parts in original order, nil for new documents
}

type zipPart struct {
	name string
	data []byte
}

// New creates an empty document with a minimal OOXML package skeleton.
func New() *Document {
	return &Document{}
}

// Paragraphs returns the document's paragraphs in order. For parsed
// documents this includes paragraphs inside table cells.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for i := range d.segments {
		if d.segments[i].para != nil {
			out = append(out, d.segments[i].para)
		}
	}
	return out
}

// AddParagraph appends a new paragraph with the given runs.
func (d *Document) AddParagraph(runs ...Run) *Paragraph {
	p := &Paragraph{dirty: true}
	p.runs = make([]Run, len(runs))
	copy(p.runs, runs)
	d.segments = append(d.segments, segment{para: p})
	return p
}
