package revise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/docx"
	"redline/internal/domain"
)

func buildDoc(t *testing.T, paragraphs ...string) *docx.Document {
	t.Helper()
	doc := docx.New()
	for _, p := range paragraphs {
		doc.AddParagraph(docx.Run{Text: p, Style: docx.RunStyle{Font: "Arial", SizeHalfPoints: 22}})
	}
	data, err := doc.Save()
	require.NoError(t, err)
	parsed, err := docx.Parse(data)
	require.NoError(t, err)
	return parsed
}

func paragraphTexts(doc *docx.Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

func TestApply_SingleCorrection(t *testing.T) {
	doc := buildDoc(t, "Hasil analisa tim audit.", "Kalimat tanpa kesalahan.")
	n := Apply(doc, []domain.Finding{{Wrong: "analisa", Correct: "analisis"}})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Hasil analisis tim audit.", "Kalimat tanpa kesalahan."}, paragraphTexts(doc))
}

func TestApply_FirstOccurrenceOnly(t *testing.T) {
	doc := buildDoc(t, "Resiko pertama.", "Resiko kedua.")
	n := Apply(doc, []domain.Finding{{Wrong: "Resiko", Correct: "Risiko"}})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Risiko pertama.", "Resiko kedua."}, paragraphTexts(doc))
}

func TestApply_CaseSensitiveMatch(t *testing.T) {
	doc := buildDoc(t, "resiko kecil.")
	n := Apply(doc, []domain.Finding{{Wrong: "Resiko", Correct: "Risiko"}})

	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"resiko kecil."}, paragraphTexts(doc))
}

func TestApply_MultipleFindingsSameParagraph(t *testing.T) {
	doc := buildDoc(t, "Hasil analisa menunjukkan resiko tinggi.")
	n := Apply(doc, []domain.Finding{
		{Wrong: "analisa", Correct: "analisis"},
		{Wrong: "resiko", Correct: "risiko"},
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Hasil analisis menunjukkan risiko tinggi."}, paragraphTexts(doc))
}

func TestApply_OverlappingSpansConflict(t *testing.T) {
	// Both findings cover the same "di bawah" span. Reverse discovery order
	// claims first, so the second finding wins and the first is dropped.
	doc := buildDoc(t, "Lihat di bawah ini.")
	n := Apply(doc, []domain.Finding{
		{Wrong: "di bawah", Correct: "dibawah"},
		{Wrong: "di bawah ini", Correct: "berikut"},
	})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Lihat berikut."}, paragraphTexts(doc))
}

func TestApply_NoopFindingSkipped(t *testing.T) {
	doc := buildDoc(t, "Teks asli.")
	n := Apply(doc, []domain.Finding{
		{Wrong: "asli", Correct: "asli"},
		{Wrong: "", Correct: "x"},
	})

	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"Teks asli."}, paragraphTexts(doc))
}

func TestApply_KeepsFirstRunStyle(t *testing.T) {
	doc := docx.New()
	doc.AddParagraph(docx.Run{Text: "Resiko audit.", Style: docx.RunStyle{Font: "Arial", SizeHalfPoints: 22, Bold: true}})
	data, err := doc.Save()
	require.NoError(t, err)
	parsed, err := docx.Parse(data)
	require.NoError(t, err)

	Apply(parsed, []domain.Finding{{Wrong: "Resiko", Correct: "Risiko"}})

	runs := parsed.Paragraphs()[0].Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "Risiko audit.", runs[0].Text)
	assert.Equal(t, "Arial", runs[0].Style.Font)
	assert.Equal(t, 22, runs[0].Style.SizeHalfPoints)
	assert.True(t, runs[0].Style.Bold)
}

func TestHighlight_MarksEveryOccurrence(t *testing.T) {
	doc := buildDoc(t, "Resiko pertama dan resiko kedua.", "Tanpa temuan.")
	n := Highlight(doc, []domain.Finding{{Wrong: "resiko"}})

	assert.Equal(t, 2, n)

	runs := doc.Paragraphs()[0].Runs()
	require.Len(t, runs, 4)
	assert.Equal(t, "Resiko", runs[0].Text)
	assert.Equal(t, docx.HighlightYellow, runs[0].Style.Highlight)
	assert.Equal(t, " pertama dan ", runs[1].Text)
	assert.Empty(t, runs[1].Style.Highlight)
	assert.Equal(t, "resiko", runs[2].Text)
	assert.Equal(t, docx.HighlightYellow, runs[2].Style.Highlight)
	assert.Equal(t, " kedua.", runs[3].Text)

	// Untouched paragraph keeps its single original run.
	assert.Len(t, doc.Paragraphs()[1].Runs(), 1)
}

func TestHighlight_LongestTargetWins(t *testing.T) {
	doc := buildDoc(t, "Lihat di bawah ini.")
	n := Highlight(doc, []domain.Finding{
		{Wrong: "di bawah"},
		{Wrong: "di bawah ini"},
	})

	assert.Equal(t, 1, n)
	runs := doc.Paragraphs()[0].Runs()
	require.Len(t, runs, 3)
	assert.Equal(t, "di bawah ini", runs[1].Text)
	assert.Equal(t, docx.HighlightYellow, runs[1].Style.Highlight)
}

func TestHighlight_InheritsBaseStyle(t *testing.T) {
	doc := buildDoc(t, "Resiko audit.")
	Highlight(doc, []domain.Finding{{Wrong: "Resiko"}})

	for _, run := range doc.Paragraphs()[0].Runs() {
		assert.Equal(t, "Arial", run.Style.Font)
		assert.Equal(t, 22, run.Style.SizeHalfPoints)
	}
}

func TestHighlight_NoTargets(t *testing.T) {
	doc := buildDoc(t, "Teks.")
	assert.Equal(t, 0, Highlight(doc, nil))
}
