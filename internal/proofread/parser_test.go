package proofread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/domain"
)

func TestParseFindings(t *testing.T) {
	reply := "[WRONG] dibawah -> [CORRECT] di bawah -> [SENTENCE] Laporan dibawah ini sudah final.\n" +
		"[WRONG] analisa -> [CORRECT] analisis -> [SENTENCE] Hasil analisa tim audit."

	findings := ParseFindings(reply, 3)
	require.Len(t, findings, 2)

	assert.Equal(t, "dibawah", findings[0].Wrong)
	assert.Equal(t, "di bawah", findings[0].Correct)
	assert.Equal(t, "Laporan dibawah ini sudah final.", findings[0].Sentence)
	assert.Equal(t, 3, findings[0].UnitIndex)

	assert.Equal(t, "analisa", findings[1].Wrong)
	assert.Equal(t, "analisis", findings[1].Correct)
}

func TestParseFindings_CaseInsensitiveMarkers(t *testing.T) {
	reply := "[wrong] praktek -> [correct] praktik -> [sentence] Praktek yang baik."
	findings := ParseFindings(reply, 1)
	require.Len(t, findings, 1)
	assert.Equal(t, "praktek", findings[0].Wrong)
}

func TestParseFindings_SkipsEmptyWrong(t *testing.T) {
	reply := "[WRONG]  -> [CORRECT] sesuatu -> [SENTENCE] Kalimat."
	assert.Nil(t, ParseFindings(reply, 1))
}

func TestParseFindings_FreeFormReply(t *testing.T) {
	assert.Nil(t, ParseFindings("The text looks mostly fine to me.", 1))
}

func TestParseFindings_SurroundingProse(t *testing.T) {
	reply := "Here is what I found:\n\n" +
		"[WRONG] resiko -> [CORRECT] risiko -> [SENTENCE] Resiko audit tinggi.\n\n" +
		"Hope that helps!"
	findings := ParseFindings(reply, 2)
	require.Len(t, findings, 1)
	assert.Equal(t, "resiko", findings[0].Wrong)
}

func TestIsNoErrorsReply(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"NO ERRORS", true},
		{"no errors", true},
		{"  NO ERRORS.  ", true},
		{`"NO ERRORS"`, true},
		{"NO ERRORS FOUND IN SECTION 2", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNoErrorsReply(tt.reply), "reply=%q", tt.reply)
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"95", "95"},
		{"I would say 87 out of 100.", "87"},
		{"0", "0"},
		{"100", "100"},
		{"999", "100"},
		{"no idea", domain.ConfidenceNotAvailable},
		{"", domain.ConfidenceNotAvailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseConfidence(tt.reply), "reply=%q", tt.reply)
	}
}

func TestParseStructuralNotes(t *testing.T) {
	reply := "[SECTION] Pendahuluan -> [ISSUE] duplicates the executive summary -> [SUGGESTION] merge the two sections\n" +
		"[SECTION] Lampiran -> [ISSUE] referenced but missing -> [SUGGESTION] attach appendix B"

	notes := ParseStructuralNotes(reply)
	require.Len(t, notes, 2)
	assert.Equal(t, "Pendahuluan", notes[0].Section)
	assert.Equal(t, "duplicates the executive summary", notes[0].Issue)
	assert.Equal(t, "merge the two sections", notes[0].Suggestion)
	assert.Equal(t, "Lampiran", notes[1].Section)
}

func TestParseStructuralNotes_Sentinel(t *testing.T) {
	assert.Nil(t, ParseStructuralNotes("NO ERRORS"))
}
