package proofread

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildProofreadPrompt(t *testing.T) {
	prompt := BuildProofreadPrompt(DefaultRules(), "Teks yang diperiksa.")

	assert.Contains(t, prompt, "KBBI")
	assert.Contains(t, prompt, "PUEBI")
	assert.Contains(t, prompt, "Indonesia Financial Group (IFG)")
	assert.Contains(t, prompt, "I Made Suandi Putra")
	assert.Contains(t, prompt, "[WRONG]")
	assert.Contains(t, prompt, "[CORRECT]")
	assert.Contains(t, prompt, "[SENTENCE]")
	assert.Contains(t, prompt, NoErrorsSentinel)

	// The text follows the --- delimiter verbatim.
	_, after, found := strings.Cut(prompt, "\n---\n")
	assert.True(t, found)
	assert.Equal(t, "Teks yang diperiksa.", after)
}

func TestBuildProofreadPrompt_DirectivesNumbered(t *testing.T) {
	rules := RuleSet{Version: "v9", Directives: []string{"first", "second"}}
	prompt := BuildProofreadPrompt(rules, "x")

	assert.Contains(t, prompt, "(v9)")
	assert.Contains(t, prompt, "1. first")
	assert.Contains(t, prompt, "2. second")
}

func TestBuildConfidencePrompt(t *testing.T) {
	prompt := BuildConfidencePrompt("asli", "revisi")

	assert.Contains(t, prompt, "0 to 100")
	assert.Less(t, strings.Index(prompt, "asli"), strings.Index(prompt, "revisi"))
}

func TestBuildStructurePrompt(t *testing.T) {
	prompt := BuildStructurePrompt("Isi dokumen.")

	assert.Contains(t, prompt, "[SECTION]")
	assert.Contains(t, prompt, "[ISSUE]")
	assert.Contains(t, prompt, "[SUGGESTION]")
	assert.True(t, strings.HasSuffix(prompt, "Isi dokumen."))
}
