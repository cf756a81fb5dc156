package proofread

import (
	"fmt"
	"strings"
)

// RuleSet is the versioned list of proofreading directives sent ahead of the
// text under review. Version changes whenever a directive is added, removed
// or reworded so prompt drift is traceable in logs.
type RuleSet struct {
	Version    string
	Directives []string
}

// NoErrorsSentinel is the exact reply the model is instructed to return when
// the text contains no errors.
const NoErrorsSentinel = "NO ERRORS"

// protectedNames are spelled correctly as given and must never be "fixed".
var protectedNames = []string{
	"Yullyan", "I Made Suandi Putra", "Laila Fajriani", "Hari Sundoro",
	"Bakhas Nasrani Diso", "Rizky Ananda Putra", "Wirawan Arief Nugroho",
	"Lelya Novita Kusumawati", "Ryani Ariesti Syafitri", "Darmo Saputro Wibowo",
	"Lucky Parwitasari", "Handarudigdaya Jalanidhi Kuncaratrah", "Fajar Setianto",
	"Jaka Tirtana Hanafiah", "Muhammad Rosyid Ridho Muttaqien", "Octovian Abrianto",
	"Deny Sjahbani", "Jihan Abigail", "Winda Anggraini", "Fadian Dwiantara",
}

// DefaultRules returns the built-in directive set for Indonesian audit
// documents.
func DefaultRules() RuleSet {
	return RuleSet{
		Version: "v1",
		Directives: []string{
			"Fix typographical errors.",
			"Ensure every word conforms to the Kamus Besar Bahasa Indonesia (KBBI).",
			"Fix simple grammar and spelling mistakes per the Pedoman Umum Ejaan Bahasa Indonesia (PUEBI).",
			"English-language spans should be italicized.",
			"The following personal names are spelled correctly and must be left untouched: " + strings.Join(protectedNames, ", ") + ".",
			"The document font is Arial and must not change. The top title uses size 12, the body always uses size 11.",
			"\"Indonesia Financial Group (IFG)\" is exempt from the italics rule even though it is English.",
			"Do not check the closing signature block, from the dateline through the signatory's title.",
			"Do not check the letter number line.",
			"Correct only the wrong words or phrases themselves, never whole sentences.",
		},
	}
}

// BuildProofreadPrompt assembles the instruction block, the strict response
// format, and the text under review separated by a --- delimiter. The text is
// embedded verbatim: a --- line inside it would be read as the delimiter.
func BuildProofreadPrompt(rules RuleSet, text string) string {
	var b strings.Builder
	b.WriteString("You are a meticulous auditor and professional Indonesian-language expert tasked with proofreading documents.\n")
	b.WriteString("Proofread the text below. Your directives (" + rules.Version + "):\n")
	for i, d := range rules.Directives {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	b.WriteString("\nIMPORTANT: respond in this strict format, one finding per line:\n")
	b.WriteString("[WRONG] the wrong word or phrase -> [CORRECT] the corrected word or phrase -> [SENTENCE] the full sentence containing it\n\n")
	b.WriteString("If there are no errors at all, reply with exactly: \"" + NoErrorsSentinel + "\"\n\n")
	b.WriteString("Here is the text you must check:\n---\n")
	b.WriteString(text)
	return b.String()
}

// BuildConfidencePrompt asks for a 0-100 similarity-of-meaning score between
// a paragraph and its revision.
func BuildConfidencePrompt(original, revised string) string {
	var b strings.Builder
	b.WriteString("Rate how confident you are, as an integer from 0 to 100, that the revised paragraph preserves the meaning of the original and only fixes language errors.\n")
	b.WriteString("Reply with the integer only.\n\n")
	b.WriteString("Original:\n---\n")
	b.WriteString(original)
	b.WriteString("\n---\nRevised:\n---\n")
	b.WriteString(revised)
	return b.String()
}

// BuildStructurePrompt asks for document-level coherence and structure
// observations in a line grammar the parser can read back.
func BuildStructurePrompt(fullText string) string {
	var b strings.Builder
	b.WriteString("You are an auditor reviewing the structure and coherence of an Indonesian audit document.\n")
	b.WriteString("Point out sections that are out of order, incoherent, missing, or redundant.\n")
	b.WriteString("Respond in this strict format, one observation per line:\n")
	b.WriteString("[SECTION] section name or location -> [ISSUE] what is wrong -> [SUGGESTION] how to fix it\n\n")
	b.WriteString("If the structure is sound, reply with exactly: \"" + NoErrorsSentinel + "\"\n\n")
	b.WriteString("Here is the document:\n---\n")
	b.WriteString(fullText)
	return b.String()
}
