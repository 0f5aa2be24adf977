package sentence

import (
	"regexp"

	"golang.org/x/text/cases"
)

var (
	// punctuationPattern matches runs of the punctuation class from
	// spec.md §4.C: each of . 。 , ， ? ¿ ？ ! ！ ; ； : ：, one or more.
	punctuationPattern = regexp.MustCompile(`[.。,，?¿？!！;；:：]+`)

	whitespacePattern = regexp.MustCompile(`\s+`)

	numberStartPattern = regexp.MustCompile(`^(\s*-?[0-9]+)`)

	foldCaser = cases.Fold()
)

// NormalizeText casefolds s (full Unicode case folding, not just
// strings.ToLower) and collapses internal whitespace, per spec.md §6.
func NormalizeText(s string) string {
	return NormalizeWhitespace(foldCaser.String(s))
}

// NormalizeWhitespace collapses runs of whitespace to a single space.
func NormalizeWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, " ")
}
