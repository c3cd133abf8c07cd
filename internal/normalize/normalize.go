// Package normalize canonicalizes free-text values into comparable tokens.
//
// Inputs arriving from scanned documents carry OCR artifacts, stray
// punctuation, and inconsistent casing. Record field values coming back from
// the store have the same problem. Both sides are reduced to the same
// canonical form so every comparison in the resolver is token-vs-token.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Token reduces s to its canonical comparable form: every rune that is not a
// Unicode letter or digit is dropped, and the remainder is case-folded.
//
// Token is total and idempotent: Token(Token(s)) == Token(s), and Token("")
// is "".
//
// Examples:
//
//	" ACME-123 " -> "acme123"
//	"Größe/Ø"    -> "grösseø" (folded, punctuation stripped)
func Token(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return fold.String(b.String())
}
