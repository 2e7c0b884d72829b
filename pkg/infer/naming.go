package infer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PascalCase turns a key such as "billing_address" or "user-id" into a
// display name ("BillingAddress", "UserId"). Existing inner capitals are
// kept.
func PascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	// A Caser is stateful; one per call keeps this safe for concurrent use.
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return b.String()
}
