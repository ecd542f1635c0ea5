package transform

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper returns s mapped to upper case using the full Unicode mapping,
// independent of any locale. Characters whose upper case form is longer
// than one rune expand, so "straße" becomes "STRASSE".
func Upper(s string) string {
	if s == "" {
		return s
	}

	// A Caser keeps state between calls and must not be shared.
	return cases.Upper(language.Und).String(s)
}
