package builder

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// summaryFor returns the operation summary for a handler method name: the
// name with only its first letter upper-cased, so "listItems" becomes
// "ListItems" and "get-items" becomes "Get-items".
func summaryFor(name string) string {
	if name == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(name)
	// A Caser holds state, so each call gets its own.
	return cases.Upper(language.Und).String(name[:size]) + name[size:]
}
