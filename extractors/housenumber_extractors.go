package extractors

import (
	"regexp"
	"strings"
)

var (
	// Simple address with the house number at the end, for example
	// "St. Johanns-Vorstadt 2" or, without whitespace, "Malzgasse10".
	simpleAddressRe = regexp.MustCompile(`^[A-Za-zäöüÄÖÜ.\-\s]+[0-9]+[a-z]?$`)

	firstNumberRe = regexp.MustCompile(`[0-9]+`)
)

// ExtractHousenumberFromTitle returns the first house number of a dossier
// title as a plain digit run, empty when the title carries none. Titles
// containing ":" are headings rather than addresses ("Kanonengasse:
// Übersicht") and yield no number. Never panics, no side effects.
func ExtractHousenumberFromTitle(title string) string {
	if strings.Contains(title, ":") {
		return ""
	}

	// A simple address ends in its house number; prefer that over any
	// number appearing earlier in the title.
	if simpleAddressRe.MatchString(title) {
		fields := strings.Fields(title)
		if len(fields) > 0 {
			return firstNumberRe.FindString(fields[len(fields)-1])
		}
	}

	// Otherwise take the first number anywhere, for example "8" from
	// "St. Johanns-Vorstadt 8, 10".
	return firstNumberRe.FindString(title)
}
