package normalization

import (
	"regexp"
	"strings"
)

// ParsedOldHousenumber holds the structured attributes derived from the
// legacy oldHousenumber annotation of a dossier. Numbers is multi-valued
// because annotations like "1052, 1053, 1054" reference several parcels.
// An empty Supplement means no supplement, a nil IsPartOf means the
// part-of relation could not be derived.
type ParsedOldHousenumber struct {
	Numbers            []string `json:"numbers,omitempty"`
	Supplement         string   `json:"supplement,omitempty"`
	NeighbouringNumber []string `json:"neighbouringNumber,omitempty"`
	IsPartOf           *bool    `json:"isPartOf,omitempty"`
	IsBann             bool     `json:"isBann"`
}

var (
	// Prefix variants of the part-of marker as found in the source
	// material, 19th-century spellings included.
	teilPrefixRe = regexp.MustCompile(`^(?:Teil von|Theil von|Theil v\.|Th\. von|Th\. v\.) `)

	// "A und B": two parcels the entry is part of; the second one is
	// treated as the primary whole-parcel number.
	teilUndRe = regexp.MustCompile(`^([0-9]+(?: ?[A-Za-z])?) und ([0-9]+(?: ?[A-Za-z])?)(.*)$`)

	// "N neben M": part of N, next to M.
	teilNebenRe = regexp.MustCompile(`^([0-9]+(?: ?[A-Za-z])?) neben ([0-9]+(?: ?[A-Za-z])?)$`)

	// "N[, M...]" without postfix, like "Theil von 126, 124".
	teilListRe = regexp.MustCompile(`^[0-9]+(?: ?[A-Za-z])?(?:, [0-9]+(?: ?[A-Za-z])?)*$`)

	// Range notation "45-47"; only the written numbers count, the hyphen
	// is never expanded to the numbers in between.
	rangeRe = regexp.MustCompile(`^([0-9]+(?: ?[A-Za-z])?) ?- ?([0-9]+(?: ?[A-Za-z])?)$`)

	// Legacy phrasing "von 23", equivalent to a plain number.
	vonRe = regexp.MustCompile(`^von ([0-9]+(?: ?[A-Za-z])?)$`)

	// Simple numbers with the separators found in the source material:
	// "1052, 1053", "1097 / 1096", "827 + 827 A", "1250 u. 1251".
	simpleListRe  = regexp.MustCompile(`^[0-9]+ ?[A-Za-z]?(?:(?:, | / | \+ | u\. )[0-9]+ ?[A-Za-z]?)*$`)
	simpleSplitRe = regexp.MustCompile(`, | / | \+ | u\. `)

	// Leading number of an annotation with arbitrary postfix; a single
	// letter belongs to the number only when a separator follows.
	leadingNumberRe = regexp.MustCompile(`^[0-9]+ ?(?:[A-Za-z][ ,])?`)

	// Neighbouring parcel qualifier inside a supplement.
	nebenSearchRe = regexp.MustCompile(`neben ([0-9]+(?: ?[A-Za-z])?)`)

	tokenSplitRe  = regexp.MustCompile(`, | `)
	plainDigitsRe = regexp.MustCompile(`^[0-9]+$`)
	singleAlphaRe = regexp.MustCompile(`^[A-Za-z]$`)
)

// ParseOldHousenumber derives structured attributes from one legacy
// oldHousenumber annotation. The function is pure and total: malformed
// input degrades to the default extraction rule, blank input yields the
// zero value.
func ParseOldHousenumber(text string) ParsedOldHousenumber {
	t := NormalizeWhitespace(text)
	if t == "" {
		return ParsedOldHousenumber{}
	}

	var p ParsedOldHousenumber
	if strings.Contains(t, "Bann") || strings.Contains(t, "bann") {
		p.IsBann = true
		t = stripBannMarker(t)
		if t == "" {
			return p
		}
	}

	if rest, ok := stripTeilPrefix(t); ok {
		if parseTeilVon(&p, rest) {
			return p
		}
		// Prefix without a usable number, fall through to the
		// default rule on the full text.
	}

	if m := rangeRe.FindStringSubmatch(t); m != nil {
		p.Numbers = []string{m[1], m[2]}
		p.IsPartOf = boolPtr(false)
		return p
	}

	if m := vonRe.FindStringSubmatch(t); m != nil {
		p.Numbers = []string{m[1]}
		p.IsPartOf = boolPtr(false)
		return p
	}

	if simpleListRe.MatchString(t) {
		p.Numbers = simpleSplitRe.Split(t, -1)
		p.IsPartOf = boolPtr(false)
		return p
	}

	parseDefault(&p, t)
	return p
}

// NormalizeWhitespace collapses all whitespace runs to single spaces and
// trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// stripBannMarker removes standalone "Bann"/"bann" tokens and the
// "(Bann)" qualifier so that number extraction proceeds on the rest.
func stripBannMarker(t string) string {
	t = strings.ReplaceAll(t, "(Bann)", " ")
	fields := strings.Fields(t)
	kept := fields[:0]
	for _, f := range fields {
		if f == "Bann" || f == "bann" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func stripTeilPrefix(t string) (string, bool) {
	m := teilPrefixRe.FindString(t)
	if m == "" {
		return t, false
	}
	return t[len(m):], true
}

// parseTeilVon handles the part-of annotations. Reports false when no
// number follows the prefix.
func parseTeilVon(p *ParsedOldHousenumber, rest string) bool {
	if m := teilUndRe.FindStringSubmatch(rest); m != nil {
		first, second := m[1], m[2]
		tail := strings.TrimLeft(m[3], " ,")

		// The second parcel is taken as the primary whole-parcel
		// number; the relation to the first is kept as a remark only.
		// The annotation is inherently fuzzy, so the remark carries a
		// verification hint when the split is unambiguous.
		remark := "zusätzlich Teil von " + first
		if tail == "" && plainDigitsRe.MatchString(first) && plainDigitsRe.MatchString(second) {
			remark += " (zu verifizieren)"
		} else if tail != "" {
			remark += ", " + tail
		}
		p.Numbers = []string{second}
		p.Supplement = remark
		p.IsPartOf = boolPtr(false)
		return true
	}

	if m := teilNebenRe.FindStringSubmatch(rest); m != nil {
		p.Numbers = []string{m[1]}
		p.Supplement = "neben"
		p.NeighbouringNumber = []string{m[2]}
		p.IsPartOf = boolPtr(true)
		return true
	}

	if teilListRe.MatchString(rest) {
		p.Numbers = strings.Split(rest, ", ")
		p.IsPartOf = boolPtr(true)
		return true
	}

	// Number(s) with an arbitrary postfix, like "Theil von 552, 551,
	// Vorderhaus" or "Theil von 1045 A und B".
	fields := tokenSplitRe.Split(rest, -1)
	if len(fields) == 0 || !plainDigitsRe.MatchString(fields[0]) {
		return false
	}

	var supplement string
	if len(fields) >= 3 && singleAlphaRe.MatchString(fields[1]) {
		// Letter suffix belongs to the number.
		p.Numbers = []string{fields[0] + " " + fields[1]}
		supplement = tailFrom(rest, fields[2])
	} else {
		i := 0
		for i < len(fields) && plainDigitsRe.MatchString(fields[i]) {
			p.Numbers = append(p.Numbers, fields[i])
			i++
		}
		if i < len(fields) {
			supplement = tailFrom(rest, fields[i])
		}
	}
	p.Supplement = supplement
	p.IsPartOf = boolPtr(true)
	if m := nebenSearchRe.FindStringSubmatch(supplement); m != nil {
		p.NeighbouringNumber = []string{m[1]}
	}
	return true
}

// parseDefault extracts a leading number with arbitrary postfix; text
// without a leading number becomes supplement as a whole.
func parseDefault(p *ParsedOldHousenumber, t string) {
	m := leadingNumberRe.FindString(t)
	if m == "" {
		p.Supplement = t
		return
	}
	p.Numbers = []string{strings.TrimRight(m, " ,")}
	p.IsPartOf = boolPtr(false)
	supplement := t[len(m):]
	p.Supplement = supplement
	if nm := nebenSearchRe.FindStringSubmatch(supplement); nm != nil {
		p.NeighbouringNumber = []string{nm[1]}
	}
}

// tailFrom returns the substring of t starting at the first occurrence of
// token, or empty when token is not found.
func tailFrom(t, token string) string {
	idx := strings.Index(t, token)
	if idx < 0 {
		return ""
	}
	return t[idx:]
}

func boolPtr(b bool) *bool { return &b }
