package quality

import (
	"fmt"
	"regexp"

	"hgbmetadata/enrichment"
)

// numberTokenRe is the well-formed shape of an extracted house number:
// digits with an optional letter suffix ("1257", "48 A", "2a").
var (
	numberTokenRe = regexp.MustCompile(`^[0-9]+ ?[A-Za-z]?$`)
	digitsOnlyRe  = regexp.MustCompile(`^[0-9]+$`)
)

// Issue is one advisory finding over the enriched dataset.
type Issue struct {
	StabsID string `json:"stabsId"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidNumberToken reports whether a single extracted house number is
// well formed.
func ValidNumberToken(number string) bool {
	return numberTokenRe.MatchString(number)
}

// ValidateEnriched runs structural checks over the enriched dataset and
// returns advisory findings. Corrected records must be backed by an
// entry in the correction table that produced the run; a nil table flags
// every corrected record. It never mutates the input; a non-empty
// result flags rows worth a manual look, not a failed run.
func ValidateEnriched(records []enrichment.EnrichedDossier, corrections enrichment.CorrectionTable) []Issue {
	var issues []Issue
	report := func(stabsID, field, format string, args ...interface{}) {
		issues = append(issues, Issue{
			StabsID: stabsID,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for _, record := range records {
		for _, number := range record.OldHousenumberNumber {
			if !ValidNumberToken(number) {
				report(record.StabsID, "oldHousenumberNumber",
					"malformed number %q", number)
			}
		}
		for _, number := range record.OldHousenumberNeighbouringNumber {
			if !ValidNumberToken(number) {
				report(record.StabsID, "oldHousenumberNeighbouringNumber",
					"malformed neighbouring number %q", number)
			}
		}

		switch {
		case len(record.OldHousenumberNumber) == 0:
			if record.OldHousenumberNumberFirst != "" {
				report(record.StabsID, "oldHousenumberNumberFirst",
					"first number %q without extracted numbers", record.OldHousenumberNumberFirst)
			}
		case record.OldHousenumberNumberFirst != record.OldHousenumberNumber[0]:
			report(record.StabsID, "oldHousenumberNumberFirst",
				"first number %q does not match numbers[0] %q",
				record.OldHousenumberNumberFirst, record.OldHousenumberNumber[0])
		}

		if record.OldHousenumberIsCorrected {
			if _, ok := corrections[record.OldHousenumber]; !ok {
				report(record.StabsID, "oldHousenumberIsCorrected",
					"corrected record %q without matching correction entry", record.OldHousenumber)
			}
		}
		if record.HousenumberFromTitle != "" && !digitsOnlyRe.MatchString(record.HousenumberFromTitle) {
			report(record.StabsID, "housenumberFromTitle",
				"non-numeric title house number %q", record.HousenumberFromTitle)
		}
	}
	return issues
}
