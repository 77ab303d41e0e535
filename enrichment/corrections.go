package enrichment

import (
	"strings"

	"hgbmetadata/normalization"
)

// CorrectionEntry is one manually curated correction of the parsed
// oldHousenumber attributes, keyed by the exact original annotation text.
// A nil Numbers/IsPartOf/NeighbouringNumber means the parser output for
// that field stands.
type CorrectionEntry struct {
	OriginalText       string   `json:"originalText"`
	Numbers            []string `json:"numbers,omitempty"`
	IsPartOf           *bool    `json:"isPartOf,omitempty"`
	NeighbouringNumber []string `json:"neighbouringNumber,omitempty"`
	Remark             string   `json:"remark,omitempty"`
}

// CorrectionTable maps original oldHousenumber texts to their manual
// corrections. Loaded once per run and read-only afterwards.
type CorrectionTable map[string]CorrectionEntry

const (
	remarkPrefix       = "manuell erfasste Bemerkung: "
	remarkAppendPrefix = " , zusätzliche manuell erfasste Bemerkung: "
)

// ApplyCorrection merges a manual correction into the parsed attributes.
// A table miss passes parsed through unchanged and reports false. The
// remark append is guarded so that re-applying the same table to already
// corrected output yields identical results.
func ApplyCorrection(parsed normalization.ParsedOldHousenumber, originalText string, table CorrectionTable) (normalization.ParsedOldHousenumber, bool) {
	entry, ok := table[originalText]
	if !ok {
		return parsed, false
	}

	if entry.Numbers != nil {
		parsed.Numbers = entry.Numbers
	}
	if entry.IsPartOf != nil {
		parsed.IsPartOf = entry.IsPartOf
	}
	if entry.NeighbouringNumber != nil {
		parsed.NeighbouringNumber = entry.NeighbouringNumber
	}
	if entry.Remark != "" && !strings.Contains(parsed.Supplement, remarkPrefix+entry.Remark) {
		if parsed.Supplement == "" {
			parsed.Supplement = remarkPrefix + entry.Remark
		} else {
			parsed.Supplement += remarkAppendPrefix + entry.Remark
		}
	}
	return parsed, true
}
