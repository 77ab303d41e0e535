package enrichment

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hgbmetadata/extractors"
	"hgbmetadata/normalization"
	"hgbmetadata/stabs"
)

// titleCollisionRemark is recorded when the parsed old house number turns
// out to be the new house number from the title; the parse is discarded in
// that case.
const titleCollisionRemark = "Log: Alte Hausnummer wurde als neue Hausnummer detektiert. Alte Hausnummer wurde nicht aufbereitet."

// EnrichedDossier is one dossier with all derived attributes.
type EnrichedDossier struct {
	stabs.Dossier

	SerieID              string `json:"serieId,omitempty"`
	DossierID            string `json:"dossierId,omitempty"`
	HousenumberFromTitle string `json:"housenumberFromTitle,omitempty"`

	OldHousenumberNumber             []string `json:"oldHousenumberNumber,omitempty"`
	OldHousenumberSupplement         string   `json:"oldHousenumberSupplement,omitempty"`
	OldHousenumberNeighbouringNumber []string `json:"oldHousenumberNeighbouringNumber,omitempty"`
	OldHousenumberIsPartOf           *bool    `json:"oldHousenumberIsPartOf,omitempty"`
	OldHousenumberIsBann             bool     `json:"oldHousenumberIsBann"`
	OldHousenumberIsCorrected        bool     `json:"oldHousenumberIsCorrected"`
	OldHousenumberNumberFirst        string   `json:"oldHousenumberNumberFirst,omitempty"`
}

// Summary describes one enrichment run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	WithParse int           `json:"with_parse"`
	Corrected int           `json:"corrected"`
	Bann      int           `json:"bann"`
	Duration  time.Duration `json:"duration"`
}

// Enricher derives the additional oldHousenumber attributes for dossiers.
// The correction table is read-only; the enricher itself is stateless and
// safe for concurrent use.
type Enricher struct {
	corrections CorrectionTable
	logger      *slog.Logger
}

// NewEnricher creates an enricher with the given manual correction table.
// A nil table disables the correction overlay.
func NewEnricher(corrections CorrectionTable, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{corrections: corrections, logger: logger}
}

// EnrichDossier derives all additional attributes for one dossier:
// house number from the title, parsed oldHousenumber attributes, the
// title cross-check and the manual correction overlay. Malformed input
// degrades to partial output, never to an error.
func (e *Enricher) EnrichDossier(d stabs.Dossier) EnrichedDossier {
	titleNumber := extractors.ExtractHousenumberFromTitle(d.Title)
	parsed := normalization.ParseOldHousenumber(d.OldHousenumber)

	// An old house number matching the new one from the title is a data
	// error in the source; the parse is dropped with a log remark.
	if titleNumber != "" && containsNumber(parsed.Numbers, titleNumber) {
		parsed = normalization.ParsedOldHousenumber{Supplement: titleCollisionRemark}
	}

	corrected := false
	if d.OldHousenumber != "" {
		parsed, corrected = ApplyCorrection(parsed, d.OldHousenumber, e.corrections)
	}

	// Best effort: dossiers with non-standard archive identifiers keep
	// empty project ids. SerieID only reads the serie prefix, so the
	// dossier identifier feeds both derivations.
	serieID, err := stabs.SerieID(d.StabsID)
	if err != nil {
		serieID = ""
	}
	dossierID, err := stabs.DossierID(d.StabsID)
	if err != nil {
		dossierID = ""
	}

	enriched := EnrichedDossier{
		Dossier:                          d,
		SerieID:                          serieID,
		DossierID:                        dossierID,
		HousenumberFromTitle:             titleNumber,
		OldHousenumberNumber:             parsed.Numbers,
		OldHousenumberSupplement:         parsed.Supplement,
		OldHousenumberNeighbouringNumber: parsed.NeighbouringNumber,
		OldHousenumberIsPartOf:           parsed.IsPartOf,
		OldHousenumberIsBann:             parsed.IsBann,
		OldHousenumberIsCorrected:        corrected,
	}
	if len(parsed.Numbers) > 0 {
		enriched.OldHousenumberNumberFirst = parsed.Numbers[0]
	}
	return enriched
}

// EnrichAll maps EnrichDossier over the input. Records are independent;
// order is preserved.
func (e *Enricher) EnrichAll(dossiers []stabs.Dossier) ([]EnrichedDossier, *Summary) {
	summary := &Summary{
		RunID: uuid.NewString(),
		Total: len(dossiers),
	}
	start := time.Now()

	e.logger.Info("Starting dossier enrichment",
		"run_id", summary.RunID,
		"total", summary.Total,
		"corrections", len(e.corrections))

	enriched := make([]EnrichedDossier, 0, len(dossiers))
	for _, d := range dossiers {
		record := e.EnrichDossier(d)
		if len(record.OldHousenumberNumber) > 0 {
			summary.WithParse++
		}
		if record.OldHousenumberIsCorrected {
			summary.Corrected++
		}
		if record.OldHousenumberIsBann {
			summary.Bann++
		}
		enriched = append(enriched, record)
	}

	summary.Duration = time.Since(start)
	e.logger.Info("Dossier enrichment finished",
		"run_id", summary.RunID,
		"with_parse", summary.WithParse,
		"corrected", summary.Corrected,
		"bann", summary.Bann,
		"duration", summary.Duration)
	return enriched, summary
}

func containsNumber(numbers []string, number string) bool {
	for _, n := range numbers {
		if n == number {
			return true
		}
	}
	return false
}
