package enrichment

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the serialization of the enriched dataset.
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// exportHeaders is the column order of the tabular output.
var exportHeaders = []string{
	"stabsId", "title", "houseName", "oldHousenumber", "owner1862",
	"descriptiveNote", "link", "serieId", "dossierId", "housenumberFromTitle",
	"oldHousenumberNumber", "oldHousenumberSupplement",
	"oldHousenumberNeighbouringNumber", "oldHousenumberIsPartOf",
	"oldHousenumberIsBann", "oldHousenumberIsCorrected",
	"oldHousenumberNumberFirst",
}

// exportRow flattens one enriched dossier into the column order of
// exportHeaders. Multi-valued fields are joined with ", ", a nil IsPartOf
// stays empty.
func exportRow(d EnrichedDossier) []string {
	isPartOf := ""
	if d.OldHousenumberIsPartOf != nil {
		isPartOf = fmt.Sprintf("%t", *d.OldHousenumberIsPartOf)
	}
	return []string{
		d.StabsID,
		d.Title,
		d.HouseName,
		d.OldHousenumber,
		d.Owner1862,
		d.DescriptiveNote,
		d.Link,
		d.SerieID,
		d.DossierID,
		d.HousenumberFromTitle,
		strings.Join(d.OldHousenumberNumber, ", "),
		d.OldHousenumberSupplement,
		strings.Join(d.OldHousenumberNeighbouringNumber, ", "),
		isPartOf,
		fmt.Sprintf("%t", d.OldHousenumberIsBann),
		fmt.Sprintf("%t", d.OldHousenumberIsCorrected),
		d.OldHousenumberNumberFirst,
	}
}

// ExportCSV writes the enriched dataset as CSV with a header row.
func ExportCSV(filename string, records []EnrichedDossier) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(exportRow(record)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// ExportJSON writes the enriched dataset as a plain JSON array, one
// object per dossier.
func ExportJSON(filename string, records []EnrichedDossier) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if records == nil {
		records = []EnrichedDossier{}
	}
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportExcel writes the enriched dataset as an Excel workbook.
func ExportExcel(filename string, records []EnrichedDossier) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "HGB Metadaten"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, record := range records {
		for colIdx, value := range exportRow(record) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// Export writes the enriched dataset in the requested format.
func Export(format ExportFormat, filename string, records []EnrichedDossier) error {
	switch format {
	case FormatJSON:
		return ExportJSON(filename, records)
	case FormatCSV:
		return ExportCSV(filename, records)
	case FormatExcel:
		return ExportExcel(filename, records)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
