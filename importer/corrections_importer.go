package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"hgbmetadata/enrichment"
)

// ParserConfig holds options for reading the manual correction file.
type ParserConfig struct {
	Delimiter rune         // CSV delimiter (default: comma)
	Encoding  string       // Source encoding (default: utf-8)
	Logger    *slog.Logger // Defaults to slog.Default
}

// DefaultParserConfig returns the configuration for a UTF-8,
// comma-separated correction file.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Delimiter: ',',
		Encoding:  "utf-8",
	}
}

// Column names accepted in the correction file header. The original
// dossierId-keyed layout is accepted alongside the text-keyed one.
var correctionColumns = map[string]string{
	"originaltext":                         "key",
	"oldhousenumber":                       "key",
	"oldhousenumbernumbercorr":             "numbers",
	"oldhousenumberispartofcorr":           "ispartof",
	"oldhousenumberneighbouringnumbercorr": "neighbouring",
	"oldhousenumbersupplementaddition":     "remark",
	"remark":                               "remark",
}

// LoadCorrectionsCSV reads the manual correction table from a CSV file.
// Rows without a key are skipped with a warning; only well-formed rows
// make it into the table.
func LoadCorrectionsCSV(path string, cfg ParserConfig) (enrichment.CorrectionTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corrections file: %w", err)
	}
	defer file.Close()

	reader, err := decodingReader(file, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(reader)
	if cfg.Delimiter != 0 {
		csvReader.Comma = cfg.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse corrections CSV: %w", err)
	}
	return rowsToTable(rows, logger(cfg))
}

// LoadCorrectionsExcel reads the manual correction table from the first
// sheet of an Excel workbook.
func LoadCorrectionsExcel(path string, cfg ParserConfig) (enrichment.CorrectionTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rowsToTable(rows, logger(cfg))
}

// rowsToTable builds the correction table from a header row plus data
// rows. Unknown columns are ignored.
func rowsToTable(rows [][]string, log *slog.Logger) (enrichment.CorrectionTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("corrections file is empty")
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if role, ok := correctionColumns[normalized]; ok {
			if _, exists := columns[role]; !exists {
				columns[role] = i
			}
		}
	}
	keyIdx, ok := columns["key"]
	if !ok {
		return nil, fmt.Errorf("corrections file has no key column (originalText)")
	}

	table := make(enrichment.CorrectionTable)
	for rowNum, row := range rows[1:] {
		key := cell(row, keyIdx)
		if key == "" {
			log.Warn("Skipping correction row without key", "row", rowNum+2)
			continue
		}

		entry := enrichment.CorrectionEntry{OriginalText: key}
		if idx, ok := columns["numbers"]; ok {
			entry.Numbers = parseNumberList(cell(row, idx))
		}
		if idx, ok := columns["ispartof"]; ok {
			entry.IsPartOf = parseOptionalBool(cell(row, idx))
		}
		if idx, ok := columns["neighbouring"]; ok {
			entry.NeighbouringNumber = parseNumberList(cell(row, idx))
		}
		if idx, ok := columns["remark"]; ok {
			entry.Remark = cell(row, idx)
		}
		table[key] = entry
	}
	return table, nil
}

// parseNumberList parses a corrected number list. Both the original
// bracket syntax "['1145', '1146']" and plain "1145, 1146" are accepted.
// An empty value means no correction and yields nil.
func parseNumberList(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var numbers []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `'"`)
		if part != "" {
			numbers = append(numbers, part)
		}
	}
	return numbers
}

// parseOptionalBool parses a corrected boolean; empty means no
// correction and yields nil.
func parseOptionalBool(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "wahr", "1", "ja":
		b := true
		return &b
	case "false", "falsch", "0", "nein":
		b := false
		return &b
	default:
		return nil
	}
}

// decodingReader wraps the file reader with a decoder for legacy
// single-byte encodings still common in hand-maintained CSV files.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported corrections file encoding: %s", encoding)
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func logger(cfg ParserConfig) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}
