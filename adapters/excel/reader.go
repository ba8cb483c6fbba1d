package excel

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook parses an uploaded workbook into structured sheet data.
// Cell values arrive from excelize pre-stringified; they are trimmed
// here so downstream code never sees padding. The whole upload is the
// unit of failure: an unreadable workbook or a workbook without a
// worksheet aborts before any row is produced.
func ReadWorkbook(data []byte) (*SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no worksheet")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	log.Printf("[WorkbookReader] worksheet %q read (%d rows)", sheets[0], len(rows))

	if len(rows) == 0 {
		// Header row absent: nothing to import, but not a structural error.
		return &SheetData{}, nil
	}

	return processRows(rows), nil
}

// processRows canonicalizes the header row and converts each data row
// into a RawRow keyed by canonical field key. When two columns map to
// the same canonical key the later column wins; this matches the
// permissive header handling the import pipeline documents.
func processRows(rows [][]string) *SheetData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = CanonicalKey(header)
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRow)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &SheetData{
		Headers: headers,
		Rows:    dataRows,
	}
}
