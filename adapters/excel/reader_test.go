package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook serializes rows into an in-memory xlsx file
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Name", "Phone", "Lead Source", "Campaign ID"},
		{"  Ravi Kumar  ", "+91 9876543210", "Facebook", "c-42"},
		{"Priya", "9123456780", "", ""},
	})

	sheet, err := ReadWorkbook(data)
	require.NoError(t, err)

	assert.Equal(t, []string{KeyName, KeyPhone, KeyLeadSource, "campaign id"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	// Cell padding is stripped during parsing
	assert.Equal(t, "Ravi Kumar", sheet.Rows[0][KeyName])
	assert.Equal(t, "+91 9876543210", sheet.Rows[0][KeyPhone])
	assert.Equal(t, "Facebook", sheet.Rows[0][KeyLeadSource])
	assert.Equal(t, "c-42", sheet.Rows[0]["campaign id"])

	assert.Equal(t, 2, sheet.RowNumber(0))
	assert.Equal(t, 3, sheet.RowNumber(1))
}

func TestReadWorkbookDuplicateColumnLastWins(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"phone", "Phone"},
		{"1111111111", "2222222222"},
	})

	sheet, err := ReadWorkbook(data)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "2222222222", sheet.Rows[0][KeyPhone])
}

func TestReadWorkbookHeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "phone"},
	})

	sheet, err := ReadWorkbook(data)
	require.NoError(t, err)
	assert.Empty(t, sheet.Rows)
}

func TestReadWorkbookInvalidBytes(t *testing.T) {
	_, err := ReadWorkbook([]byte("this is not a workbook"))
	assert.Error(t, err)
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	data, err := WriteTemplate()
	require.NoError(t, err)

	sheet, err := ReadWorkbook(data)
	require.NoError(t, err)

	// Every template column must canonicalize to a known field key so a
	// filled template re-imports without losing columns.
	assert.Contains(t, sheet.Headers, KeyName)
	assert.Contains(t, sheet.Headers, KeyPhone)
	assert.Contains(t, sheet.Headers, KeyLeadSource)
	assert.Contains(t, sheet.Headers, KeyTags)
	assert.Contains(t, sheet.Headers, KeyFollowUpDate)
	assert.Contains(t, sheet.Headers, KeyAlternatePhone)
	assert.Empty(t, sheet.Rows)
}
