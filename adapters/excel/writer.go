package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"leadcrm/domain/lead"
)

// templateColumns define the import template sheet, in column order
var templateColumns = []struct {
	Header string
	Width  float64
}{
	{"name", 20},
	{"email", 25},
	{"phone", 15},
	{"alternatePhone", 15},
	{"city", 15},
	{"state", 15},
	{"country", 15},
	{"pincode", 10},
	{"leadSource", 15},
	{"segment", 20},
	{"investmentAmount", 15},
	{"investmentCurrency", 10},
	{"investmentRemark", 25},
	{"status", 15},
	{"priority", 10},
	{"tags (comma separated)", 25},
	{"followUpDate (YYYY-MM-DD)", 15},
}

// WriteTemplate builds the empty import template workbook operators
// fill in before uploading.
func WriteTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range templateColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build template header: %w", err)
		}
		if err := f.SetCellStr(sheet, cell, col.Header); err != nil {
			return nil, fmt.Errorf("failed to write template header: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to size template column: %w", err)
		}
		if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
			return nil, fmt.Errorf("failed to size template column: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteLeads serializes leads into an export workbook
func WriteLeads(leads []*lead.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{
		"Name", "Email", "Phone", "City", "Lead Source",
		"Segment", "Status", "Priority", "Follow Up",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build export header: %w", err)
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for i, l := range leads {
		followUp := ""
		if l.FollowUpDate != nil {
			followUp = l.FollowUpDate.Format("2006-01-02")
		}
		values := []interface{}{
			l.PersonalInfo.Name,
			l.PersonalInfo.Email,
			l.PersonalInfo.Phone,
			l.PersonalInfo.City,
			string(l.Source),
			string(l.Segment),
			string(l.Status),
			string(l.Priority),
			followUp,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address export row %d: %w", i+2, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write export row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return buf.Bytes(), nil
}
