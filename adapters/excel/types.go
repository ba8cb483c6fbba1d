package excel

// Canonical field keys produced by header normalization. Unrecognized
// headers pass through as their lower-cased raw label.
const (
	KeyName               = "name"
	KeyPhone              = "phone"
	KeyEmail              = "email"
	KeyAlternatePhone     = "alternatePhone"
	KeyCity               = "city"
	KeyState              = "state"
	KeyCountry            = "country"
	KeyPincode            = "pincode"
	KeySegment            = "segment"
	KeyLeadSource         = "leadSource"
	KeyInvestmentAmount   = "investmentAmount"
	KeyInvestmentCurrency = "investmentCurrency"
	KeyInvestmentRemark   = "investmentRemark"
	KeyStatus             = "status"
	KeyPriority           = "priority"
	KeyTags               = "tags"
	KeyFollowUpDate       = "followUpDate"
)

// RawRow represents one spreadsheet data row keyed by canonical field key
type RawRow map[string]string

// SheetData is the parsed content of the first worksheet: the
// canonicalized header keys in column order plus all data rows.
// Row i of Rows came from workbook row i+2 (row 1 is the header row).
type SheetData struct {
	Headers []string
	Rows    []RawRow
}

// RowNumber returns the 1-based workbook row for data row index i
func (d *SheetData) RowNumber(i int) int {
	return i + 2
}
