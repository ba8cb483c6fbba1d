package excel

import "strings"

// headerAliases maps lower-cased trimmed raw header labels to canonical
// field keys. Built once; lookups are total.
var headerAliases = map[string]string{
	"name":    KeyName,
	"phone":   KeyPhone,
	"email":   KeyEmail,
	"city":    KeyCity,
	"state":   KeyState,
	"country": KeyCountry,
	"pincode": KeyPincode,
	"segment": KeySegment,

	"leadsource":  KeyLeadSource,
	"lead_source": KeyLeadSource,
	"lead source": KeyLeadSource,

	"investmentamount":   KeyInvestmentAmount,
	"investmentcurrency": KeyInvestmentCurrency,
	"investmentremark":   KeyInvestmentRemark,

	"status":         KeyStatus,
	"priority":       KeyPriority,
	"tags":           KeyTags,
	"followupdate":   KeyFollowUpDate,
	"alternatephone": KeyAlternatePhone,

	// Annotated headers from the downloadable import template
	"tags (comma separated)":    KeyTags,
	"followupdate (yyyy-mm-dd)": KeyFollowUpDate,
}

// CanonicalKey maps a raw header cell to its canonical field key.
// Unrecognized headers fall back to their lower-cased trimmed form so
// unknown columns are carried along rather than dropped.
func CanonicalKey(rawHeader string) string {
	key := strings.ToLower(strings.TrimSpace(rawHeader))
	if canonical, ok := headerAliases[key]; ok {
		return canonical
	}
	return key
}
