package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"exact match", "name", KeyName},
		{"mixed case", "Phone", KeyPhone},
		{"padded", "  Email  ", KeyEmail},
		{"spaced variant", "Lead Source", KeyLeadSource},
		{"underscore variant", "lead_source", KeyLeadSource},
		{"camel variant", "leadSource", KeyLeadSource},
		{"camel amount", "investmentAmount", KeyInvestmentAmount},
		{"template tags header", "Tags (comma separated)", KeyTags},
		{"template date header", "followUpDate (YYYY-MM-DD)", KeyFollowUpDate},
		{"unknown passes through lowered", "Campaign ID", "campaign id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalKey(tt.raw))
		})
	}
}
