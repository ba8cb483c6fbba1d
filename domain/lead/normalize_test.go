package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted with country code", "+91 98765-43210", "9876543210"},
		{"plain ten digits", "9876543210", "9876543210"},
		{"short number kept whole", "12345", "12345"},
		{"punctuation stripped", "(987) 654-3210", "9876543210"},
		{"more than ten digits keeps last ten", "919876543210", "9876543210"},
		{"empty", "", ""},
		{"letters only", "call me", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", NormalizeEmail("  John@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		input    string
		expected Source
	}{
		{"Facebook", SourceFacebook},
		{"fb", SourceFacebook},
		{"Instagram", SourceInsta},
		{"Cold Call", SourceColdCall},
		{"COLDCALL", SourceColdCall},
		{"LinkedIn", SourceLinkedIn},
		{"bing", SourceOther},
		{"", SourceOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSource(tt.input))
		})
	}
}

func TestNormalizeSegment(t *testing.T) {
	assert.Equal(t, SegmentForex, NormalizeSegment("forex"))
	assert.Equal(t, SegmentForex, NormalizeSegment("  Forex "))
	assert.Equal(t, SegmentOther, NormalizeSegment("bonds"))
	assert.Equal(t, SegmentOther, NormalizeSegment(""))
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, 50000.0, NormalizeAmount("50000"))
	assert.Equal(t, 2500.75, NormalizeAmount(" 2500.75 "))
	assert.Equal(t, 0.0, NormalizeAmount("fifty thousand"))
	assert.Equal(t, 0.0, NormalizeAmount(""))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"hot", "nri", "repeat"}, NormalizeTags("hot, nri ,repeat"))
	assert.Equal(t, []string{"solo"}, NormalizeTags("solo"))
	assert.Nil(t, NormalizeTags("   "))
	assert.Nil(t, NormalizeTags(""))
}

func TestNormalizeDate(t *testing.T) {
	got := NormalizeDate("2026-09-15")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *got)

	got = NormalizeDate("15/09/2026")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, NormalizeDate("next tuesday"))
	assert.Nil(t, NormalizeDate(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusNew))
	assert.True(t, ValidStatus(StatusFollowUp))
	assert.False(t, ValidStatus(Status("archived")))
	assert.False(t, ValidStatus(Status("")))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityUrgent))
	assert.False(t, ValidPriority(Priority("critical")))
}
