package lead

import (
	"strconv"
	"strings"
	"time"
)

// sourceSynonyms maps free-form spreadsheet values to the Source enum.
// Keys are lower-cased with internal whitespace collapsed to underscores.
var sourceSynonyms = map[string]Source{
	"facebook":  SourceFacebook,
	"fb":        SourceFacebook,
	"instagram": SourceInsta,
	"ig":        SourceInsta,
	"google":    SourceGoogle,
	"website":   SourceWebsite,
	"referral":  SourceReferral,
	"cold_call": SourceColdCall,
	"coldcall":  SourceColdCall,
	"linkedin":  SourceLinkedIn,
	"twitter":   SourceTwitter,
}

var validSegments = map[Segment]bool{
	SegmentBankNiftyOption: true,
	SegmentStockFuture:     true,
	SegmentStockEquity:     true,
	SegmentCommodity:       true,
	SegmentForex:           true,
	SegmentCrypto:          true,
	SegmentMutualFunds:     true,
	SegmentOther:           true,
}

// NormalizePhone strips every non-digit character and keeps the last
// 10 digits. Shorter inputs keep all their digits; the result is not
// validated further.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}

// NormalizeEmail trims and lower-cases an email address. An empty
// result means the email is absent.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSource maps a free-form lead source label to the closed
// Source enum. Unrecognized values resolve to SourceOther, never an
// error.
func NormalizeSource(s string) Source {
	key := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
	if src, ok := sourceSynonyms[key]; ok {
		return src
	}
	return SourceOther
}

// NormalizeSegment checks membership against the segment whitelist.
// Non-members resolve to SegmentOther.
func NormalizeSegment(s string) Segment {
	seg := Segment(strings.ToLower(strings.TrimSpace(s)))
	if validSegments[seg] {
		return seg
	}
	return SegmentOther
}

// NormalizeAmount coerces an investment amount; non-numeric input
// becomes 0.
func NormalizeAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeTags splits a comma separated tag list and trims each
// piece. Empty input yields no tags.
func NormalizeTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// followUpDateLayouts are tried in order when parsing follow-up dates
var followUpDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01-02-2006",
	time.RFC3339,
}

// NormalizeDate parses a calendar date. Unparsable or empty input
// yields nil rather than an error.
func NormalizeDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range followUpDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
