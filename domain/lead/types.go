package lead

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies the marketing channel a lead came from
type Source string

const (
	SourceFacebook Source = "fb"
	SourceInsta    Source = "ig"
	SourceGoogle   Source = "google"
	SourceWebsite  Source = "website"
	SourceReferral Source = "referral"
	SourceColdCall Source = "cold_call"
	SourceLinkedIn Source = "linkedin"
	SourceTwitter  Source = "twitter"
	SourceOther    Source = "other"
)

// Segment is the investment product segment a lead is interested in
type Segment string

const (
	SegmentBankNiftyOption Segment = "bank_nifty_option"
	SegmentStockFuture     Segment = "stock_future"
	SegmentStockEquity     Segment = "stock_equity"
	SegmentCommodity       Segment = "commodity"
	SegmentForex           Segment = "forex"
	SegmentCrypto          Segment = "crypto"
	SegmentMutualFunds     Segment = "mutual_funds"
	SegmentOther           Segment = "other"
)

// Status represents the workflow state of a lead
type Status string

const (
	StatusUnassigned    Status = "unassigned"
	StatusNew           Status = "new"
	StatusInProgress    Status = "in_progress"
	StatusInterested    Status = "interested"
	StatusNotInterested Status = "not_interested"
	StatusFollowUp      Status = "follow_up"
	StatusConverted     Status = "converted"
	StatusDropped       Status = "dropped"
)

// Priority represents how urgently a lead should be worked
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// NoteType categorizes a note attached to a lead
type NoteType string

const (
	NoteGeneral   NoteType = "general"
	NoteFollowUp  NoteType = "follow_up"
	NoteMeeting   NoteType = "meeting"
	NoteCall      NoteType = "call"
	NoteEmail     NoteType = "email"
	NoteImportant NoteType = "important"
)

// PersonalInfo groups the contact and location details of a lead
type PersonalInfo struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Country        string `json:"country,omitempty"`
	Pincode        string `json:"pincode,omitempty"`
}

// InvestmentSize captures how much a lead is willing to invest
type InvestmentSize struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Remark   string  `json:"remark,omitempty"`
}

// Note is a timestamped remark a user attached to a lead
type Note struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	AddedBy   uuid.UUID  `json:"added_by"`
	AddedAt   time.Time  `json:"added_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Type      NoteType   `json:"type"`
	Status    Status     `json:"status"`
}

// Lead represents a prospect record with contact info, classification
// and workflow state
type Lead struct {
	ID uuid.UUID `json:"id"`

	PersonalInfo PersonalInfo `json:"personal_info"`

	Source  Source  `json:"lead_source"`
	Segment Segment `json:"segment"`

	Investment InvestmentSize `json:"investment_size"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	Notes []Note   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	LastContactDate *time.Time `json:"last_contact_date,omitempty"`
	ConversionDate  *time.Time `json:"conversion_date,omitempty"`
	ConversionValue float64    `json:"conversion_value,omitempty"`

	Branch     *uuid.UUID `json:"branch,omitempty"`
	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`
	CreatedBy  uuid.UUID  `json:"created_by"`

	ImportBatch string `json:"import_batch,omitempty"`
	IsActive    bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Defaults applied when a field is absent from input
const (
	DefaultCountry  = "India"
	DefaultCurrency = "INR"
)

// ValidStatus reports whether s is a member of the status enum
func ValidStatus(s Status) bool {
	switch s {
	case StatusUnassigned, StatusNew, StatusInProgress, StatusInterested,
		StatusNotInterested, StatusFollowUp, StatusConverted, StatusDropped:
		return true
	}
	return false
}

// ValidPriority reports whether p is a member of the priority enum
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidNoteType reports whether t is a member of the note type enum
func ValidNoteType(t NoteType) bool {
	switch t {
	case NoteGeneral, NoteFollowUp, NoteMeeting, NoteCall, NoteEmail, NoteImportant:
		return true
	}
	return false
}
