package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"leadcrm/adapters/excel"
	"leadcrm/domain/lead"
	"leadcrm/ports"

	"github.com/google/uuid"
)

// ImportParams are the invocation parameters for one bulk import
type ImportParams struct {
	Data       []byte     // workbook bytes
	BranchID   *uuid.UUID // branch every imported lead is attached to
	AssignedTo *uuid.UUID // user every imported lead is assigned to
	CreatedBy  uuid.UUID
	SaveToDB   bool // false = dry run: counts computed, nothing persisted
	BatchLabel string
}

// RowError records why one spreadsheet row was not imported
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ImportResult aggregates the outcome of one bulk import invocation
type ImportResult struct {
	Imported   int          `json:"imported"`
	Duplicates int          `json:"duplicates"`
	Failed     int          `json:"failed"`
	Errors     []RowError   `json:"errors"`
	Leads      []*lead.Lead `json:"leads"`
}

// rowOutcome is the terminal classification of one data row. Exactly
// one outcome is assigned per row.
type rowOutcome struct {
	kind  rowOutcomeKind
	row   int
	lead  *lead.Lead // set for outcomeImported
	phone string     // set for outcomeDuplicate
	email string     // set for outcomeDuplicate
	err   string     // set for outcomeFailed
}

type rowOutcomeKind int

const (
	outcomeImported rowOutcomeKind = iota
	outcomeDuplicate
	outcomeFailed
)

// Row-level error reasons surfaced in the result's error log
const (
	reasonMissingRequired = "Name or phone missing"
	reasonDuplicate       = "Duplicate lead"
)

// ImportService runs the bulk lead import pipeline: header
// reconciliation, per-field normalization, duplicate detection and
// partial-failure accounting. Rows are processed strictly one after
// another so a duplicate within the same batch is detected after the
// first occurrence is inserted.
type ImportService struct {
	leads ports.LeadRepository
}

// NewImportService creates the bulk import service
func NewImportService(leads ports.LeadRepository) *ImportService {
	return &ImportService{leads: leads}
}

// Import processes a workbook upload. Each row succeeds or fails
// independently; only an unreadable workbook or a missing worksheet
// fails the invocation as a whole.
func (s *ImportService) Import(ctx context.Context, params ImportParams) (*ImportResult, error) {
	sheet, err := excel.ReadWorkbook(params.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}

	result := &ImportResult{
		Errors: []RowError{},
		Leads:  []*lead.Lead{},
	}

	for i, row := range sheet.Rows {
		outcome := s.processRow(ctx, sheet.RowNumber(i), row, params)
		s.accumulate(result, outcome, params.SaveToDB)
	}

	log.Printf("[ImportService] batch done: %d imported, %d duplicates, %d failed (dry_run=%v)",
		result.Imported, result.Duplicates, result.Failed, !params.SaveToDB)
	return result, nil
}

// processRow walks one row through required-field check, normalization,
// duplicate lookup and conditional persistence. Any failure is confined
// to this row.
func (s *ImportService) processRow(ctx context.Context, rowNum int, row excel.RawRow, params ImportParams) rowOutcome {
	if row[excel.KeyPhone] == "" || row[excel.KeyName] == "" {
		return rowOutcome{kind: outcomeFailed, row: rowNum, err: reasonMissingRequired}
	}

	phone := lead.NormalizePhone(row[excel.KeyPhone])
	email := lead.NormalizeEmail(row[excel.KeyEmail])

	existing, err := s.leads.FindByPhoneOrEmail(ctx, phone, email)
	if err != nil {
		return rowOutcome{kind: outcomeFailed, row: rowNum, err: err.Error()}
	}
	if existing != nil {
		return rowOutcome{kind: outcomeDuplicate, row: rowNum, phone: phone, email: email}
	}

	l := buildLead(row, phone, email, params)

	if params.SaveToDB {
		if err := s.leads.Create(ctx, l); err != nil {
			return rowOutcome{kind: outcomeFailed, row: rowNum, err: err.Error()}
		}
	}

	return rowOutcome{kind: outcomeImported, row: rowNum, lead: l}
}

// accumulate folds one row outcome into the batch result. Exactly one
// counter moves per row; error entries are appended for every
// duplicate and failure, never for an import.
func (s *ImportService) accumulate(result *ImportResult, o rowOutcome, persisted bool) {
	switch o.kind {
	case outcomeImported:
		result.Imported++
		if persisted {
			result.Leads = append(result.Leads, o.lead)
		}
	case outcomeDuplicate:
		result.Duplicates++
		result.Errors = append(result.Errors, RowError{
			Row:   o.row,
			Error: reasonDuplicate,
			Phone: o.phone,
			Email: o.email,
		})
	case outcomeFailed:
		result.Failed++
		result.Errors = append(result.Errors, RowError{Row: o.row, Error: o.err})
	}
}

// buildLead assembles the full normalized record for one row
func buildLead(row excel.RawRow, phone, email string, params ImportParams) *lead.Lead {
	status := lead.Status(row[excel.KeyStatus])
	if !lead.ValidStatus(status) {
		status = lead.StatusNew
	}
	priority := lead.Priority(row[excel.KeyPriority])
	if !lead.ValidPriority(priority) {
		priority = lead.PriorityMedium
	}
	country := row[excel.KeyCountry]
	if country == "" {
		country = lead.DefaultCountry
	}
	currency := row[excel.KeyInvestmentCurrency]
	if currency == "" {
		currency = lead.DefaultCurrency
	}

	now := time.Now().UTC()
	return &lead.Lead{
		ID: uuid.New(),
		PersonalInfo: lead.PersonalInfo{
			Name:           row[excel.KeyName],
			Email:          email,
			Phone:          phone,
			AlternatePhone: row[excel.KeyAlternatePhone],
			City:           row[excel.KeyCity],
			State:          row[excel.KeyState],
			Country:        country,
			Pincode:        row[excel.KeyPincode],
		},
		Source:  lead.NormalizeSource(row[excel.KeyLeadSource]),
		Segment: lead.NormalizeSegment(row[excel.KeySegment]),
		Investment: lead.InvestmentSize{
			Amount:   lead.NormalizeAmount(row[excel.KeyInvestmentAmount]),
			Currency: currency,
			Remark:   row[excel.KeyInvestmentRemark],
		},
		Status:       status,
		Priority:     priority,
		Tags:         lead.NormalizeTags(row[excel.KeyTags]),
		FollowUpDate: lead.NormalizeDate(row[excel.KeyFollowUpDate]),
		Branch:       params.BranchID,
		AssignedTo:   params.AssignedTo,
		CreatedBy:    params.CreatedBy,
		ImportBatch:  params.BatchLabel,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
