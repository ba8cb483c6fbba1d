package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"leadcrm/domain/lead"
	"leadcrm/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// LeadRepositoryImpl implements LeadRepository for PostgreSQL
type LeadRepositoryImpl struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new PostgreSQL lead repository
func NewLeadRepository(db *sqlx.DB) ports.LeadRepository {
	return &LeadRepositoryImpl{db: db}
}

// leadRow is the flat database projection of a lead
type leadRow struct {
	ID                 uuid.UUID      `db:"id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	Phone              string         `db:"phone"`
	AlternatePhone     string         `db:"alternate_phone"`
	City               string         `db:"city"`
	State              string         `db:"state"`
	Country            string         `db:"country"`
	Pincode            string         `db:"pincode"`
	Source             string         `db:"lead_source"`
	Segment            string         `db:"segment"`
	InvestmentAmount   float64        `db:"investment_amount"`
	InvestmentCurrency string         `db:"investment_currency"`
	InvestmentRemark   string         `db:"investment_remark"`
	Status             string         `db:"status"`
	Priority           string         `db:"priority"`
	Tags               pq.StringArray `db:"tags"`
	FollowUpDate       *time.Time     `db:"follow_up_date"`
	LastContactDate    *time.Time     `db:"last_contact_date"`
	ConversionDate     *time.Time     `db:"conversion_date"`
	ConversionValue    float64        `db:"conversion_value"`
	BranchID           *uuid.UUID     `db:"branch_id"`
	AssignedTo         *uuid.UUID     `db:"assigned_to"`
	CreatedBy          uuid.UUID      `db:"created_by"`
	LastModifiedBy     *uuid.UUID     `db:"last_modified_by"`
	ImportBatch        string         `db:"import_batch"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

const leadColumns = `
	id, name, email, phone, alternate_phone, city, state, country, pincode,
	lead_source, segment, investment_amount, investment_currency, investment_remark,
	status, priority, tags, follow_up_date, last_contact_date, conversion_date,
	conversion_value, branch_id, assigned_to, created_by, last_modified_by,
	import_batch, is_active, created_at, updated_at`

func toRow(l *lead.Lead) leadRow {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return leadRow{
		ID:                 l.ID,
		Name:               l.PersonalInfo.Name,
		Email:              l.PersonalInfo.Email,
		Phone:              l.PersonalInfo.Phone,
		AlternatePhone:     l.PersonalInfo.AlternatePhone,
		City:               l.PersonalInfo.City,
		State:              l.PersonalInfo.State,
		Country:            l.PersonalInfo.Country,
		Pincode:            l.PersonalInfo.Pincode,
		Source:             string(l.Source),
		Segment:            string(l.Segment),
		InvestmentAmount:   l.Investment.Amount,
		InvestmentCurrency: l.Investment.Currency,
		InvestmentRemark:   l.Investment.Remark,
		Status:             string(l.Status),
		Priority:           string(l.Priority),
		Tags:               pq.StringArray(tags),
		FollowUpDate:       l.FollowUpDate,
		LastContactDate:    l.LastContactDate,
		ConversionDate:     l.ConversionDate,
		ConversionValue:    l.ConversionValue,
		BranchID:           l.Branch,
		AssignedTo:         l.AssignedTo,
		CreatedBy:          l.CreatedBy,
		ImportBatch:        l.ImportBatch,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func fromRow(r leadRow) *lead.Lead {
	return &lead.Lead{
		ID: r.ID,
		PersonalInfo: lead.PersonalInfo{
			Name:           r.Name,
			Email:          r.Email,
			Phone:          r.Phone,
			AlternatePhone: r.AlternatePhone,
			City:           r.City,
			State:          r.State,
			Country:        r.Country,
			Pincode:        r.Pincode,
		},
		Source:  lead.Source(r.Source),
		Segment: lead.Segment(r.Segment),
		Investment: lead.InvestmentSize{
			Amount:   r.InvestmentAmount,
			Currency: r.InvestmentCurrency,
			Remark:   r.InvestmentRemark,
		},
		Status:          lead.Status(r.Status),
		Priority:        lead.Priority(r.Priority),
		Tags:            []string(r.Tags),
		FollowUpDate:    r.FollowUpDate,
		LastContactDate: r.LastContactDate,
		ConversionDate:  r.ConversionDate,
		ConversionValue: r.ConversionValue,
		Branch:          r.BranchID,
		AssignedTo:      r.AssignedTo,
		CreatedBy:       r.CreatedBy,
		ImportBatch:     r.ImportBatch,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Create persists a new lead
func (r *LeadRepositoryImpl) Create(ctx context.Context, l *lead.Lead) error {
	row := toRow(l)
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO leads (
			id, name, email, phone, alternate_phone, city, state, country, pincode,
			lead_source, segment, investment_amount, investment_currency, investment_remark,
			status, priority, tags, follow_up_date, branch_id, assigned_to, created_by,
			import_batch, is_active, created_at, updated_at
		) VALUES (
			:id, :name, :email, :phone, :alternate_phone, :city, :state, :country, :pincode,
			:lead_source, :segment, :investment_amount, :investment_currency, :investment_remark,
			:status, :priority, :tags, :follow_up_date, :branch_id, :assigned_to, :created_by,
			:import_batch, :is_active, :created_at, :updated_at
		)
	`, row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return errors.New("duplicate phone: lead already exists")
		}
		return err
	}
	return nil
}

// GetByID retrieves a lead with its notes; returns nil when absent
func (r *LeadRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	var row leadRow
	err := r.db.GetContext(ctx, &row, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	l := fromRow(row)
	notes, err := r.notesForLead(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Notes = notes
	return l, nil
}

// List returns leads matching the filter, newest first
func (r *LeadRepositoryImpl) List(ctx context.Context, filter ports.LeadFilter) ([]*lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE is_active`
	args := []interface{}{}
	n := 0

	addArg := func(clause string, value interface{}) {
		n++
		query += ` AND ` + clause + `$` + strconv.Itoa(n)
		args = append(args, value)
	}

	if filter.BranchID != nil {
		addArg("branch_id = ", *filter.BranchID)
	}
	if filter.AssignedTo != nil {
		addArg("assigned_to = ", *filter.AssignedTo)
	}
	if filter.Status != "" {
		addArg("status = ", string(filter.Status))
	}
	if filter.Priority != "" {
		addArg("priority = ", string(filter.Priority))
	}
	if filter.Source != "" {
		addArg("lead_source = ", string(filter.Source))
	}
	if filter.Segment != "" {
		addArg("segment = ", string(filter.Segment))
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		n++
		query += ` LIMIT $` + strconv.Itoa(n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += ` OFFSET $` + strconv.Itoa(n)
		args = append(args, filter.Offset)
	}

	var rows []leadRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	leads := make([]*lead.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, fromRow(row))
	}
	return leads, nil
}

// Update replaces a lead's mutable columns
func (r *LeadRepositoryImpl) Update(ctx context.Context, l *lead.Lead) error {
	row := toRow(l)
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE leads SET
			name = :name, email = :email, phone = :phone, alternate_phone = :alternate_phone,
			city = :city, state = :state, country = :country, pincode = :pincode,
			lead_source = :lead_source, segment = :segment,
			investment_amount = :investment_amount, investment_currency = :investment_currency,
			investment_remark = :investment_remark, status = :status, priority = :priority,
			tags = :tags, follow_up_date = :follow_up_date, branch_id = :branch_id,
			assigned_to = :assigned_to, import_batch = :import_batch,
			is_active = :is_active, updated_at = NOW()
		WHERE id = :id
	`, row)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a lead; its notes cascade
func (r *LeadRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateStatus changes one lead's workflow status
func (r *LeadRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status, modifiedBy uuid.UUID) (*lead.Lead, error) {
	return r.updateField(ctx, id, `status`, string(status), modifiedBy)
}

// UpdatePriority changes one lead's priority
func (r *LeadRepositoryImpl) UpdatePriority(ctx context.Context, id uuid.UUID, priority lead.Priority, modifiedBy uuid.UUID) (*lead.Lead, error) {
	return r.updateField(ctx, id, `priority`, string(priority), modifiedBy)
}

func (r *LeadRepositoryImpl) updateField(ctx context.Context, id uuid.UUID, column, value string, modifiedBy uuid.UUID) (*lead.Lead, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET `+column+` = $1, last_modified_by = $2, updated_at = NOW() WHERE id = $3`,
		value, modifiedBy, id)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Assign hands a lead to a user; nil unassigns
func (r *LeadRepositoryImpl) Assign(ctx context.Context, id uuid.UUID, userID *uuid.UUID, modifiedBy uuid.UUID) (*lead.Lead, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET assigned_to = $1, last_modified_by = $2, updated_at = NOW() WHERE id = $3`,
		userID, modifiedBy, id)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// BulkAssign hands many leads to one user in a single statement
func (r *LeadRepositoryImpl) BulkAssign(ctx context.Context, ids []uuid.UUID, userID uuid.UUID, modifiedBy uuid.UUID) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET assigned_to = $1, last_modified_by = $2, updated_at = NOW() WHERE id = ANY($3)`,
		userID, modifiedBy, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

// FindByPhoneOrEmail performs the duplicate lookup: phone equality OR
// email equality, the email arm only when email is non-empty. Returns
// nil when no match exists.
func (r *LeadRepositoryImpl) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*lead.Lead, error) {
	var row leadRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE phone = $1 OR ($2 <> '' AND email = $2)
		LIMIT 1
	`, phone, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

// noteRow is the database projection of a lead note
type noteRow struct {
	ID         uuid.UUID  `db:"id"`
	LeadID     uuid.UUID  `db:"lead_id"`
	Content    string     `db:"content"`
	AddedBy    uuid.UUID  `db:"added_by"`
	AddedAt    time.Time  `db:"added_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	NoteType   string     `db:"note_type"`
	NoteStatus string     `db:"note_status"`
}

func (r *LeadRepositoryImpl) notesForLead(ctx context.Context, leadID uuid.UUID) ([]lead.Note, error) {
	var rows []noteRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, lead_id, content, added_by, added_at, updated_at, note_type, note_status
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY added_at
	`, leadID)
	if err != nil {
		return nil, err
	}

	notes := make([]lead.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, lead.Note{
			ID:        row.ID,
			Content:   row.Content,
			AddedBy:   row.AddedBy,
			AddedAt:   row.AddedAt,
			UpdatedAt: row.UpdatedAt,
			Type:      lead.NoteType(row.NoteType),
			Status:    lead.Status(row.NoteStatus),
		})
	}
	return notes, nil
}

// AddNote attaches a note to a lead
func (r *LeadRepositoryImpl) AddNote(ctx context.Context, leadID uuid.UUID, note *lead.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lead_notes (id, lead_id, content, added_by, added_at, note_type, note_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, note.ID, leadID, note.Content, note.AddedBy, note.AddedAt, string(note.Type), string(note.Status))
	return err
}

// UpdateNote edits an existing note
func (r *LeadRepositoryImpl) UpdateNote(ctx context.Context, leadID, noteID uuid.UUID, note *lead.Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lead_notes
		SET content = $1, note_type = $2, note_status = $3, updated_at = NOW()
		WHERE id = $4 AND lead_id = $5
	`, note.Content, string(note.Type), string(note.Status), noteID, leadID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteNote removes a note from a lead
func (r *LeadRepositoryImpl) DeleteNote(ctx context.Context, leadID, noteID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM lead_notes WHERE id = $1 AND lead_id = $2`, noteID, leadID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

