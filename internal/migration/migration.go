package migration

import (
	"context"

	"leadcrm/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createLeadsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create leads table")
	}
	if err := r.createLeadNotesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create lead_notes table")
	}
	if err := r.createDeviceTokensTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create device_tokens table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createLeadsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL,
			alternate_phone TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT 'India',
			pincode TEXT NOT NULL DEFAULT '',
			lead_source TEXT NOT NULL DEFAULT 'other',
			segment TEXT NOT NULL DEFAULT 'other',
			investment_amount DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (investment_amount >= 0),
			investment_currency TEXT NOT NULL DEFAULT 'INR',
			investment_remark TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			priority TEXT NOT NULL DEFAULT 'medium',
			tags TEXT[] NOT NULL DEFAULT '{}',
			follow_up_date TIMESTAMPTZ,
			last_contact_date TIMESTAMPTZ,
			conversion_date TIMESTAMPTZ,
			conversion_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			branch_id UUID,
			assigned_to UUID,
			created_by UUID NOT NULL,
			last_modified_by UUID,
			import_batch TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createLeadNotesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS lead_notes (
			id UUID PRIMARY KEY,
			lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			added_by UUID NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ,
			note_type TEXT NOT NULL DEFAULT 'general',
			note_status TEXT NOT NULL DEFAULT 'in_progress'
		)
	`)
	return err
}

func (r *MigrationRunner) createDeviceTokensTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS device_tokens (
			token TEXT PRIMARY KEY,
			user_id UUID NOT NULL,
			user_type TEXT NOT NULL DEFAULT 'user',
			platform TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email) WHERE email <> ''`,
		`CREATE INDEX IF NOT EXISTS idx_leads_branch ON leads(branch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_assigned_to ON leads(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_lead_notes_lead ON lead_notes(lead_id)`,
		`CREATE INDEX IF NOT EXISTS idx_device_tokens_user ON device_tokens(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_device_tokens_type ON device_tokens(user_type)`,
		// Store-level duplicate guard: the import pipeline's
		// check-then-insert is not atomic across concurrent requests,
		// so the database enforces phone uniqueness for active leads.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_leads_active_phone ON leads(phone) WHERE is_active`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
