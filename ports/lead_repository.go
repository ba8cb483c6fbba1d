package ports

import (
	"context"

	"leadcrm/domain/lead"

	"github.com/google/uuid"
)

// LeadFilter narrows List queries; nil/zero fields are ignored
type LeadFilter struct {
	BranchID   *uuid.UUID
	AssignedTo *uuid.UUID
	Status     lead.Status
	Priority   lead.Priority
	Source     lead.Source
	Segment    lead.Segment
	Limit      int
	Offset     int
}

// LeadRepository defines the interface for lead storage operations
type LeadRepository interface {
	// Core CRUD operations
	Create(ctx context.Context, l *lead.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*lead.Lead, error)
	Update(ctx context.Context, l *lead.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Field-level updates
	UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status, modifiedBy uuid.UUID) (*lead.Lead, error)
	UpdatePriority(ctx context.Context, id uuid.UUID, priority lead.Priority, modifiedBy uuid.UUID) (*lead.Lead, error)
	Assign(ctx context.Context, id uuid.UUID, userID *uuid.UUID, modifiedBy uuid.UUID) (*lead.Lead, error)
	BulkAssign(ctx context.Context, ids []uuid.UUID, userID uuid.UUID, modifiedBy uuid.UUID) (int, error)

	// Duplicate detection: phone equality OR email equality, the email
	// arm only when email is non-empty
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (*lead.Lead, error)

	// Notes sub-resource
	AddNote(ctx context.Context, leadID uuid.UUID, note *lead.Note) error
	UpdateNote(ctx context.Context, leadID, noteID uuid.UUID, note *lead.Note) error
	DeleteNote(ctx context.Context, leadID, noteID uuid.UUID) error
}
