package app

import (
	"context"
	"time"

	"leadcrm/domain/lead"
	"leadcrm/internal/errors"
	"leadcrm/ports"

	"github.com/google/uuid"
)

// LeadService handles lead CRUD, notes and workflow updates. Every
// mutating operation triggers the fan-out notifier after it succeeds;
// notification failures never surface to the caller.
type LeadService struct {
	leads    ports.LeadRepository
	notifier *NotificationService
}

// NewLeadService creates the lead service
func NewLeadService(leads ports.LeadRepository, notifier *NotificationService) *LeadService {
	return &LeadService{leads: leads, notifier: notifier}
}

// Create validates and persists a new lead
func (s *LeadService) Create(ctx context.Context, l *lead.Lead, createdBy uuid.UUID) (*lead.Lead, error) {
	if l.PersonalInfo.Name == "" || l.PersonalInfo.Phone == "" {
		return nil, errors.InvalidInput("name and phone are required")
	}
	applyLeadDefaults(l)
	l.ID = uuid.New()
	l.CreatedBy = createdBy
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, errors.Wrap(err, "failed to create lead")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "New Lead Created", l.PersonalInfo.Name, map[string]string{
		"type":    "lead_created",
		"lead_id": l.ID.String(),
	})
	return l, nil
}

// Get returns one lead by id
func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.NotFound("lead")
	}
	return l, nil
}

// List returns leads matching the filter
func (s *LeadService) List(ctx context.Context, filter ports.LeadFilter) ([]*lead.Lead, error) {
	return s.leads.List(ctx, filter)
}

// Update replaces a lead's mutable fields
func (s *LeadService) Update(ctx context.Context, l *lead.Lead, modifiedBy uuid.UUID) (*lead.Lead, error) {
	existing, err := s.Get(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.CreatedBy = existing.CreatedBy
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = time.Now().UTC()
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, errors.Wrap(err, "failed to update lead")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Updated", l.PersonalInfo.Name, map[string]string{
		"type":    "lead_updated",
		"lead_id": l.ID.String(),
	})
	return l, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.leads.Delete(ctx, id)
}

// UpdateStatus moves a lead to a new workflow status
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status, modifiedBy uuid.UUID) (*lead.Lead, error) {
	if !lead.ValidStatus(status) {
		return nil, errors.InvalidInput("unknown lead status")
	}
	l, err := s.leads.UpdateStatus(ctx, id, status, modifiedBy)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.NotFound("lead")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Status Updated", "Status changed to "+string(status), map[string]string{
		"type":    "lead_status_updated",
		"lead_id": id.String(),
		"status":  string(status),
	})
	return l, nil
}

// UpdatePriority changes a lead's priority
func (s *LeadService) UpdatePriority(ctx context.Context, id uuid.UUID, priority lead.Priority, modifiedBy uuid.UUID) (*lead.Lead, error) {
	if !lead.ValidPriority(priority) {
		return nil, errors.InvalidInput("unknown lead priority")
	}
	l, err := s.leads.UpdatePriority(ctx, id, priority, modifiedBy)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.NotFound("lead")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Priority Updated", "Priority changed to "+string(priority), map[string]string{
		"type":     "lead_priority_updated",
		"lead_id":  id.String(),
		"priority": string(priority),
	})
	return l, nil
}

// Assign hands a lead to a user; a nil userID unassigns it
func (s *LeadService) Assign(ctx context.Context, id uuid.UUID, userID *uuid.UUID, modifiedBy uuid.UUID) (*lead.Lead, error) {
	l, err := s.leads.Assign(ctx, id, userID, modifiedBy)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.NotFound("lead")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Assigned", l.PersonalInfo.Name, map[string]string{
		"type":    "lead_assigned",
		"lead_id": id.String(),
	})
	return l, nil
}

// BulkAssign hands a set of leads to one user and returns how many
// records were actually updated
func (s *LeadService) BulkAssign(ctx context.Context, ids []uuid.UUID, userID, modifiedBy uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, errors.InvalidInput("no lead ids given")
	}
	return s.leads.BulkAssign(ctx, ids, userID, modifiedBy)
}

// AddNote attaches a note to a lead
func (s *LeadService) AddNote(ctx context.Context, leadID uuid.UUID, content string, noteType lead.NoteType, status lead.Status, addedBy uuid.UUID) (*lead.Note, error) {
	if content == "" {
		return nil, errors.InvalidInput("note content is required")
	}
	if noteType == "" {
		noteType = lead.NoteGeneral
	}
	if !lead.ValidNoteType(noteType) {
		return nil, errors.InvalidInput("unknown note type")
	}

	l, err := s.Get(ctx, leadID)
	if err != nil {
		return nil, err
	}

	note := &lead.Note{
		ID:      uuid.New(),
		Content: content,
		AddedBy: addedBy,
		AddedAt: time.Now().UTC(),
		Type:    noteType,
		Status:  status,
	}
	if err := s.leads.AddNote(ctx, leadID, note); err != nil {
		return nil, errors.Wrap(err, "failed to add note")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Note Added", truncate(content, 80), map[string]string{
		"type":    "lead_note_added",
		"lead_id": leadID.String(),
		"note_id": note.ID.String(),
	})
	return note, nil
}

// UpdateNote edits an existing note on a lead
func (s *LeadService) UpdateNote(ctx context.Context, leadID, noteID uuid.UUID, content string, noteType lead.NoteType, status lead.Status, modifiedBy uuid.UUID) (*lead.Note, error) {
	l, err := s.Get(ctx, leadID)
	if err != nil {
		return nil, err
	}

	var target *lead.Note
	for i := range l.Notes {
		if l.Notes[i].ID == noteID {
			target = &l.Notes[i]
			break
		}
	}
	if target == nil {
		return nil, errors.NotFound("note")
	}

	if content != "" {
		target.Content = content
	}
	if noteType != "" {
		if !lead.ValidNoteType(noteType) {
			return nil, errors.InvalidInput("unknown note type")
		}
		target.Type = noteType
	}
	if status != "" {
		target.Status = status
	}
	now := time.Now().UTC()
	target.UpdatedAt = &now

	if err := s.leads.UpdateNote(ctx, leadID, noteID, target); err != nil {
		return nil, errors.Wrap(err, "failed to update note")
	}

	s.notifier.NotifyLeadUsers(ctx, l, "Lead Note Updated", truncate(target.Content, 80), map[string]string{
		"type":    "lead_note_updated",
		"lead_id": leadID.String(),
		"note_id": noteID.String(),
	})
	return target, nil
}

// DeleteNote removes a note from a lead
func (s *LeadService) DeleteNote(ctx context.Context, leadID, noteID uuid.UUID, modifiedBy uuid.UUID) error {
	l, err := s.Get(ctx, leadID)
	if err != nil {
		return err
	}
	found := false
	for i := range l.Notes {
		if l.Notes[i].ID == noteID {
			found = true
			break
		}
	}
	if !found {
		return errors.NotFound("note")
	}
	if err := s.leads.DeleteNote(ctx, leadID, noteID); err != nil {
		return errors.Wrap(err, "failed to delete note")
	}
	return nil
}

// applyLeadDefaults fills enum and locale defaults for a new lead
func applyLeadDefaults(l *lead.Lead) {
	if l.Source == "" {
		l.Source = lead.SourceOther
	}
	if l.Segment == "" {
		l.Segment = lead.SegmentOther
	}
	if l.Status == "" || !lead.ValidStatus(l.Status) {
		l.Status = lead.StatusNew
	}
	if l.Priority == "" || !lead.ValidPriority(l.Priority) {
		l.Priority = lead.PriorityMedium
	}
	if l.PersonalInfo.Country == "" {
		l.PersonalInfo.Country = lead.DefaultCountry
	}
	if l.Investment.Currency == "" {
		l.Investment.Currency = lead.DefaultCurrency
	}
	l.IsActive = true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
