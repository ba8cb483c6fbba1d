package app

import (
	"context"
	"testing"

	"leadcrm/domain/lead"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeadService(repo *fakeLeadRepo) *LeadService {
	// Nil sender keeps the notifier inert in unit tests
	return NewLeadService(repo, NewNotificationService(&fakeTokenRepo{}, nil))
}

func TestLeadServiceCreateAppliesDefaults(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := newTestLeadService(repo)
	creator := uuid.New()

	created, err := svc.Create(context.Background(), &lead.Lead{
		PersonalInfo: lead.PersonalInfo{Name: "Ravi", Phone: "9876543210"},
	}, creator)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, creator, created.CreatedBy)
	assert.Equal(t, lead.StatusNew, created.Status)
	assert.Equal(t, lead.PriorityMedium, created.Priority)
	assert.Equal(t, lead.SourceOther, created.Source)
	assert.Equal(t, lead.SegmentOther, created.Segment)
	assert.Equal(t, lead.DefaultCountry, created.PersonalInfo.Country)
	assert.Equal(t, lead.DefaultCurrency, created.Investment.Currency)
	assert.True(t, created.IsActive)
	require.Len(t, repo.leads, 1)
}

func TestLeadServiceCreateRequiresNameAndPhone(t *testing.T) {
	svc := newTestLeadService(&fakeLeadRepo{})

	_, err := svc.Create(context.Background(), &lead.Lead{
		PersonalInfo: lead.PersonalInfo{Name: "Ravi"},
	}, uuid.New())
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &lead.Lead{
		PersonalInfo: lead.PersonalInfo{Phone: "9876543210"},
	}, uuid.New())
	assert.Error(t, err)
}

func TestLeadServiceGetMissing(t *testing.T) {
	svc := newTestLeadService(&fakeLeadRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "not found")
}

func TestLeadServiceUpdateStatusRejectsUnknown(t *testing.T) {
	svc := newTestLeadService(&fakeLeadRepo{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), lead.Status("archived"), uuid.New())
	assert.ErrorContains(t, err, "unknown lead status")
}

func TestLeadServiceNotes(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := newTestLeadService(repo)
	creator := uuid.New()

	created, err := svc.Create(context.Background(), &lead.Lead{
		PersonalInfo: lead.PersonalInfo{Name: "Ravi", Phone: "9876543210"},
	}, creator)
	require.NoError(t, err)

	note, err := svc.AddNote(context.Background(), created.ID, "spoke on phone", "", lead.StatusInterested, creator)
	require.NoError(t, err)
	assert.Equal(t, lead.NoteGeneral, note.Type)
	assert.Equal(t, lead.StatusInterested, note.Status)

	_, err = svc.AddNote(context.Background(), created.ID, "", lead.NoteCall, "", creator)
	assert.ErrorContains(t, err, "content is required")

	_, err = svc.AddNote(context.Background(), created.ID, "x", lead.NoteType("shoutout"), "", creator)
	assert.ErrorContains(t, err, "unknown note type")
}

func TestLeadServiceBulkAssignRejectsEmpty(t *testing.T) {
	svc := newTestLeadService(&fakeLeadRepo{})

	_, err := svc.BulkAssign(context.Background(), nil, uuid.New(), uuid.New())
	assert.Error(t, err)
}
