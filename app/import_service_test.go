package app

import (
	"context"
	"fmt"
	"testing"

	"leadcrm/domain/lead"
	"leadcrm/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeLeadRepo is an in-memory stand-in for the postgres repository.
// failPhones simulates store-level rejections for specific rows.
type fakeLeadRepo struct {
	leads      []*lead.Lead
	failPhones map[string]error
	findErr    error
	creates    int
}

func (f *fakeLeadRepo) Create(ctx context.Context, l *lead.Lead) error {
	f.creates++
	if err, ok := f.failPhones[l.PersonalInfo.Phone]; ok {
		return err
	}
	f.leads = append(f.leads, l)
	return nil
}

func (f *fakeLeadRepo) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*lead.Lead, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, l := range f.leads {
		if l.PersonalInfo.Phone == phone {
			return l, nil
		}
		if email != "" && l.PersonalInfo.Email == email {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) List(ctx context.Context, filter ports.LeadFilter) ([]*lead.Lead, error) {
	return f.leads, nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, l *lead.Lead) error { return nil }
func (f *fakeLeadRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeLeadRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status, modifiedBy uuid.UUID) (*lead.Lead, error) {
	l, _ := f.GetByID(ctx, id)
	if l != nil {
		l.Status = status
	}
	return l, nil
}

func (f *fakeLeadRepo) UpdatePriority(ctx context.Context, id uuid.UUID, priority lead.Priority, modifiedBy uuid.UUID) (*lead.Lead, error) {
	l, _ := f.GetByID(ctx, id)
	if l != nil {
		l.Priority = priority
	}
	return l, nil
}

func (f *fakeLeadRepo) Assign(ctx context.Context, id uuid.UUID, userID *uuid.UUID, modifiedBy uuid.UUID) (*lead.Lead, error) {
	l, _ := f.GetByID(ctx, id)
	if l != nil {
		l.AssignedTo = userID
	}
	return l, nil
}

func (f *fakeLeadRepo) BulkAssign(ctx context.Context, ids []uuid.UUID, userID uuid.UUID, modifiedBy uuid.UUID) (int, error) {
	return len(ids), nil
}

func (f *fakeLeadRepo) AddNote(ctx context.Context, leadID uuid.UUID, note *lead.Note) error {
	l, _ := f.GetByID(ctx, leadID)
	if l != nil {
		l.Notes = append(l.Notes, *note)
	}
	return nil
}

func (f *fakeLeadRepo) UpdateNote(ctx context.Context, leadID, noteID uuid.UUID, note *lead.Note) error {
	return nil
}

func (f *fakeLeadRepo) DeleteNote(ctx context.Context, leadID, noteID uuid.UUID) error {
	return nil
}

// workbookBytes serializes rows into an in-memory xlsx upload
func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var importHeader = []interface{}{
	"name", "phone", "email", "leadSource", "segment",
	"investmentAmount", "status", "priority", "tags", "followUpDate",
}

func importRow(name, phone, email, source, segment, amount, status, priority, tags, followUp string) []interface{} {
	return []interface{}{name, phone, email, source, segment, amount, status, priority, tags, followUp}
}

func TestImportMixedBatch(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Ravi Kumar", "+91 98765-43210", "Ravi@Example.COM", "Facebook", "forex", "50000", "", "", "hot,nri", "2026-09-15"),
		importRow("", "9123456780", "", "", "", "", "", "", "", ""),
		importRow("Priya", "", "priya@example.com", "", "", "", "", "", "", ""),
		importRow("Ravi Again", "9876543210", "", "google", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{
		Data:      data,
		CreatedBy: uuid.New(),
		SaveToDB:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 4, result.Imported+result.Duplicates+result.Failed)

	require.Len(t, result.Errors, 3)
	assert.Equal(t, RowError{Row: 3, Error: "Name or phone missing"}, result.Errors[0])
	assert.Equal(t, RowError{Row: 4, Error: "Name or phone missing"}, result.Errors[1])
	assert.Equal(t, RowError{Row: 5, Error: "Duplicate lead", Phone: "9876543210"}, result.Errors[2])

	require.Len(t, result.Leads, 1)
	imported := result.Leads[0]
	assert.Equal(t, "Ravi Kumar", imported.PersonalInfo.Name)
	assert.Equal(t, "9876543210", imported.PersonalInfo.Phone)
	assert.Equal(t, "ravi@example.com", imported.PersonalInfo.Email)
	assert.Equal(t, lead.SourceFacebook, imported.Source)
	assert.Equal(t, lead.SegmentForex, imported.Segment)
	assert.Equal(t, 50000.0, imported.Investment.Amount)
	assert.Equal(t, lead.DefaultCurrency, imported.Investment.Currency)
	assert.Equal(t, lead.DefaultCountry, imported.PersonalInfo.Country)
	assert.Equal(t, lead.StatusNew, imported.Status)
	assert.Equal(t, lead.PriorityMedium, imported.Priority)
	assert.Equal(t, []string{"hot", "nri"}, imported.Tags)
	require.NotNil(t, imported.FollowUpDate)
	assert.True(t, imported.IsActive)
}

func TestImportDuplicateAgainstExistingStore(t *testing.T) {
	repo := &fakeLeadRepo{leads: []*lead.Lead{{
		ID:           uuid.New(),
		PersonalInfo: lead.PersonalInfo{Name: "Existing", Phone: "9876543210", Email: "old@example.com"},
	}}}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Phone Match", "9876543210", "", "", "", "", "", "", "", ""),
		importRow("Email Match", "9000000000", "OLD@example.com", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{Data: data, CreatedBy: uuid.New(), SaveToDB: true})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, len(repo.leads))
}

func TestImportDryRunPersistsNothing(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Ravi", "9876543210", "", "", "", "", "", "", "", ""),
		importRow("Priya", "9123456780", "", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{Data: data, CreatedBy: uuid.New(), SaveToDB: false})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, repo.creates)
	assert.Empty(t, result.Leads)
}

func TestImportMissingPhoneSkipsDuplicateCheck(t *testing.T) {
	repo := &fakeLeadRepo{findErr: fmt.Errorf("lookup should not run")}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("No Phone", "", "np@example.com", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{Data: data, CreatedBy: uuid.New(), SaveToDB: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Name or phone missing", result.Errors[0].Error)
}

func TestImportStoreRejectionBecomesRowFailure(t *testing.T) {
	repo := &fakeLeadRepo{failPhones: map[string]error{
		"9876543210": fmt.Errorf("duplicate phone: lead already exists"),
	}}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Racer", "9876543210", "", "", "", "", "", "", "", ""),
		importRow("Clean", "9123456780", "", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{Data: data, CreatedBy: uuid.New(), SaveToDB: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "duplicate phone: lead already exists", result.Errors[0].Error)
}

func TestImportLookupErrorFailsOnlyThatRow(t *testing.T) {
	repo := &fakeLeadRepo{findErr: fmt.Errorf("connection reset")}
	svc := NewImportService(repo)

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Ravi", "9876543210", "", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{Data: data, CreatedBy: uuid.New(), SaveToDB: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "connection reset", result.Errors[0].Error)
}

func TestImportInvalidWorkbookIsBatchError(t *testing.T) {
	svc := NewImportService(&fakeLeadRepo{})

	_, err := svc.Import(context.Background(), ImportParams{Data: []byte("garbage"), SaveToDB: true})
	assert.Error(t, err)
}

func TestImportAssignsBatchFields(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := NewImportService(repo)

	branch := uuid.New()
	assignee := uuid.New()
	creator := uuid.New()

	data := workbookBytes(t, [][]interface{}{
		importHeader,
		importRow("Ravi", "9876543210", "", "", "", "", "", "", "", ""),
	})

	result, err := svc.Import(context.Background(), ImportParams{
		Data:       data,
		BranchID:   &branch,
		AssignedTo: &assignee,
		CreatedBy:  creator,
		SaveToDB:   true,
		BatchLabel: "sept-fair",
	})
	require.NoError(t, err)

	require.Len(t, result.Leads, 1)
	l := result.Leads[0]
	require.NotNil(t, l.Branch)
	assert.Equal(t, branch, *l.Branch)
	require.NotNil(t, l.AssignedTo)
	assert.Equal(t, assignee, *l.AssignedTo)
	assert.Equal(t, creator, l.CreatedBy)
	assert.Equal(t, "sept-fair", l.ImportBatch)
}
