package salaryhold_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"saral-hr/internal/salaryhold"
	salaryholderrors "saral-hr/internal/salaryhold/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type slipMark struct {
	slipID        string
	onHold        bool
	holdReason    *string
	releaseReason *string
}

type fakeRepo struct {
	holds   map[string]*salaryhold.SalaryHold
	links   map[string]*salaryhold.LinkRef
	slips   map[string]*salaryhold.SlipRef
	created []*salaryhold.SalaryHold
	updated []*salaryhold.SalaryHold
	marks   []slipMark

	findActiveFn func(linkID, excludeID string) (*salaryhold.SalaryHold, error)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		holds: map[string]*salaryhold.SalaryHold{},
		links: map[string]*salaryhold.LinkRef{},
		slips: map[string]*salaryhold.SlipRef{},
	}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) salaryhold.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, hold *salaryhold.SalaryHold) error {
	f.created = append(f.created, hold)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, hold *salaryhold.SalaryHold) error {
	f.updated = append(f.updated, hold)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeRepo) FindByID(ctx context.Context, companyIDs []string, id string) (*salaryhold.SalaryHold, error) {
	hold, ok := f.holds[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return hold, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, companyIDs []string, filter salaryhold.HoldFilter) ([]salaryhold.SalaryHold, error) {
	return nil, nil
}

func (f *fakeRepo) FindActive(ctx context.Context, linkID, excludeID string) (*salaryhold.SalaryHold, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(linkID, excludeID)
	}
	return nil, nil
}

func (f *fakeRepo) FindLink(ctx context.Context, linkID string) (*salaryhold.LinkRef, error) {
	link, ok := f.links[linkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func (f *fakeRepo) FindSlip(ctx context.Context, slipID string) (*salaryhold.SlipRef, error) {
	slip, ok := f.slips[slipID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return slip, nil
}

func (f *fakeRepo) FindSlips(ctx context.Context, linkID string, start *time.Time) ([]salaryhold.SlipRef, error) {
	return nil, nil
}

func (f *fakeRepo) SetSlipHold(ctx context.Context, slipID string, onHold bool, holdReason, releaseReason *string) error {
	f.marks = append(f.marks, slipMark{slipID: slipID, onHold: onHold, holdReason: holdReason, releaseReason: releaseReason})
	return nil
}

func newService(t *testing.T, repo *fakeRepo) (salaryhold.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return salaryhold.NewService(db, repo), mock
}

var companyID = uuid.New()

func addLink(repo *fakeRepo) *salaryhold.LinkRef {
	link := &salaryhold.LinkRef{ID: uuid.New(), CompanyID: companyID, FullName: "Asha Rao", IsActive: true}
	repo.links[link.ID.String()] = link
	return link
}

func submittedHold(repo *fakeRepo, link *salaryhold.LinkRef, slipID *uuid.UUID) *salaryhold.SalaryHold {
	hold := &salaryhold.SalaryHold{
		ID:            uuid.New(),
		CompanyID:     companyID,
		CompanyLinkID: link.ID,
		Link:          link,
		SalarySlipID:  slipID,
		Year:          2025,
		Month:         "March",
		HoldDate:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		HoldReason:    "Exit formalities pending",
		Status:        salaryhold.StatusOnHold,
		DocStatus:     salaryhold.DocSubmitted,
	}
	repo.holds[hold.ID.String()] = hold
	return hold
}

func TestCreate(t *testing.T) {
	companies := []string{companyID.String()}

	t.Run("rejects second active hold", func(t *testing.T) {
		repo := newFakeRepo()
		link := addLink(repo)
		existing := submittedHold(repo, link, nil)
		repo.findActiveFn = func(linkID, excludeID string) (*salaryhold.SalaryHold, error) {
			return existing, nil
		}
		svc, mock := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), companies, "user-1", salaryhold.CreateHoldRequest{
			Employee: link.ID.String(), Year: 2025, Month: "April", HoldDate: "2025-04-01", HoldReason: "Audit",
		})
		assert.ErrorIs(t, err, salaryholderrors.ErrAlreadyOnHold)
		assert.Contains(t, err.Error(), "Employee Asha Rao already has an active Salary Hold: "+existing.ID.String())
		assert.Empty(t, repo.created)
	})

	t.Run("slip must belong to employee", func(t *testing.T) {
		repo := newFakeRepo()
		link := addLink(repo)
		slip := &salaryhold.SlipRef{ID: uuid.New(), CompanyLinkID: uuid.New(), Status: "Draft"}
		repo.slips[slip.ID.String()] = slip
		svc, mock := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), companies, "user-1", salaryhold.CreateHoldRequest{
			Employee: link.ID.String(), SalarySlip: slip.ID.String(), Year: 2025, Month: "April",
			HoldDate: "2025-04-01", HoldReason: "Audit",
		})
		assert.ErrorIs(t, err, salaryholderrors.ErrSlipNotForEmployee)
	})

	t.Run("creates draft on hold", func(t *testing.T) {
		repo := newFakeRepo()
		link := addLink(repo)
		svc, mock := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), companies, "user-1", salaryhold.CreateHoldRequest{
			Employee: link.ID.String(), Year: 2025, Month: "4", HoldDate: "2025-04-01", HoldReason: " Audit ",
		})
		require.NoError(t, err)
		assert.Equal(t, salaryhold.StatusOnHold, resp.Status)
		assert.Equal(t, salaryhold.DocDraft, resp.DocStatus)
		assert.Equal(t, "April", resp.Month)
		assert.Equal(t, "Audit", resp.HoldReason)
		assert.Equal(t, "Asha Rao", resp.EmployeeName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("forbidden company", func(t *testing.T) {
		repo := newFakeRepo()
		link := addLink(repo)
		svc, mock := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), []string{uuid.NewString()}, "", salaryhold.CreateHoldRequest{
			Employee: link.ID.String(), Year: 2025, Month: "April", HoldDate: "2025-04-01", HoldReason: "Audit",
		})
		assert.ErrorIs(t, err, salaryholderrors.ErrForbidden)
	})
}

func TestSubmit_MarksSlip(t *testing.T) {
	repo := newFakeRepo()
	link := addLink(repo)
	slipID := uuid.New()
	hold := submittedHold(repo, link, &slipID)
	hold.DocStatus = salaryhold.DocDraft
	svc, mock := newService(t, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(context.Background(), []string{companyID.String()}, hold.ID.String())
	require.NoError(t, err)
	assert.Equal(t, salaryhold.DocSubmitted, resp.DocStatus)
	require.Len(t, repo.marks, 1)
	assert.Equal(t, slipID.String(), repo.marks[0].slipID)
	assert.True(t, repo.marks[0].onHold)
	require.NotNil(t, repo.marks[0].holdReason)
	assert.Equal(t, "Exit formalities pending", *repo.marks[0].holdReason)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Submit(context.Background(), []string{companyID.String()}, hold.ID.String())
	assert.ErrorIs(t, err, salaryholderrors.ErrSubmitOnlyDraft)
}

func TestRelease_Validation(t *testing.T) {
	tests := []struct {
		name      string
		docStatus string
		status    string
		req       salaryhold.ReleaseRequest
		wantErr   error
	}{
		{
			name:      "draft cannot be released",
			docStatus: salaryhold.DocDraft,
			status:    salaryhold.StatusOnHold,
			req:       salaryhold.ReleaseRequest{ReleaseDate: "2025-03-20", ReleaseReason: "Cleared"},
			wantErr:   salaryholderrors.ErrReleaseOnlySubmitted,
		},
		{
			name:      "already released",
			docStatus: salaryhold.DocSubmitted,
			status:    salaryhold.StatusReleased,
			req:       salaryhold.ReleaseRequest{ReleaseDate: "2025-03-20", ReleaseReason: "Cleared"},
			wantErr:   salaryholderrors.ErrAlreadyReleased,
		},
		{
			name:      "release date required",
			docStatus: salaryhold.DocSubmitted,
			status:    salaryhold.StatusOnHold,
			req:       salaryhold.ReleaseRequest{ReleaseReason: "Cleared"},
			wantErr:   salaryholderrors.ErrReleaseDateRequired,
		},
		{
			name:      "release reason required",
			docStatus: salaryhold.DocSubmitted,
			status:    salaryhold.StatusOnHold,
			req:       salaryhold.ReleaseRequest{ReleaseDate: "2025-03-20", ReleaseReason: "  "},
			wantErr:   salaryholderrors.ErrReleaseReasonRequired,
		},
		{
			name:      "release before hold date",
			docStatus: salaryhold.DocSubmitted,
			status:    salaryhold.StatusOnHold,
			req:       salaryhold.ReleaseRequest{ReleaseDate: "2025-03-09", ReleaseReason: "Cleared"},
			wantErr:   salaryholderrors.ErrReleaseBeforeHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			hold := submittedHold(repo, addLink(repo), nil)
			hold.DocStatus = tt.docStatus
			hold.Status = tt.status
			svc, mock := newService(t, repo)
			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := svc.Release(context.Background(), []string{companyID.String()}, "user-1", hold.ID.String(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRelease_AmendsAndClearsSlip(t *testing.T) {
	repo := newFakeRepo()
	slipID := uuid.New()
	original := submittedHold(repo, addLink(repo), &slipID)
	svc, mock := newService(t, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Release(context.Background(), []string{companyID.String()}, "user-1", original.ID.String(),
		salaryhold.ReleaseRequest{ReleaseDate: "2025-03-10", ReleaseReason: "Documents received"})
	require.NoError(t, err)

	assert.Equal(t, salaryhold.StatusWasOnHold, original.Status)
	assert.Equal(t, salaryhold.DocCancelled, original.DocStatus)

	require.Len(t, repo.created, 1)
	amended := repo.created[0]
	assert.Equal(t, salaryhold.StatusReleased, amended.Status)
	assert.Equal(t, salaryhold.DocSubmitted, amended.DocStatus)
	require.NotNil(t, amended.AmendedFromID)
	assert.Equal(t, original.ID, *amended.AmendedFromID)
	assert.Equal(t, original.HoldReason, amended.HoldReason)

	assert.Equal(t, salaryhold.StatusReleased, resp.Status)
	require.NotNil(t, resp.ReleaseDate)
	assert.Equal(t, "2025-03-10", *resp.ReleaseDate)
	require.NotNil(t, resp.AmendedFrom)
	assert.Equal(t, original.ID.String(), *resp.AmendedFrom)

	require.Len(t, repo.marks, 1)
	assert.False(t, repo.marks[0].onHold)
	assert.Nil(t, repo.marks[0].holdReason)
	require.NotNil(t, repo.marks[0].releaseReason)
	assert.Equal(t, "Documents received", *repo.marks[0].releaseReason)
}

func TestActiveHold(t *testing.T) {
	repo := newFakeRepo()
	link := addLink(repo)
	hold := submittedHold(repo, link, nil)
	repo.findActiveFn = func(linkID, excludeID string) (*salaryhold.SalaryHold, error) {
		if linkID == link.ID.String() {
			return hold, nil
		}
		return nil, nil
	}
	svc, _ := newService(t, repo)

	reason, onHold, err := svc.ActiveHold(context.Background(), link.ID.String())
	require.NoError(t, err)
	assert.True(t, onHold)
	assert.Equal(t, "Exit formalities pending", reason)

	onHold, err = svc.IsOnHold(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, onHold)

	status, err := svc.HoldStatus(context.Background(), []string{companyID.String()}, link.ID.String())
	require.NoError(t, err)
	assert.Equal(t, hold.ID.String(), status.ID)
	assert.Equal(t, "2025-03-10", status.HoldDate)
}
