package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// MockCaseRepository is a mock implementation of CaseRepository.
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *model.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id uint) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) FindByNumber(ctx context.Context, number string) (*model.Case, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) List(ctx context.Context, filter repository.CaseFilter) ([]model.Case, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Case), args.Get(1).(int64), args.Error(2)
}

func (m *MockCaseRepository) CountByCourtAndYear(ctx context.Context, courtID uint, year int) (int64, error) {
	args := m.Called(ctx, courtID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCaseRepository) UpdateDetails(ctx context.Context, c *model.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateStateConditional(ctx context.Context, c *model.Case, prevStatus model.CaseStatus, prevStage model.CaseStage) (bool, error) {
	args := m.Called(ctx, c, prevStatus, prevStage)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaseRepository) RegisterHearing(ctx context.Context, caseID uint, hearingDate time.Time) error {
	args := m.Called(ctx, caseID, hearingDate)
	return args.Error(0)
}

func (m *MockCaseRepository) SetNextHearingDate(ctx context.Context, caseID uint, next time.Time) error {
	args := m.Called(ctx, caseID, next)
	return args.Error(0)
}

// MockCourtRepository is a mock implementation of CourtRepository.
type MockCourtRepository struct {
	mock.Mock
}

func (m *MockCourtRepository) Create(ctx context.Context, court *model.Court) error {
	args := m.Called(ctx, court)
	return args.Error(0)
}

func (m *MockCourtRepository) FindByID(ctx context.Context, id uint) (*model.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Court), args.Error(1)
}

func (m *MockCourtRepository) FindBySlug(ctx context.Context, slug string) (*model.Court, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Court), args.Error(1)
}

func (m *MockCourtRepository) List(ctx context.Context, activeOnly bool) ([]model.Court, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Court), args.Error(1)
}

func (m *MockCourtRepository) Update(ctx context.Context, court *model.Court) error {
	args := m.Called(ctx, court)
	return args.Error(0)
}

// MockCaseTypeRepository is a mock implementation of CaseTypeRepository.
type MockCaseTypeRepository struct {
	mock.Mock
}

func (m *MockCaseTypeRepository) Create(ctx context.Context, ct *model.CaseType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}

func (m *MockCaseTypeRepository) FindByID(ctx context.Context, id uint) (*model.CaseType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseType), args.Error(1)
}

func (m *MockCaseTypeRepository) List(ctx context.Context, activeOnly bool) ([]model.CaseType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseType), args.Error(1)
}

func (m *MockCaseTypeRepository) Update(ctx context.Context, ct *model.CaseType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}

// MockPartyRepository is a mock implementation of PartyRepository.
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, p *model.CaseParty) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartyRepository) FindByID(ctx context.Context, id uint) (*model.CaseParty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseParty), args.Error(1)
}

func (m *MockPartyRepository) ListByCase(ctx context.Context, caseID uint, activeOnly bool) ([]model.CaseParty, error) {
	args := m.Called(ctx, caseID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseParty), args.Error(1)
}

func (m *MockPartyRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingNotifier captures notifications without a database or broker.
type recordingNotifier struct {
	kinds []string
}

func (r *recordingNotifier) Notify(ctx context.Context, userID uint, caseID, hearingID *uint, kind, message string) {
	r.kinds = append(r.kinds, kind)
}

func (r *recordingNotifier) ListOwn(ctx context.Context, actorID uint, unreadOnly bool) ([]model.Notification, error) {
	return nil, nil
}

func (r *recordingNotifier) MarkRead(ctx context.Context, actorID uint, id uint) error {
	return nil
}

func TestCaseService_FileCase(t *testing.T) {
	year := time.Now().Year()

	t.Run("derives a sequential case number scoped to court and year", func(t *testing.T) {
		courts := new(MockCourtRepository)
		caseTypes := new(MockCaseTypeRepository)
		cases := new(MockCaseRepository)
		courts.On("FindByID", mock.Anything, uint(2)).Return(&model.Court{ID: 2, Code: "KAHC", Active: true}, nil)
		caseTypes.On("FindByID", mock.Anything, uint(1)).Return(&model.CaseType{ID: 1, Code: "WP"}, nil)
		cases.On("CountByCourtAndYear", mock.Anything, uint(2), year).Return(int64(41), nil)
		cases.On("Create", mock.Anything, mock.AnythingOfType("*model.Case")).Return(nil)

		service := NewCaseService(cases, courts, caseTypes, new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		c, err := service.FileCase(context.Background(), 10, CreateCaseInput{
			Title: "Writ petition", CourtID: 2, CaseTypeID: 1, Public: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("KAHC/%d/00042", year), c.CaseNumber)
		assert.Equal(t, model.CaseStatusFiled, c.Status)
		assert.Equal(t, model.CaseStagePreliminary, c.Stage)
		assert.Equal(t, model.CasePriorityMedium, c.Priority, "unset priority defaults to medium")
		assert.Equal(t, uint(10), c.FiledByID)
		cases.AssertExpectations(t)
	})

	t.Run("inactive court refuses filings", func(t *testing.T) {
		courts := new(MockCourtRepository)
		courts.On("FindByID", mock.Anything, uint(2)).Return(&model.Court{ID: 2, Code: "OLD", Active: false}, nil)

		service := NewCaseService(new(MockCaseRepository), courts, new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		_, err := service.FileCase(context.Background(), 10, CreateCaseInput{Title: "x", CourtID: 2, CaseTypeID: 1})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown case type reads as missing", func(t *testing.T) {
		courts := new(MockCourtRepository)
		caseTypes := new(MockCaseTypeRepository)
		courts.On("FindByID", mock.Anything, uint(2)).Return(&model.Court{ID: 2, Code: "KAHC", Active: true}, nil)
		caseTypes.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewCaseService(new(MockCaseRepository), courts, caseTypes, new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		_, err := service.FileCase(context.Background(), 10, CreateCaseInput{Title: "x", CourtID: 2, CaseTypeID: 99})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCaseService_Get_Visibility(t *testing.T) {
	tests := []struct {
		name      string
		c         model.Case
		actorID   uint
		actorRole model.Role
		visible   bool
	}{
		{"public case visible to anyone", model.Case{Public: true, FiledByID: 1}, 99, model.RolePublic, true},
		{"private case visible to filer", model.Case{FiledByID: 5}, 5, model.RoleLitigant, true},
		{"private case visible to clerk", model.Case{FiledByID: 5}, 99, model.RoleClerk, true},
		{"private case hidden from strangers", model.Case{FiledByID: 5}, 99, model.RolePublic, false},
		{"private case visible to linked party", model.Case{FiledByID: 5}, 42, model.RoleLawyer, true},
		{"sensitive case visible to clerk", model.Case{Sensitive: true, Public: true, FiledByID: 5}, 99, model.RoleClerk, true},
		{"sensitive case visible to judge", model.Case{Sensitive: true, FiledByID: 5}, 99, model.RoleJudge, true},
		{"sensitive case visible to filer", model.Case{Sensitive: true, FiledByID: 5}, 5, model.RoleLitigant, true},
		{"sensitive case visible to linked party", model.Case{Sensitive: true, Public: true, FiledByID: 5}, 42, model.RoleLawyer, true},
		{"sensitive case hidden from strangers", model.Case{Sensitive: true, Public: true, FiledByID: 5}, 99, model.RoleLawyer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := new(MockCaseRepository)
			stored := tt.c
			stored.ID = 1
			cases.On("FindByID", mock.Anything, uint(1)).Return(&stored, nil)

			// Identity 42 is an active party on the case; the lookup only runs
			// when the role rules alone do not grant access.
			parties := new(MockPartyRepository)
			linked := uint(42)
			parties.On("ListByCase", mock.Anything, uint(1), true).Return([]model.CaseParty{
				{CaseID: 1, Name: "A. Counsel", PartyType: "advocate", UserID: &linked, Active: true},
			}, nil).Maybe()

			service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), parties, &recordingNotifier{}, nil, nil, "cases")
			got, err := service.Get(context.Background(), tt.actorID, tt.actorRole, 1)

			if tt.visible {
				assert.NoError(t, err)
				assert.NotNil(t, got)
			} else {
				// Invisible cases read as missing, never as forbidden.
				assert.ErrorIs(t, err, apperrors.ErrNotFound)
			}
		})
	}
}

func TestCaseService_GetByNumber(t *testing.T) {
	t.Run("resolves a visible case", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByNumber", mock.Anything, "KAHC/2026/00042").Return(&model.Case{
			ID: 1, CaseNumber: "KAHC/2026/00042", Public: true}, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		got, err := service.GetByNumber(context.Background(), 99, model.RolePublic, "KAHC/2026/00042")

		assert.NoError(t, err)
		assert.Equal(t, "KAHC/2026/00042", got.CaseNumber)
	})

	t.Run("invisible case reads as missing", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByNumber", mock.Anything, "KAHC/2026/00007").Return(&model.Case{
			ID: 2, CaseNumber: "KAHC/2026/00007", FiledByID: 5}, nil)
		parties := new(MockPartyRepository)
		parties.On("ListByCase", mock.Anything, uint(2), true).Return([]model.CaseParty{}, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), parties, &recordingNotifier{}, nil, nil, "cases")
		_, err := service.GetByNumber(context.Background(), 99, model.RolePublic, "KAHC/2026/00007")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCaseService_List_ForcesPublicForOutsiders(t *testing.T) {
	cases := new(MockCaseRepository)
	cases.On("List", mock.Anything, mock.MatchedBy(func(f repository.CaseFilter) bool {
		return f.PublicOnly
	})).Return([]model.Case{}, int64(0), nil)

	service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
	_, _, err := service.List(context.Background(), 7, model.RolePublic, repository.CaseFilter{})

	assert.NoError(t, err)
	cases.AssertExpectations(t)
}

func TestCaseService_List_OwnCasesSkipPublicFilter(t *testing.T) {
	cases := new(MockCaseRepository)
	cases.On("List", mock.Anything, mock.MatchedBy(func(f repository.CaseFilter) bool {
		return !f.PublicOnly && f.FiledByID == 7
	})).Return([]model.Case{}, int64(0), nil)

	service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
	_, _, err := service.List(context.Background(), 7, model.RoleLitigant, repository.CaseFilter{FiledByID: 7})

	assert.NoError(t, err)
	cases.AssertExpectations(t)
}

func TestCaseService_UpdateState(t *testing.T) {
	t.Run("valid transition persists conditionally and notifies the filer", func(t *testing.T) {
		cases := new(MockCaseRepository)
		notifier := &recordingNotifier{}
		stored := &model.Case{ID: 1, CaseNumber: "KAHC/2026/00001", FiledByID: 4,
			Status: model.CaseStatusFiled, Stage: model.CaseStagePreliminary}
		cases.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		cases.On("UpdateStateConditional", mock.Anything, mock.AnythingOfType("*model.Case"),
			model.CaseStatusFiled, model.CaseStagePreliminary).Return(true, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), notifier, nil, nil, "cases")
		c, err := service.UpdateState(context.Background(), 1, model.CaseStatusAdmitted, "")

		assert.NoError(t, err)
		assert.Equal(t, model.CaseStatusAdmitted, c.Status)
		assert.NotNil(t, c.AdmissionDate)
		assert.Equal(t, []string{"case_status"}, notifier.kinds)
		cases.AssertExpectations(t)
	})

	t.Run("illegal transition fails before any write", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByID", mock.Anything, uint(1)).Return(&model.Case{ID: 1,
			Status: model.CaseStatusFiled, Stage: model.CaseStagePreliminary}, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		_, err := service.UpdateState(context.Background(), 1, model.CaseStatusJudgment, "")

		var terr *apperrors.TransitionError
		assert.ErrorAs(t, err, &terr)
		cases.AssertNotCalled(t, "UpdateStateConditional", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent transition surfaces a conflict", func(t *testing.T) {
		cases := new(MockCaseRepository)
		notifier := &recordingNotifier{}
		cases.On("FindByID", mock.Anything, uint(1)).Return(&model.Case{ID: 1, FiledByID: 4,
			Status: model.CaseStatusFiled, Stage: model.CaseStagePreliminary}, nil)
		cases.On("UpdateStateConditional", mock.Anything, mock.AnythingOfType("*model.Case"),
			model.CaseStatusFiled, model.CaseStagePreliminary).Return(false, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), notifier, nil, nil, "cases")
		_, err := service.UpdateState(context.Background(), 1, model.CaseStatusAdmitted, "")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Empty(t, notifier.kinds, "a lost transition must not notify")
	})

	t.Run("no-op state request returns the case unchanged", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByID", mock.Anything, uint(1)).Return(&model.Case{ID: 1,
			Status: model.CaseStatusAdmitted, Stage: model.CaseStageTrial}, nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		c, err := service.UpdateState(context.Background(), 1, model.CaseStatusAdmitted, model.CaseStageTrial)

		assert.NoError(t, err)
		assert.Equal(t, model.CaseStatusAdmitted, c.Status)
		cases.AssertNotCalled(t, "UpdateStateConditional", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCaseService_UpdateDetails_Authorization(t *testing.T) {
	stored := func() *model.Case {
		return &model.Case{ID: 1, FiledByID: 4, Title: "old"}
	}

	t.Run("filer may edit", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)
		cases.On("UpdateDetails", mock.Anything, mock.AnythingOfType("*model.Case")).Return(nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		c, err := service.UpdateDetails(context.Background(), 4, model.RoleLitigant, 1, UpdateCaseInput{Title: "new"})

		assert.NoError(t, err)
		assert.Equal(t, "new", c.Title)
	})

	t.Run("stranger may not edit", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)

		service := NewCaseService(cases, new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
		_, err := service.UpdateDetails(context.Background(), 99, model.RoleLawyer, 1, UpdateCaseInput{Title: "new"})

		var aerr *apperrors.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
		cases.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
	})
}

func TestCaseService_Search_NoBackend(t *testing.T) {
	service := NewCaseService(new(MockCaseRepository), new(MockCourtRepository), new(MockCaseTypeRepository), new(MockPartyRepository), &recordingNotifier{}, nil, nil, "cases")
	total, hits, err := service.Search(context.Background(), "anything", 0, 20)
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, hits)
}
