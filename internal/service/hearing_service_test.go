package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
)

// MockHearingRepository is a mock implementation of HearingRepository.
type MockHearingRepository struct {
	mock.Mock
}

func (m *MockHearingRepository) Create(ctx context.Context, h *model.Hearing) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHearingRepository) FindByID(ctx context.Context, id uint) (*model.Hearing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hearing), args.Error(1)
}

func (m *MockHearingRepository) ListByCase(ctx context.Context, caseID uint) ([]model.Hearing, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hearing), args.Error(1)
}

func (m *MockHearingRepository) ListByJudge(ctx context.Context, judgeID uint) ([]model.Hearing, error) {
	args := m.Called(ctx, judgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hearing), args.Error(1)
}

func (m *MockHearingRepository) UpdateStateConditional(ctx context.Context, h *model.Hearing, prevStatus model.HearingStatus) (bool, error) {
	args := m.Called(ctx, h, prevStatus)
	return args.Bool(0), args.Error(1)
}

func TestHearingService_Schedule(t *testing.T) {
	date := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	parent := func() *model.Case {
		return &model.Case{ID: 1, CaseNumber: "KAHC/2026/00001", FiledByID: 4,
			Status: model.CaseStatusHearing, Stage: model.CaseStageTrial}
	}

	t.Run("creates the hearing and registers it on the case", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		cases := new(MockCaseRepository)
		users := new(MockUserRepository)
		notifier := &recordingNotifier{}

		cases.On("FindByID", mock.Anything, uint(1)).Return(parent(), nil)
		users.On("FindProjectionByID", mock.Anything, uint(8)).Return(&model.User{ID: 8, Role: model.RoleJudge}, nil)
		hearings.On("Create", mock.Anything, mock.AnythingOfType("*model.Hearing")).Return(nil)
		cases.On("RegisterHearing", mock.Anything, uint(1), date).Return(nil)

		service := NewHearingService(hearings, cases, users, notifier, nil)
		h, err := service.Schedule(context.Background(), 1, 8, date, "evidence")

		assert.NoError(t, err)
		assert.Equal(t, model.HearingStatusScheduled, h.Status)
		assert.Equal(t, uint(8), h.JudgeID)
		assert.Equal(t, []string{"hearing_scheduled"}, notifier.kinds)
		cases.AssertExpectations(t)
		hearings.AssertExpectations(t)
	})

	t.Run("non-judge assignee is rejected", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		cases := new(MockCaseRepository)
		users := new(MockUserRepository)

		cases.On("FindByID", mock.Anything, uint(1)).Return(parent(), nil)
		users.On("FindProjectionByID", mock.Anything, uint(8)).Return(&model.User{ID: 8, Role: model.RoleClerk}, nil)

		service := NewHearingService(hearings, cases, users, &recordingNotifier{}, nil)
		_, err := service.Schedule(context.Background(), 1, 8, date, "evidence")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		hearings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHearingService_ListByJudge(t *testing.T) {
	hearings := new(MockHearingRepository)
	docket := []model.Hearing{
		{ID: 1, CaseID: 1, JudgeID: 8, Status: model.HearingStatusScheduled},
		{ID: 2, CaseID: 4, JudgeID: 8, Status: model.HearingStatusAdjourned},
	}
	hearings.On("ListByJudge", mock.Anything, uint(8)).Return(docket, nil)

	service := NewHearingService(hearings, new(MockCaseRepository), new(MockUserRepository), &recordingNotifier{}, nil)
	got, err := service.ListByJudge(context.Background(), 8)

	assert.NoError(t, err)
	assert.Equal(t, docket, got)
	hearings.AssertExpectations(t)
}

func TestHearingService_UpdateStatus(t *testing.T) {
	next := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	parent := &model.Case{ID: 1, CaseNumber: "KAHC/2026/00001", FiledByID: 4}

	t.Run("adjournment with next date propagates to the case", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		cases := new(MockCaseRepository)
		notifier := &recordingNotifier{}

		hearings.On("FindByID", mock.Anything, uint(3)).Return(&model.Hearing{
			ID: 3, CaseID: 1, Status: model.HearingStatusOngoing}, nil)
		hearings.On("UpdateStateConditional", mock.Anything, mock.AnythingOfType("*model.Hearing"),
			model.HearingStatusOngoing).Return(true, nil)
		cases.On("FindByID", mock.Anything, uint(1)).Return(parent, nil)
		cases.On("SetNextHearingDate", mock.Anything, uint(1), next).Return(nil)

		service := NewHearingService(hearings, cases, new(MockUserRepository), notifier, nil)
		h, err := service.UpdateStatus(context.Background(), 3, model.HearingStatusAdjourned, "counsel ill", &next)

		assert.NoError(t, err)
		assert.Equal(t, model.HearingStatusAdjourned, h.Status)
		assert.Equal(t, "counsel ill", h.AdjournReason)
		assert.Equal(t, []string{"hearing_adjourned"}, notifier.kinds)
		cases.AssertExpectations(t)
	})

	t.Run("completion does not touch the case dates", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		cases := new(MockCaseRepository)

		hearings.On("FindByID", mock.Anything, uint(3)).Return(&model.Hearing{
			ID: 3, CaseID: 1, Status: model.HearingStatusOngoing}, nil)
		hearings.On("UpdateStateConditional", mock.Anything, mock.AnythingOfType("*model.Hearing"),
			model.HearingStatusOngoing).Return(true, nil)
		cases.On("FindByID", mock.Anything, uint(1)).Return(parent, nil)

		service := NewHearingService(hearings, cases, new(MockUserRepository), &recordingNotifier{}, nil)
		h, err := service.UpdateStatus(context.Background(), 3, model.HearingStatusCompleted, "", nil)

		assert.NoError(t, err)
		assert.Equal(t, model.HearingStatusCompleted, h.Status)
		cases.AssertNotCalled(t, "SetNextHearingDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("illegal transition fails before any write", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		hearings.On("FindByID", mock.Anything, uint(3)).Return(&model.Hearing{
			ID: 3, CaseID: 1, Status: model.HearingStatusCompleted}, nil)

		service := NewHearingService(hearings, new(MockCaseRepository), new(MockUserRepository), &recordingNotifier{}, nil)
		_, err := service.UpdateStatus(context.Background(), 3, model.HearingStatusOngoing, "", nil)

		var terr *apperrors.TransitionError
		assert.ErrorAs(t, err, &terr)
		hearings.AssertNotCalled(t, "UpdateStateConditional", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the conditional write surfaces a conflict", func(t *testing.T) {
		hearings := new(MockHearingRepository)
		hearings.On("FindByID", mock.Anything, uint(3)).Return(&model.Hearing{
			ID: 3, CaseID: 1, Status: model.HearingStatusScheduled}, nil)
		hearings.On("UpdateStateConditional", mock.Anything, mock.AnythingOfType("*model.Hearing"),
			model.HearingStatusScheduled).Return(false, nil)

		service := NewHearingService(hearings, new(MockCaseRepository), new(MockUserRepository), &recordingNotifier{}, nil)
		_, err := service.UpdateStatus(context.Background(), 3, model.HearingStatusOngoing, "", nil)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}
