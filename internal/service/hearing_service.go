package service

import (
	"context"
	"fmt"
	"time"

	"courtflow/internal/cache"
	apperrors "courtflow/internal/errors"
	"courtflow/internal/lifecycle"
	"courtflow/internal/logging"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// HearingService exposes hearing scheduling and lifecycle operations.
type HearingService interface {
	// Schedule creates a hearing under a case. The parent case's hearing
	// count always grows by one and its next hearing date only moves forward.
	Schedule(ctx context.Context, caseID, judgeID uint, date time.Time, purpose string) (*model.Hearing, error)
	Get(ctx context.Context, id uint) (*model.Hearing, error)
	ListByCase(ctx context.Context, caseID uint) ([]model.Hearing, error)
	// ListByJudge returns the docket of hearings assigned to a judge.
	ListByJudge(ctx context.Context, judgeID uint) ([]model.Hearing, error)
	// UpdateStatus drives the hearing state machine. Adjournments require a
	// reason; an adjournment that names a next date propagates it to the
	// parent case.
	UpdateStatus(ctx context.Context, id uint, to model.HearingStatus, reason string, next *time.Time) (*model.Hearing, error)
}

type hearingService struct {
	hearings      repository.HearingRepository
	cases         repository.CaseRepository
	users         repository.UserRepository
	notifications NotificationService
	cache         *cache.Client
}

// NewHearingService builds a HearingService.
func NewHearingService(
	hearings repository.HearingRepository,
	cases repository.CaseRepository,
	users repository.UserRepository,
	notifications NotificationService,
	cacheClient *cache.Client,
) HearingService {
	return &hearingService{
		hearings:      hearings,
		cases:         cases,
		users:         users,
		notifications: notifications,
		cache:         cacheClient,
	}
}

func (s *hearingService) Schedule(ctx context.Context, caseID, judgeID uint, date time.Time, purpose string) (*model.Hearing, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	judge, err := s.users.FindProjectionByID(ctx, judgeID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if judge.Role != model.RoleJudge {
		return nil, fmt.Errorf("%w: assigned identity is not a judge", apperrors.ErrInvalidInput)
	}

	h := &model.Hearing{
		CaseID:      caseID,
		JudgeID:     judgeID,
		Status:      model.HearingStatusScheduled,
		HearingDate: date,
		Purpose:     purpose,
	}
	if err := s.hearings.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create hearing: %w", err)
	}

	// Derived fields: in-memory for the response, atomically on the row.
	lifecycle.RegisterHearing(c, date)
	if err := s.cases.RegisterHearing(ctx, caseID, date); err != nil {
		return nil, fmt.Errorf("register hearing on case: %w", err)
	}
	_ = s.cache.Delete(ctx, caseCacheKey(caseID))

	hearingID := h.ID
	s.notifications.Notify(ctx, c.FiledByID, &caseID, &hearingID, "hearing_scheduled",
		fmt.Sprintf("Hearing scheduled for case %s on %s", c.CaseNumber, date.Format("2006-01-02 15:04")))
	logging.FromContext(ctx).Info("hearing scheduled",
		"hearing_id", h.ID, "case_id", caseID, "judge_id", judgeID)
	return h, nil
}

func (s *hearingService) Get(ctx context.Context, id uint) (*model.Hearing, error) {
	h, err := s.hearings.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return h, nil
}

func (s *hearingService) ListByCase(ctx context.Context, caseID uint) ([]model.Hearing, error) {
	if _, err := s.cases.FindByID(ctx, caseID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.hearings.ListByCase(ctx, caseID)
}

func (s *hearingService) ListByJudge(ctx context.Context, judgeID uint) ([]model.Hearing, error) {
	return s.hearings.ListByJudge(ctx, judgeID)
}

func (s *hearingService) UpdateStatus(ctx context.Context, id uint, to model.HearingStatus, reason string, next *time.Time) (*model.Hearing, error) {
	h, err := s.hearings.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	prev := h.Status
	if err := lifecycle.TransitionHearing(h, to, reason, next); err != nil {
		return nil, err
	}

	ok, err := s.hearings.UpdateStateConditional(ctx, h, prev)
	if err != nil {
		return nil, fmt.Errorf("persist hearing state: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrConflict
	}

	c, err := s.cases.FindByID(ctx, h.CaseID)
	if err == nil {
		if to == model.HearingStatusAdjourned && h.NextHearingDate != nil {
			if err := s.cases.SetNextHearingDate(ctx, c.ID, *h.NextHearingDate); err != nil {
				return nil, fmt.Errorf("propagate next hearing date: %w", err)
			}
			_ = s.cache.Delete(ctx, caseCacheKey(c.ID))
		}
		caseID, hearingID := c.ID, h.ID
		s.notifications.Notify(ctx, c.FiledByID, &caseID, &hearingID, "hearing_"+string(to),
			fmt.Sprintf("Hearing for case %s is now %s", c.CaseNumber, to))
	}

	logging.FromContext(ctx).Info("hearing status updated", "hearing_id", h.ID, "status", to)
	return h, nil
}
