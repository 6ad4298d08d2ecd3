package repository

import (
	"context"

	"gorm.io/gorm"

	"courtflow/internal/model"
)

// HearingRepository defines hearing persistence operations.
type HearingRepository interface {
	Create(ctx context.Context, h *model.Hearing) error
	FindByID(ctx context.Context, id uint) (*model.Hearing, error)
	ListByCase(ctx context.Context, caseID uint) ([]model.Hearing, error)
	ListByJudge(ctx context.Context, judgeID uint) ([]model.Hearing, error)
	// UpdateStateConditional persists the hearing's status, adjourn reason and
	// next hearing date only if the row still carries prevStatus.
	UpdateStateConditional(ctx context.Context, h *model.Hearing, prevStatus model.HearingStatus) (bool, error)
}

type hearingRepository struct {
	db *gorm.DB
}

// NewHearingRepository builds a GORM-backed repository.
func NewHearingRepository(db *gorm.DB) HearingRepository {
	return &hearingRepository{db: db}
}

func (r *hearingRepository) Create(ctx context.Context, h *model.Hearing) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *hearingRepository) FindByID(ctx context.Context, id uint) (*model.Hearing, error) {
	var h model.Hearing
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hearingRepository) ListByCase(ctx context.Context, caseID uint) ([]model.Hearing, error) {
	var hearings []model.Hearing
	err := r.db.WithContext(ctx).Where("case_id = ?", caseID).
		Order("hearing_date").Find(&hearings).Error
	if err != nil {
		return nil, err
	}
	return hearings, nil
}

func (r *hearingRepository) ListByJudge(ctx context.Context, judgeID uint) ([]model.Hearing, error) {
	var hearings []model.Hearing
	err := r.db.WithContext(ctx).Where("judge_id = ?", judgeID).
		Order("hearing_date").Find(&hearings).Error
	if err != nil {
		return nil, err
	}
	return hearings, nil
}

func (r *hearingRepository) UpdateStateConditional(ctx context.Context, h *model.Hearing, prevStatus model.HearingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Hearing{}).
		Where("id = ? AND status = ?", h.ID, prevStatus).
		Updates(map[string]interface{}{
			"status":            h.Status,
			"adjourn_reason":    h.AdjournReason,
			"next_hearing_date": h.NextHearingDate,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
