package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtflow/internal/model"
)

// CaseFilter narrows case listings.
type CaseFilter struct {
	CourtID    uint
	CaseTypeID uint
	Status     model.CaseStatus
	FiledByID  uint
	PublicOnly bool
	Limit      int
	Offset     int
}

// CaseRepository defines case persistence operations. Writes that race with
// each other go through conditional updates keyed on the previously observed
// state, so the lifecycle invariants survive concurrent requests.
type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	FindByID(ctx context.Context, id uint) (*model.Case, error)
	FindByNumber(ctx context.Context, number string) (*model.Case, error)
	List(ctx context.Context, filter CaseFilter) ([]model.Case, int64, error)
	CountByCourtAndYear(ctx context.Context, courtID uint, year int) (int64, error)
	UpdateDetails(ctx context.Context, c *model.Case) error
	// UpdateStateConditional persists the case's status, stage and lifecycle
	// dates only if the row still carries prevStatus and prevStage. It
	// returns gorm.ErrRecordNotFound semantics via a zero-rows result, which
	// the caller surfaces as a conflict.
	UpdateStateConditional(ctx context.Context, c *model.Case, prevStatus model.CaseStatus, prevStage model.CaseStage) (bool, error)
	// RegisterHearing bumps the hearing count and advances the next hearing
	// date (forward only) atomically on the case row.
	RegisterHearing(ctx context.Context, caseID uint, hearingDate time.Time) error
	// SetNextHearingDate overwrites the next hearing date, used when an
	// adjournment names a new date.
	SetNextHearingDate(ctx context.Context, caseID uint, next time.Time) error
}

type caseRepository struct {
	db *gorm.DB
}

// NewCaseRepository builds a GORM-backed repository.
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caseRepository) FindByID(ctx context.Context, id uint) (*model.Case, error) {
	var c model.Case
	err := r.db.WithContext(ctx).
		Preload("Court").Preload("CaseType").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindByNumber(ctx context.Context, number string) (*model.Case, error) {
	var c model.Case
	if err := r.db.WithContext(ctx).Where("case_number = ?", number).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter) ([]model.Case, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Case{})
	if filter.CourtID != 0 {
		q = q.Where("court_id = ?", filter.CourtID)
	}
	if filter.CaseTypeID != 0 {
		q = q.Where("case_type_id = ?", filter.CaseTypeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.FiledByID != 0 {
		q = q.Where("filed_by_id = ?", filter.FiledByID)
	}
	if filter.PublicOnly {
		q = q.Where("public = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var cases []model.Case
	err := q.Order("filing_date DESC").Limit(limit).Offset(filter.Offset).Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *caseRepository) CountByCourtAndYear(ctx context.Context, courtID uint, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Case{}).
		Where("court_id = ? AND YEAR(filing_date) = ?", courtID, year).
		Count(&count).Error
	return count, err
}

func (r *caseRepository) UpdateDetails(ctx context.Context, c *model.Case) error {
	return r.db.WithContext(ctx).Model(&model.Case{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":       c.Title,
			"description": c.Description,
			"priority":    c.Priority,
			"public":      c.Public,
			"sensitive":   c.Sensitive,
		}).Error
}

func (r *caseRepository) UpdateStateConditional(ctx context.Context, c *model.Case, prevStatus model.CaseStatus, prevStage model.CaseStage) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Case{}).
		Where("id = ? AND status = ? AND stage = ?", c.ID, prevStatus, prevStage).
		Updates(map[string]interface{}{
			"status":         c.Status,
			"stage":          c.Stage,
			"admission_date": c.AdmissionDate,
			"judgment_date":  c.JudgmentDate,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *caseRepository) RegisterHearing(ctx context.Context, caseID uint, hearingDate time.Time) error {
	tx := r.db.WithContext(ctx)
	err := tx.Model(&model.Case{}).Where("id = ?", caseID).
		Update("hearing_count", gorm.Expr("hearing_count + ?", 1)).Error
	if err != nil {
		return err
	}
	// Forward-only merge: an earlier hearing never drags the date back.
	return tx.Model(&model.Case{}).
		Where("id = ? AND (next_hearing_date IS NULL OR next_hearing_date < ?)", caseID, hearingDate).
		Update("next_hearing_date", hearingDate).Error
}

func (r *caseRepository) SetNextHearingDate(ctx context.Context, caseID uint, next time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Case{}).Where("id = ?", caseID).
		Update("next_hearing_date", next).Error
}
