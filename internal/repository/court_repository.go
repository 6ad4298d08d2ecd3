package repository

import (
	"context"

	"gorm.io/gorm"

	"courtflow/internal/model"
)

// CourtRepository defines court persistence operations.
type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	FindByID(ctx context.Context, id uint) (*model.Court, error)
	FindBySlug(ctx context.Context, slug string) (*model.Court, error)
	List(ctx context.Context, activeOnly bool) ([]model.Court, error)
	Update(ctx context.Context, court *model.Court) error
}

type courtRepository struct {
	db *gorm.DB
}

// NewCourtRepository builds a GORM-backed repository.
func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) Create(ctx context.Context, court *model.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *courtRepository) FindByID(ctx context.Context, id uint) (*model.Court, error) {
	var court model.Court
	if err := r.db.WithContext(ctx).First(&court, id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindBySlug(ctx context.Context, slug string) (*model.Court, error) {
	var court model.Court
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&court).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) List(ctx context.Context, activeOnly bool) ([]model.Court, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var courts []model.Court
	if err := q.Order("name").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *model.Court) error {
	return r.db.WithContext(ctx).Save(court).Error
}

// CaseTypeRepository defines case type persistence operations.
type CaseTypeRepository interface {
	Create(ctx context.Context, ct *model.CaseType) error
	FindByID(ctx context.Context, id uint) (*model.CaseType, error)
	List(ctx context.Context, activeOnly bool) ([]model.CaseType, error)
	Update(ctx context.Context, ct *model.CaseType) error
}

type caseTypeRepository struct {
	db *gorm.DB
}

// NewCaseTypeRepository builds a GORM-backed repository.
func NewCaseTypeRepository(db *gorm.DB) CaseTypeRepository {
	return &caseTypeRepository{db: db}
}

func (r *caseTypeRepository) Create(ctx context.Context, ct *model.CaseType) error {
	return r.db.WithContext(ctx).Create(ct).Error
}

func (r *caseTypeRepository) FindByID(ctx context.Context, id uint) (*model.CaseType, error) {
	var ct model.CaseType
	if err := r.db.WithContext(ctx).First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *caseTypeRepository) List(ctx context.Context, activeOnly bool) ([]model.CaseType, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var cts []model.CaseType
	if err := q.Order("name").Find(&cts).Error; err != nil {
		return nil, err
	}
	return cts, nil
}

func (r *caseTypeRepository) Update(ctx context.Context, ct *model.CaseType) error {
	return r.db.WithContext(ctx).Save(ct).Error
}
