package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// CourtService exposes court administration and lookup.
type CourtService interface {
	Create(ctx context.Context, name, code, location string) (*model.Court, error)
	Get(ctx context.Context, id uint) (*model.Court, error)
	GetBySlug(ctx context.Context, slug string) (*model.Court, error)
	List(ctx context.Context, activeOnly bool) ([]model.Court, error)
	Update(ctx context.Context, id uint, name, location string, active bool) (*model.Court, error)
}

type courtService struct {
	repo repository.CourtRepository
}

// NewCourtService builds a CourtService.
func NewCourtService(repo repository.CourtRepository) CourtService {
	return &courtService{repo: repo}
}

// deriveSlug produces a URL slug from a court name, disambiguated by the
// court code. Pure transform applied on the save path, never an ambient hook.
func deriveSlug(name, disambiguator string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	d := strings.ToLower(strings.TrimSpace(disambiguator))
	if d == "" {
		return slug
	}
	if slug == "" {
		return d
	}
	return slug + "-" + d
}

func (s *courtService) Create(ctx context.Context, name, code, location string) (*model.Court, error) {
	court := &model.Court{
		Name:     name,
		Code:     strings.ToUpper(strings.TrimSpace(code)),
		Slug:     deriveSlug(name, code),
		Location: location,
		Active:   true,
	}
	if err := s.repo.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}
	return court, nil
}

func (s *courtService) Get(ctx context.Context, id uint) (*model.Court, error) {
	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return court, nil
}

func (s *courtService) GetBySlug(ctx context.Context, slug string) (*model.Court, error) {
	court, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return court, nil
}

func (s *courtService) List(ctx context.Context, activeOnly bool) ([]model.Court, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *courtService) Update(ctx context.Context, id uint, name, location string, active bool) (*model.Court, error) {
	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	court.Name = name
	court.Location = location
	court.Active = active
	court.Slug = deriveSlug(name, court.Code)
	if err := s.repo.Update(ctx, court); err != nil {
		return nil, fmt.Errorf("update court: %w", err)
	}
	return court, nil
}

// CaseTypeService exposes case type administration and lookup.
type CaseTypeService interface {
	Create(ctx context.Context, name, code, description string) (*model.CaseType, error)
	Get(ctx context.Context, id uint) (*model.CaseType, error)
	List(ctx context.Context, activeOnly bool) ([]model.CaseType, error)
	Update(ctx context.Context, id uint, name, description string, active bool) (*model.CaseType, error)
}

type caseTypeService struct {
	repo repository.CaseTypeRepository
}

// NewCaseTypeService builds a CaseTypeService.
func NewCaseTypeService(repo repository.CaseTypeRepository) CaseTypeService {
	return &caseTypeService{repo: repo}
}

func (s *caseTypeService) Create(ctx context.Context, name, code, description string) (*model.CaseType, error) {
	ct := &model.CaseType{
		Name:        name,
		Code:        strings.ToUpper(strings.TrimSpace(code)),
		Description: description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, fmt.Errorf("create case type: %w", err)
	}
	return ct, nil
}

func (s *caseTypeService) Get(ctx context.Context, id uint) (*model.CaseType, error) {
	ct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return ct, nil
}

func (s *caseTypeService) List(ctx context.Context, activeOnly bool) ([]model.CaseType, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *caseTypeService) Update(ctx context.Context, id uint, name, description string, active bool) (*model.CaseType, error) {
	ct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	ct.Name = name
	ct.Description = description
	ct.Active = active
	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, fmt.Errorf("update case type: %w", err)
	}
	return ct, nil
}
