package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"courtflow/internal/cache"
	apperrors "courtflow/internal/errors"
	"courtflow/internal/lifecycle"
	"courtflow/internal/logging"
	"courtflow/internal/model"
	"courtflow/internal/repository"
	"courtflow/internal/search"
)

const caseCacheTTL = 5 * time.Minute

func caseCacheKey(id uint) string {
	return fmt.Sprintf("case:%d", id)
}

// CreateCaseInput carries the fields a filer supplies when filing a case.
type CreateCaseInput struct {
	Title       string
	Description string
	CourtID     uint
	CaseTypeID  uint
	Priority    model.CasePriority
	Public      bool
	Sensitive   bool
}

// UpdateCaseInput carries the mutable detail fields. Status, stage and
// lifecycle dates are not here: they move only through UpdateState.
type UpdateCaseInput struct {
	Title       string
	Description string
	Priority    model.CasePriority
	Public      bool
	Sensitive   bool
}

// CaseService exposes case filing, lookup and lifecycle operations.
type CaseService interface {
	FileCase(ctx context.Context, actorID uint, in CreateCaseInput) (*model.Case, error)
	Get(ctx context.Context, actorID uint, actorRole model.Role, id uint) (*model.Case, error)
	GetByNumber(ctx context.Context, actorID uint, actorRole model.Role, number string) (*model.Case, error)
	List(ctx context.Context, actorID uint, actorRole model.Role, filter repository.CaseFilter) ([]model.Case, int64, error)
	// UpdateDetails is owner-or-admin.
	UpdateDetails(ctx context.Context, actorID uint, actorRole model.Role, id uint, in UpdateCaseInput) (*model.Case, error)
	// UpdateState drives the case through the lifecycle engine and persists
	// conditionally on the previously observed state, so two interleaved
	// transition requests cannot both win.
	UpdateState(ctx context.Context, id uint, status model.CaseStatus, stage model.CaseStage) (*model.Case, error)
	Search(ctx context.Context, query string, from, size int) (int64, []search.CaseHit, error)
}

type caseService struct {
	cases         repository.CaseRepository
	courts        repository.CourtRepository
	caseTypes     repository.CaseTypeRepository
	parties       repository.PartyRepository
	notifications NotificationService
	cache         *cache.Client
	es            *elasticsearch.Client
	esIndex       string
}

// NewCaseService builds a CaseService. es may be nil, which disables search
// indexing.
func NewCaseService(
	cases repository.CaseRepository,
	courts repository.CourtRepository,
	caseTypes repository.CaseTypeRepository,
	parties repository.PartyRepository,
	notifications NotificationService,
	cacheClient *cache.Client,
	es *elasticsearch.Client,
	esIndex string,
) CaseService {
	return &caseService{
		cases:         cases,
		courts:        courts,
		caseTypes:     caseTypes,
		parties:       parties,
		notifications: notifications,
		cache:         cacheClient,
		es:            es,
		esIndex:       esIndex,
	}
}

func (s *caseService) FileCase(ctx context.Context, actorID uint, in CreateCaseInput) (*model.Case, error) {
	court, err := s.courts.FindByID(ctx, in.CourtID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !court.Active {
		return nil, fmt.Errorf("%w: court %q is not accepting filings", apperrors.ErrInvalidInput, court.Name)
	}
	if _, err := s.caseTypes.FindByID(ctx, in.CaseTypeID); err != nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	seq, err := s.cases.CountByCourtAndYear(ctx, court.ID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("case sequence: %w", err)
	}

	priority := in.Priority
	if priority == "" {
		priority = model.CasePriorityMedium
	}

	c := &model.Case{
		CaseNumber:  fmt.Sprintf("%s/%d/%05d", court.Code, now.Year(), seq+1),
		Title:       in.Title,
		Description: in.Description,
		CourtID:     in.CourtID,
		CaseTypeID:  in.CaseTypeID,
		FiledByID:   actorID,
		Status:      model.CaseStatusFiled,
		Stage:       model.CaseStagePreliminary,
		Priority:    priority,
		FilingDate:  now,
		Public:      in.Public,
		Sensitive:   in.Sensitive,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("create case: %w", err)
	}

	s.index(ctx, c)
	logging.FromContext(ctx).Info("case filed", "case_id", c.ID, "case_number", c.CaseNumber)
	return c, nil
}

// canView applies the role-based visibility rules: public cases are readable
// by any authenticated identity; non-public and sensitive cases by the filer
// and court staff (admin, judge, clerk). Invisible reads as missing so
// existence is not leaked.
func canView(c *model.Case, actorID uint, actorRole model.Role) bool {
	if !c.Sensitive && c.Public {
		return true
	}
	switch actorRole {
	case model.RoleAdmin, model.RoleJudge, model.RoleClerk:
		return true
	}
	return actorID == c.FiledByID
}

// visible layers party membership on top of canView: an identity joined to
// the case as an active party reads it regardless of the public and sensitive
// flags.
func (s *caseService) visible(ctx context.Context, c *model.Case, actorID uint, actorRole model.Role) bool {
	if canView(c, actorID, actorRole) {
		return true
	}
	parties, err := s.parties.ListByCase(ctx, c.ID, true)
	if err != nil {
		return false
	}
	for _, p := range parties {
		if p.UserID != nil && *p.UserID == actorID {
			return true
		}
	}
	return false
}

func (s *caseService) Get(ctx context.Context, actorID uint, actorRole model.Role, id uint) (*model.Case, error) {
	// Read-through cache; visibility is evaluated per caller, so the cached
	// row itself is role-agnostic.
	var cached model.Case
	if s.cache.GetJSON(ctx, caseCacheKey(id), &cached) {
		if !s.visible(ctx, &cached, actorID, actorRole) {
			return nil, apperrors.ErrNotFound
		}
		return &cached, nil
	}

	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !s.visible(ctx, c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}
	s.cache.SetJSON(ctx, caseCacheKey(id), c, caseCacheTTL)
	return c, nil
}

func (s *caseService) GetByNumber(ctx context.Context, actorID uint, actorRole model.Role, number string) (*model.Case, error) {
	c, err := s.cases.FindByNumber(ctx, number)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !s.visible(ctx, c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}
	return c, nil
}

func (s *caseService) List(ctx context.Context, actorID uint, actorRole model.Role, filter repository.CaseFilter) ([]model.Case, int64, error) {
	switch actorRole {
	case model.RoleAdmin, model.RoleJudge, model.RoleClerk:
		// court staff see everything
	default:
		if filter.FiledByID != actorID {
			filter.PublicOnly = true
		}
	}
	return s.cases.List(ctx, filter)
}

func (s *caseService) UpdateDetails(ctx context.Context, actorID uint, actorRole model.Role, id uint, in UpdateCaseInput) (*model.Case, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if actorID != c.FiledByID && actorRole != model.RoleAdmin {
		return nil, apperrors.NewAuthorizationError(string(model.RoleAdmin))
	}

	c.Title = in.Title
	c.Description = in.Description
	if in.Priority != "" {
		c.Priority = in.Priority
	}
	c.Public = in.Public
	c.Sensitive = in.Sensitive
	if err := s.cases.UpdateDetails(ctx, c); err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	_ = s.cache.Delete(ctx, caseCacheKey(id))
	s.index(ctx, c)
	return c, nil
}

func (s *caseService) UpdateState(ctx context.Context, id uint, status model.CaseStatus, stage model.CaseStage) (*model.Case, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	prevStatus, prevStage := c.Status, c.Stage
	if err := lifecycle.ApplyCaseChange(c, status, stage, time.Now()); err != nil {
		return nil, err
	}
	if c.Status == prevStatus && c.Stage == prevStage {
		return c, nil
	}

	ok, err := s.cases.UpdateStateConditional(ctx, c, prevStatus, prevStage)
	if err != nil {
		return nil, fmt.Errorf("persist case state: %w", err)
	}
	if !ok {
		// Lost a concurrent transition; the caller re-reads and retries.
		return nil, apperrors.ErrConflict
	}

	_ = s.cache.Delete(ctx, caseCacheKey(c.ID))
	caseID := c.ID
	s.notifications.Notify(ctx, c.FiledByID, &caseID, nil, "case_status",
		fmt.Sprintf("Case %s moved to %s", c.CaseNumber, c.Status))
	s.index(ctx, c)
	logging.FromContext(ctx).Info("case state updated",
		"case_id", c.ID, "status", c.Status, "stage", c.Stage)
	return c, nil
}

func (s *caseService) Search(ctx context.Context, query string, from, size int) (int64, []search.CaseHit, error) {
	if s.es == nil {
		return 0, nil, nil
	}
	return search.SearchCases(ctx, s.es, s.esIndex, query, from, size)
}

// index upserts the case into elasticsearch, best-effort. Sensitive cases
// are kept out of the index entirely.
func (s *caseService) index(ctx context.Context, c *model.Case) {
	if s.es == nil || c.Sensitive {
		return
	}
	if err := search.IndexCase(ctx, s.es, s.esIndex, c); err != nil {
		logging.FromContext(ctx).Warn("case index failed", "case_id", c.ID, "error", err)
	}
}
