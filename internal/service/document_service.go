package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// DocumentService manages case document metadata; the binaries themselves
// live in an external store addressed by the generated storage key.
type DocumentService interface {
	Attach(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, title, docType string, public bool) (*model.Document, error)
	ListByCase(ctx context.Context, actorID uint, actorRole model.Role, caseID uint) ([]model.Document, error)
	// Remove is uploader-or-admin.
	Remove(ctx context.Context, actorID uint, actorRole model.Role, id uint) error
}

type documentService struct {
	docs  repository.DocumentRepository
	cases repository.CaseRepository
}

// NewDocumentService builds a DocumentService.
func NewDocumentService(docs repository.DocumentRepository, cases repository.CaseRepository) DocumentService {
	return &documentService{docs: docs, cases: cases}
}

func (s *documentService) Attach(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, title, docType string, public bool) (*model.Document, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !canView(c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}

	d := &model.Document{
		CaseID:       caseID,
		Title:        title,
		DocType:      docType,
		StorageKey:   uuid.NewString(),
		UploadedByID: actorID,
		Public:       public && c.Public,
	}
	if err := s.docs.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (s *documentService) ListByCase(ctx context.Context, actorID uint, actorRole model.Role, caseID uint) ([]model.Document, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !canView(c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}
	return s.docs.ListByCase(ctx, caseID)
}

func (s *documentService) Remove(ctx context.Context, actorID uint, actorRole model.Role, id uint) error {
	d, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if d.UploadedByID != actorID && actorRole != model.RoleAdmin {
		return apperrors.NewAuthorizationError(string(model.RoleAdmin))
	}
	return s.docs.Delete(ctx, id)
}

// PartyService manages the parties on a case. Parties are deactivated, never
// deleted.
type PartyService interface {
	Add(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, name, partyType, advocate string, userID *uint) (*model.CaseParty, error)
	ListByCase(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, activeOnly bool) ([]model.CaseParty, error)
	Deactivate(ctx context.Context, actorID uint, actorRole model.Role, id uint) error
}

type partyService struct {
	parties repository.PartyRepository
	cases   repository.CaseRepository
}

// NewPartyService builds a PartyService.
func NewPartyService(parties repository.PartyRepository, cases repository.CaseRepository) PartyService {
	return &partyService{parties: parties, cases: cases}
}

// canManageParties: case owner or court staff.
func canManageParties(c *model.Case, actorID uint, actorRole model.Role) bool {
	switch actorRole {
	case model.RoleAdmin, model.RoleClerk:
		return true
	}
	return actorID == c.FiledByID
}

func (s *partyService) Add(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, name, partyType, advocate string, userID *uint) (*model.CaseParty, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !canManageParties(c, actorID, actorRole) {
		return nil, apperrors.NewAuthorizationError(string(model.RoleAdmin), string(model.RoleClerk))
	}

	p := &model.CaseParty{
		CaseID:    caseID,
		Name:      name,
		PartyType: partyType,
		Advocate:  advocate,
		UserID:    userID,
		Active:    true,
	}
	if err := s.parties.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}
	return p, nil
}

func (s *partyService) ListByCase(ctx context.Context, actorID uint, actorRole model.Role, caseID uint, activeOnly bool) ([]model.CaseParty, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !canView(c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}
	return s.parties.ListByCase(ctx, caseID, activeOnly)
}

func (s *partyService) Deactivate(ctx context.Context, actorID uint, actorRole model.Role, id uint) error {
	p, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	c, err := s.cases.FindByID(ctx, p.CaseID)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if !canManageParties(c, actorID, actorRole) {
		return apperrors.NewAuthorizationError(string(model.RoleAdmin), string(model.RoleClerk))
	}
	return s.parties.Deactivate(ctx, id)
}

// BookmarkService lets authenticated users follow cases.
type BookmarkService interface {
	Add(ctx context.Context, actorID uint, actorRole model.Role, caseID uint) (*model.Bookmark, error)
	ListOwn(ctx context.Context, actorID uint) ([]model.Bookmark, error)
	Remove(ctx context.Context, actorID uint, id uint) error
}

type bookmarkService struct {
	bookmarks repository.BookmarkRepository
	cases     repository.CaseRepository
}

// NewBookmarkService builds a BookmarkService.
func NewBookmarkService(bookmarks repository.BookmarkRepository, cases repository.CaseRepository) BookmarkService {
	return &bookmarkService{bookmarks: bookmarks, cases: cases}
}

func (s *bookmarkService) Add(ctx context.Context, actorID uint, actorRole model.Role, caseID uint) (*model.Bookmark, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !canView(c, actorID, actorRole) {
		return nil, apperrors.ErrNotFound
	}
	b := &model.Bookmark{UserID: actorID, CaseID: caseID}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, apperrors.ErrAlreadyExists
	}
	return b, nil
}

func (s *bookmarkService) ListOwn(ctx context.Context, actorID uint) ([]model.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, actorID)
}

func (s *bookmarkService) Remove(ctx context.Context, actorID uint, id uint) error {
	b, err := s.bookmarks.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if b.UserID != actorID {
		return apperrors.ErrNotFound
	}
	return s.bookmarks.Delete(ctx, id)
}
