package repository

import (
	"context"

	"gorm.io/gorm"

	"courtflow/internal/model"
)

// PartyRepository defines case party persistence operations. Parties are
// deactivated rather than deleted.
type PartyRepository interface {
	Create(ctx context.Context, p *model.CaseParty) error
	FindByID(ctx context.Context, id uint) (*model.CaseParty, error)
	ListByCase(ctx context.Context, caseID uint, activeOnly bool) ([]model.CaseParty, error)
	Deactivate(ctx context.Context, id uint) error
}

type partyRepository struct {
	db *gorm.DB
}

// NewPartyRepository builds a GORM-backed repository.
func NewPartyRepository(db *gorm.DB) PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, p *model.CaseParty) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partyRepository) FindByID(ctx context.Context, id uint) (*model.CaseParty, error) {
	var p model.CaseParty
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partyRepository) ListByCase(ctx context.Context, caseID uint, activeOnly bool) ([]model.CaseParty, error) {
	q := r.db.WithContext(ctx).Where("case_id = ?", caseID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var parties []model.CaseParty
	if err := q.Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *partyRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.CaseParty{}).Where("id = ?", id).
		Update("active", false).Error
}

// DocumentRepository defines document metadata persistence operations.
type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	FindByID(ctx context.Context, id uint) (*model.Document, error)
	ListByCase(ctx context.Context, caseID uint) ([]model.Document, error)
	Delete(ctx context.Context, id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository builds a GORM-backed repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) ListByCase(ctx context.Context, caseID uint) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.WithContext(ctx).Where("case_id = ?", caseID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

// BookmarkRepository defines bookmark persistence operations.
type BookmarkRepository interface {
	Create(ctx context.Context, b *model.Bookmark) error
	FindByID(ctx context.Context, id uint) (*model.Bookmark, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Bookmark, error)
	Delete(ctx context.Context, id uint) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository builds a GORM-backed repository.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, b *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookmarkRepository) FindByID(ctx context.Context, id uint) (*model.Bookmark, error) {
	var b model.Bookmark
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Bookmark{}, id).Error
}

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uint) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository builds a GORM-backed repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("`read` = ?", false)
	}
	var ns []model.Notification
	if err := q.Order("created_at DESC").Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).
		Update("read", true).Error
}
