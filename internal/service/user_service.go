package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"courtflow/internal/cache"
	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes identity profile and administration operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	// UpdateProfile is owner-or-admin.
	UpdateProfile(ctx context.Context, actorID uint, actorRole model.Role, id uint, fullName, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ChangeRole(ctx context.Context, id uint, role model.Role) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindProjectionByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID uint, actorRole model.Role, id uint, fullName, email string) (*model.User, error) {
	if actorID != id && actorRole != model.RoleAdmin {
		return nil, apperrors.NewAuthorizationError(string(model.RoleAdmin))
	}
	if _, err := s.repo.FindProjectionByID(ctx, id); err != nil {
		return nil, apperrors.ErrNotFound
	}

	// Emails are stored lowercased; login looks them up that way.
	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil && existing.ID != id {
		return nil, apperrors.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if err := s.repo.UpdateProfile(ctx, id, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindProjectionByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, role)
	}
	if _, err := s.repo.FindProjectionByID(ctx, id); err != nil {
		return nil, apperrors.ErrNotFound
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindProjectionByID(ctx, id)
}
