package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"courtflow/internal/auth"
	apperrors "courtflow/internal/errors"
	"courtflow/internal/logging"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// LoginResult carries both freshly issued tokens and the identity they belong
// to, with secret fields zeroed.
type LoginResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             *model.User
}

// AuthService handles authentication and credential operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password, fullName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh verifies a refresh token against the value stored for the
	// identity and issues a new access token. The refresh token itself is not
	// rotated here; rotation happens on login, logout and password change.
	Refresh(ctx context.Context, refreshToken string) (accessToken string, expiresAt time.Time, err error)
	Logout(ctx context.Context, refreshToken string) error
	// ChangePassword stores a new password hash and invalidates the stored
	// refresh token, bounding the blast radius of a compromised password.
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) error
}

type authService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService) AuthService {
	return &authService{users: users, jwt: jwt}
}

// authFailure tags cause as a generic authentication failure. The boundary
// maps on apperrors.ErrInvalidCredentials; the cause stays inspectable
// internally without ever reaching a client.
func authFailure(cause error) error {
	return errors.Join(apperrors.ErrInvalidCredentials, cause)
}

func (s *authService) Register(ctx context.Context, username, email, password, fullName string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         model.RolePublic,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The pre-checks race with concurrent registrations; the unique index
		// is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logging.FromContext(ctx).Info("user registered", "user_id", user.ID, "username", user.Username)
	return sanitize(user), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, authFailure(err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Replacing the stored hash rotates out any previously issued refresh
	// token for this identity.
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, auth.TokenHash(refreshToken)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	logging.FromContext(ctx).Info("user logged in", "user_id", user.ID)
	return &LoginResult{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
		User:             sanitize(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	user, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Username, string(user.Role))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, expiresAt, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	user, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	// Clearing the hash makes the presented token unusable even though it has
	// not expired.
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, ""); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	logging.FromContext(ctx).Info("user logged out", "user_id", user.ID)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return authFailure(err)
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	// Single statement: new hash in, refresh token hash out, so every other
	// session is forced back through login.
	if err := s.users.UpdateCredentials(ctx, userID, hash); err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	logging.FromContext(ctx).Info("password changed", "user_id", userID)
	return nil
}

// verifyRefresh checks signature and expiry, resolves the identity, and
// compares the presented token against the stored hash. A mismatch means the
// token was rotated out by a newer login, logout or password change.
func (s *authService) verifyRefresh(ctx context.Context, refreshToken string) (*model.User, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, authFailure(err)
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, authFailure(err)
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != auth.TokenHash(refreshToken) {
		return nil, authFailure(auth.ErrStaleToken)
	}
	return user, nil
}

// sanitize returns a copy safe to serialize.
func sanitize(u *model.User) *model.User {
	out := *u
	out.PasswordHash = ""
	out.RefreshTokenHash = ""
	return &out
}
