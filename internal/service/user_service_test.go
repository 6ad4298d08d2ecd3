package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("normalizes the email before storing it", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProjectionByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
		mockRepo.On("FindByEmail", mock.Anything, "judge@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("UpdateProfile", mock.Anything, uint(5), "J. Judge", "judge@example.com").Return(nil)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), 5, model.RoleJudge, 5, "J. Judge", "  Judge@Example.COM ")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email held by another identity reads as already exists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProjectionByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
		mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 9, Email: "taken@example.com"}, nil)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), 5, model.RoleLitigant, 5, "Name", "taken@example.com")

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("keeping one's own email is not a collision", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProjectionByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Email: "own@example.com"}, nil)
		mockRepo.On("FindByEmail", mock.Anything, "own@example.com").Return(&model.User{ID: 5, Email: "own@example.com"}, nil)
		mockRepo.On("UpdateProfile", mock.Anything, uint(5), "New Name", "own@example.com").Return(nil)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), 5, model.RoleLitigant, 5, "New Name", "own@example.com")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate key on write reads as already exists", func(t *testing.T) {
		// The pre-check races with a concurrent update; the unique index wins.
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProjectionByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
		mockRepo.On("FindByEmail", mock.Anything, "fresh@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("UpdateProfile", mock.Anything, uint(5), "Name", "fresh@example.com").Return(gorm.ErrDuplicatedKey)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), 5, model.RoleLitigant, 5, "Name", "fresh@example.com")

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})

	t.Run("stranger cannot edit another profile", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), 7, model.RoleLitigant, 5, "Name", "x@example.com")

		var aerr *apperrors.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
