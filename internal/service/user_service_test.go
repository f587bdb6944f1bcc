package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/model"
)

func TestUserService_GetProfile(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, id).Return(&model.User{
					ID: id, Username: "alice", Email: "a@x.com", City: "NYC", MobileNumber: "5551234",
					PasswordHash: "should-not-leak",
				}, nil)
			},
		},
		{
			name: "vanished user",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			user, err := NewUserService(mockRepo, nil).GetProfile(context.Background(), id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
				assert.Empty(t, user.PasswordHash)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetProfile_StoreError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	cause := errors.New("timeout")
	mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewUserService(mockRepo, nil).GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrUserNotFound)
}
