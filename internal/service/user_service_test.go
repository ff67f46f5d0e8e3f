package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
)

func TestUserService_GetProfile(t *testing.T) {
	t.Run("returns public projection", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
			ID:           1,
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: "secret-hash",
			Points:       150,
			Badges:       "First Find;Tech Finder",
			Level:        model.LevelBronze,
		}, nil)

		service := NewUserService(mockRepo, new(MockNotificationRepository), nil)
		profile, err := service.GetProfile(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", profile.Email)
		assert.Equal(t, 150, profile.Points)
		assert.Equal(t, []string{"First Find", "Tech Finder"}, profile.Badges)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo, new(MockNotificationRepository), nil)
		profile, err := service.GetProfile(context.Background(), 9)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, profile)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	newCity := "Riverside"
	newBio := "Frequent finder of lost things"

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
		ID:    1,
		Name:  "Alice",
		Email: "alice@example.com",
		City:  "Springfield",
		Level: model.LevelBronze,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.City == newCity && u.Bio == newBio && u.Name == "Alice"
	})).Return(nil)

	service := NewUserService(mockRepo, new(MockNotificationRepository), nil)
	profile, err := service.UpdateProfile(context.Background(), 1, ProfileInput{City: &newCity, Bio: &newBio})

	assert.NoError(t, err)
	assert.Equal(t, newCity, profile.City)
	assert.Equal(t, newBio, profile.Bio)
	assert.Equal(t, "Alice", profile.Name)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Notifications(t *testing.T) {
	mockNotifications := new(MockNotificationRepository)
	mockNotifications.On("ListByUser", mock.Anything, uint(1)).Return([]model.Notification{
		{UserID: 1, Type: model.NotificationBadge, Message: "Congratulations! You've earned the \"First Find\" badge!"},
		{UserID: 1, Type: model.NotificationPoints, Message: "You earned 50 points for reporting a found item!"},
	}, nil)
	mockNotifications.On("MarkAllRead", mock.Anything, uint(1)).Return(nil)

	service := NewUserService(new(MockUserRepository), mockNotifications, nil)

	notifications, err := service.ListNotifications(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, notifications, 2)

	err = service.MarkNotificationsRead(context.Background(), 1)
	assert.NoError(t, err)
	mockNotifications.AssertExpectations(t)
}
