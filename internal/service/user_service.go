package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lostfound/internal/cache"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileInput carries the mutable contact and bio fields of a profile.
// Email, password and gamification state are not editable here.
type ProfileInput struct {
	Name           *string
	Phone          *string
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	ProfilePicture *string
	Bio            *string
}

// UserService exposes profile and notification operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.PublicUser, error)
	UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*model.PublicUser, error)
	ListNotifications(ctx context.Context, userID uint) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID uint) error
}

type userService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	cache            *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cache:            cache,
	}
}

func profileCacheKey(id uint) string {
	return fmt.Sprintf("profile:%d", id)
}

// GetProfile returns the public projection of a user.
func (s *userService) GetProfile(ctx context.Context, id uint) (*model.PublicUser, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(id)); data != nil {
		var cached model.PublicUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	public := user.Public()
	if payload, err := json.Marshal(public); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(id), payload, profileCacheTTL)
	}
	return &public, nil
}

// UpdateProfile merges provided profile fields and persists them.
func (s *userService) UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.ZipCode != nil {
		user.ZipCode = *input.ZipCode
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(id))

	public := user.Public()
	return &public, nil
}

// ListNotifications returns the user's notifications newest-first.
func (s *userService) ListNotifications(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// MarkNotificationsRead marks all of the user's notifications as read.
func (s *userService) MarkNotificationsRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
