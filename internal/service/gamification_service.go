package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"lostfound/internal/model"
	"lostfound/internal/repository"
)

// GamificationService awards points, badges and membership levels for
// community actions and records the matching notifications. Awards are
// computed from server-side item history and persisted in one transaction
// with the user mutation, so the thresholds cannot drift across devices.
type GamificationService interface {
	AwardFoundReport(ctx context.Context, userID uint, item *model.Item) error
	AwardItemReturned(ctx context.Context, userID uint, item *model.Item) error
	NotifyPotentialMatches(ctx context.Context, found *model.Item) error
}

type gamificationService struct {
	txm              repository.TxManager
	itemRepo         repository.ItemRepository
	notificationRepo repository.NotificationRepository
}

// NewGamificationService creates a new gamification service.
func NewGamificationService(
	txm repository.TxManager,
	itemRepo repository.ItemRepository,
	notificationRepo repository.NotificationRepository,
) GamificationService {
	return &gamificationService{
		txm:              txm,
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
	}
}

// itemMetadata records the related item on a notification.
func itemMetadata(item *model.Item) datatypes.JSON {
	payload, err := json.Marshal(map[string]string{"item_id": item.ID.String()})
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}

func badgeNotification(userID uint, badge string) *model.Notification {
	return &model.Notification{
		UserID:  userID,
		Type:    model.NotificationBadge,
		Message: fmt.Sprintf("Congratulations! You've earned the %q badge!", badge),
	}
}

// AwardFoundReport grants the reporter 50 points, evaluates milestone and
// first-in-category badges against the item table, and records the
// notifications. Called once per persisted found report.
func (s *gamificationService) AwardFoundReport(ctx context.Context, userID uint, item *model.Item) error {
	return s.txm.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		user, err := repos.Users.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		foundCount, err := repos.Items.CountFoundByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count found reports: %w", err)
		}

		notifications := []*model.Notification{
			{
				UserID:   userID,
				Type:     model.NotificationFoundItem,
				Message:  fmt.Sprintf("You reported a found item: %s", item.Name),
				Metadata: itemMetadata(item),
			},
			{
				UserID:  userID,
				Type:    model.NotificationPoints,
				Message: "You earned 50 points for reporting a found item!",
			},
		}

		notifications = append(notifications, s.applyPoints(user, model.FoundReportPoints)...)

		for _, milestone := range model.FoundMilestones {
			if foundCount >= int64(milestone.Count) && user.AddBadge(milestone.Badge) {
				notifications = append(notifications, badgeNotification(userID, milestone.Badge))
			}
		}

		if badge, ok := model.CategoryBadges[item.Category]; ok && user.AddBadge(badge) {
			notifications = append(notifications, badgeNotification(userID, badge))
		}

		return s.persistAwards(ctx, repos, user, notifications)
	})
}

// AwardItemReturned grants 50 points for handing a found item back to its
// owner and evaluates the return milestone badges.
func (s *gamificationService) AwardItemReturned(ctx context.Context, userID uint, item *model.Item) error {
	return s.txm.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		user, err := repos.Users.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		returnedCount, err := repos.Items.CountReturnedByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count returned items: %w", err)
		}

		notifications := []*model.Notification{
			{
				UserID:   userID,
				Type:     model.NotificationPoints,
				Message:  "You earned 50 points for returning a found item!",
				Metadata: itemMetadata(item),
			},
		}

		notifications = append(notifications, s.applyPoints(user, model.ReturnPoints)...)

		for _, milestone := range model.ReturnMilestones {
			if returnedCount >= int64(milestone.Count) && user.AddBadge(milestone.Badge) {
				notifications = append(notifications, badgeNotification(userID, milestone.Badge))
			}
		}

		return s.persistAwards(ctx, repos, user, notifications)
	})
}

// applyPoints adds points and handles the one-time Gold transition. The gold
// notification fires only when the level actually changes, never again once
// the user is already Gold.
func (s *gamificationService) applyPoints(user *model.User, points int) []*model.Notification {
	wasGold := user.Level == model.LevelGold
	user.Points += points
	if user.Points >= model.GoldPointsThreshold {
		user.Level = model.LevelGold
	}

	if !wasGold && user.Level == model.LevelGold {
		return []*model.Notification{{
			UserID:  user.ID,
			Type:    model.NotificationGold,
			Message: "Congratulations! You've reached Gold Member status!",
		}}
	}
	return nil
}

func (s *gamificationService) persistAwards(ctx context.Context, repos *repository.Repositories, user *model.User, notifications []*model.Notification) error {
	if err := repos.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	for _, notification := range notifications {
		if err := repos.Notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
	}
	return nil
}

// NotifyPotentialMatches tells owners of unresolved lost reports in the same
// category that a found report with an overlapping name was filed. Best
// effort; failures here never fail the report itself.
func (s *gamificationService) NotifyPotentialMatches(ctx context.Context, found *model.Item) error {
	lostItems, err := s.itemRepo.FindUnresolvedLostByCategory(ctx, found.Category)
	if err != nil {
		return fmt.Errorf("find lost candidates: %w", err)
	}

	foundName := strings.ToLower(found.Name)
	for i := range lostItems {
		lost := &lostItems[i]
		if lost.UserID == found.UserID {
			continue
		}
		lostName := strings.ToLower(lost.Name)
		if !strings.Contains(lostName, foundName) && !strings.Contains(foundName, lostName) {
			continue
		}
		notification := &model.Notification{
			UserID:   lost.UserID,
			Type:     model.NotificationMatch,
			Message:  fmt.Sprintf("Someone may have found your lost %s: %q was just reported found", lost.Name, found.Name),
			Metadata: itemMetadata(found),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("create match notification: %w", err)
		}
	}
	return nil
}
