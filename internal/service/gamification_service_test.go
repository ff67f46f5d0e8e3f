package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lostfound/internal/model"
	"lostfound/internal/repository"
)

type awardFixture struct {
	userRepo         *MockUserRepository
	itemRepo         *MockItemRepository
	notificationRepo *MockNotificationRepository
	service          GamificationService
	notifications    []*model.Notification
}

func newAwardFixture() *awardFixture {
	f := &awardFixture{
		userRepo:         new(MockUserRepository),
		itemRepo:         new(MockItemRepository),
		notificationRepo: new(MockNotificationRepository),
	}
	txm := &fakeTxManager{repos: &repository.Repositories{
		Users:         f.userRepo,
		Items:         f.itemRepo,
		Notifications: f.notificationRepo,
	}}
	f.service = NewGamificationService(txm, f.itemRepo, f.notificationRepo)

	f.notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Run(func(args mock.Arguments) {
			f.notifications = append(f.notifications, args.Get(1).(*model.Notification))
		}).
		Return(nil)
	return f
}

func (f *awardFixture) notificationsOfType(typ string) []*model.Notification {
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func TestGamificationService_AwardFoundReport_FirstElectronicsFind(t *testing.T) {
	f := newAwardFixture()
	user := &model.User{ID: 1, Name: "Alice", Level: model.LevelBronze}
	f.userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)
	f.itemRepo.On("CountFoundByUser", mock.Anything, uint(1)).Return(int64(1), nil)

	item := &model.Item{ID: uuid.New(), UserID: 1, Name: "iPhone 13", Category: "Electronics", Status: model.StatusFound}
	err := f.service.AwardFoundReport(context.Background(), 1, item)

	assert.NoError(t, err)
	assert.Equal(t, model.FoundReportPoints, user.Points)
	assert.Equal(t, model.LevelBronze, user.Level)
	assert.True(t, user.HasBadge("First Find"))
	assert.True(t, user.HasBadge("Tech Finder"))
	assert.False(t, user.HasBadge("Helpful Citizen"))

	assert.Len(t, f.notificationsOfType(model.NotificationPoints), 1)
	assert.Len(t, f.notificationsOfType(model.NotificationFoundItem), 1)
	assert.Len(t, f.notificationsOfType(model.NotificationBadge), 2)
	assert.Empty(t, f.notificationsOfType(model.NotificationGold))
	f.userRepo.AssertExpectations(t)
}

func TestGamificationService_AwardFoundReport_MissedMilestonesCatchUp(t *testing.T) {
	f := newAwardFixture()
	user := &model.User{ID: 1, Level: model.LevelBronze, Badges: "First Find"}
	f.userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)
	f.itemRepo.On("CountFoundByUser", mock.Anything, uint(1)).Return(int64(10), nil)

	item := &model.Item{ID: uuid.New(), UserID: 1, Name: "Umbrella", Category: "Other", Status: model.StatusFound}
	err := f.service.AwardFoundReport(context.Background(), 1, item)

	assert.NoError(t, err)
	assert.True(t, user.HasBadge("Helpful Citizen"))
	assert.True(t, user.HasBadge("Community Hero"))
	assert.False(t, user.HasBadge("Lost & Found Expert"))
	// "First Find" was already held, so only the two new milestones notify.
	assert.Len(t, f.notificationsOfType(model.NotificationBadge), 2)
}

func TestGamificationService_AwardFoundReport_CategoryBadgeNotReawarded(t *testing.T) {
	f := newAwardFixture()
	user := &model.User{ID: 1, Level: model.LevelBronze, Badges: "First Find;Tech Finder"}
	f.userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)
	f.itemRepo.On("CountFoundByUser", mock.Anything, uint(1)).Return(int64(2), nil)

	item := &model.Item{ID: uuid.New(), UserID: 1, Name: "Laptop", Category: "Electronics", Status: model.StatusFound}
	err := f.service.AwardFoundReport(context.Background(), 1, item)

	assert.NoError(t, err)
	assert.Equal(t, []string{"First Find", "Tech Finder"}, user.BadgeList())
	assert.Empty(t, f.notificationsOfType(model.NotificationBadge))
	assert.Len(t, f.notificationsOfType(model.NotificationPoints), 1)
}

func TestGamificationService_GoldTransition(t *testing.T) {
	t.Run("crossing the threshold fires the gold notification once", func(t *testing.T) {
		f := newAwardFixture()
		user := &model.User{ID: 1, Points: 450, Level: model.LevelBronze, Badges: "First Find"}
		f.userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
		f.userRepo.On("Update", mock.Anything, user).Return(nil)
		f.itemRepo.On("CountFoundByUser", mock.Anything, uint(1)).Return(int64(3), nil)

		item := &model.Item{ID: uuid.New(), UserID: 1, Name: "Scarf", Category: "Clothing", Status: model.StatusFound}
		err := f.service.AwardFoundReport(context.Background(), 1, item)

		assert.NoError(t, err)
		assert.Equal(t, 500, user.Points)
		assert.Equal(t, model.LevelGold, user.Level)
		assert.Len(t, f.notificationsOfType(model.NotificationGold), 1)
	})

	t.Run("already gold stays silent", func(t *testing.T) {
		f := newAwardFixture()
		user := &model.User{ID: 1, Points: 600, Level: model.LevelGold, Badges: "First Find"}
		f.userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
		f.userRepo.On("Update", mock.Anything, user).Return(nil)
		f.itemRepo.On("CountFoundByUser", mock.Anything, uint(1)).Return(int64(4), nil)

		item := &model.Item{ID: uuid.New(), UserID: 1, Name: "Gloves", Category: "Clothing", Status: model.StatusFound}
		err := f.service.AwardFoundReport(context.Background(), 1, item)

		assert.NoError(t, err)
		assert.Equal(t, 650, user.Points)
		assert.Empty(t, f.notificationsOfType(model.NotificationGold))
	})
}

func TestGamificationService_AwardItemReturned(t *testing.T) {
	tests := []struct {
		name           string
		returnedCount  int64
		existingBadges string
		wantBadges     []string
	}{
		{
			name:          "first return",
			returnedCount: 1,
			wantBadges:    []string{"Good Samaritan"},
		},
		{
			name:           "fifth return",
			returnedCount:  5,
			existingBadges: "Good Samaritan",
			wantBadges:     []string{"Good Samaritan", "Returned With Care"},
		},
		{
			name:           "tenth return",
			returnedCount:  10,
			existingBadges: "Good Samaritan;Returned With Care",
			wantBadges:     []string{"Good Samaritan", "Returned With Care", "Reunion Master"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAwardFixture()
			user := &model.User{ID: 2, Level: model.LevelBronze, Badges: tt.existingBadges}
			f.userRepo.On("FindByID", mock.Anything, uint(2)).Return(user, nil)
			f.userRepo.On("Update", mock.Anything, user).Return(nil)
			f.itemRepo.On("CountReturnedByUser", mock.Anything, uint(2)).Return(tt.returnedCount, nil)

			item := &model.Item{ID: uuid.New(), UserID: 2, Name: "Wallet", Category: "Wallet/Purse", Status: model.StatusFound}
			err := f.service.AwardItemReturned(context.Background(), 2, item)

			assert.NoError(t, err)
			assert.Equal(t, model.ReturnPoints, user.Points)
			assert.Equal(t, tt.wantBadges, user.BadgeList())
			// Returns never award category badges.
			assert.False(t, user.HasBadge("Wallet Saver"))
			assert.Len(t, f.notificationsOfType(model.NotificationPoints), 1)
		})
	}
}

func TestGamificationService_NotifyPotentialMatches(t *testing.T) {
	found := &model.Item{ID: uuid.New(), UserID: 1, Name: "Black Wallet", Category: "Wallet/Purse", Status: model.StatusFound}

	lostItems := []model.Item{
		{ID: uuid.New(), UserID: 2, Name: "black wallet with zipper", Category: "Wallet/Purse", Status: model.StatusLost},
		{ID: uuid.New(), UserID: 1, Name: "Black Wallet", Category: "Wallet/Purse", Status: model.StatusLost},  // reporter's own
		{ID: uuid.New(), UserID: 3, Name: "Red Coin Purse", Category: "Wallet/Purse", Status: model.StatusLost}, // no name overlap
	}

	f := newAwardFixture()
	f.itemRepo.On("FindUnresolvedLostByCategory", mock.Anything, "Wallet/Purse").Return(lostItems, nil)

	err := f.service.NotifyPotentialMatches(context.Background(), found)

	assert.NoError(t, err)
	matches := f.notificationsOfType(model.NotificationMatch)
	assert.Len(t, matches, 1)
	assert.Equal(t, uint(2), matches[0].UserID)
	assert.Contains(t, matches[0].Message, "Black Wallet")
	f.itemRepo.AssertExpectations(t)
}
