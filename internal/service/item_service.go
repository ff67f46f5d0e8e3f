package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/cache"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

const itemCacheTTL = 5 * time.Minute

// ItemInput carries the fields of a new item report. Status is never taken
// from input; the reporting operation fixes it.
type ItemInput struct {
	Name              string
	Category          string
	Description       string
	DateLostOrFound   *time.Time
	Location          string
	Latitude          *float64
	Longitude         *float64
	Color             string
	UniqueIdentifiers string
	ContactInfo       string
	Reward            string
	DropOffLocation   string
	IsEmergency       bool
}

// UpdateItemInput merges provided fields into an existing report. Nil fields
// are left untouched; status and owner are immutable.
type UpdateItemInput struct {
	Name              *string
	Category          *string
	Description       *string
	DateLostOrFound   *time.Time
	Location          *string
	Latitude          *float64
	Longitude         *float64
	Color             *string
	UniqueIdentifiers *string
	ContactInfo       *string
	Reward            *string
	DropOffLocation   *string
	IsEmergency       *bool
}

// ItemService exposes item report operations.
type ItemService interface {
	ReportLost(ctx context.Context, ownerID uint, input ItemInput) (*model.Item, error)
	ReportFound(ctx context.Context, ownerID uint, input ItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	ListUserItems(ctx context.Context, userID uint) ([]model.Item, error)
	Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, callerID uint, input UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID, callerID uint) error
	ResolveItem(ctx context.Context, id uuid.UUID, callerID uint) (*model.Item, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	cache        *cache.Client
	gamification GamificationService
}

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository, cache *cache.Client, gamification GamificationService) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		cache:        cache,
		gamification: gamification,
	}
}

func itemCacheKey(id uuid.UUID) string {
	return "item:" + id.String()
}

func validateItemInput(input ItemInput) error {
	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"category", input.Category},
		{"description", input.Description},
		{"location", input.Location},
		{"contactInfo", input.ContactInfo},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrMissingRequiredField, r.field)
		}
	}
	if !model.ValidCategory(input.Category) {
		return apperrors.ErrInvalidCategory
	}
	return nil
}

// ReportLost creates a lost item report owned by the caller.
func (s *itemService) ReportLost(ctx context.Context, ownerID uint, input ItemInput) (*model.Item, error) {
	return s.createItem(ctx, ownerID, input, model.StatusLost)
}

// ReportFound creates a found item report, awards the reporter and notifies
// owners of potentially matching lost reports.
func (s *itemService) ReportFound(ctx context.Context, ownerID uint, input ItemInput) (*model.Item, error) {
	item, err := s.createItem(ctx, ownerID, input, model.StatusFound)
	if err != nil {
		return nil, err
	}

	if err := s.gamification.AwardFoundReport(ctx, ownerID, item); err != nil {
		return nil, fmt.Errorf("award found report: %w", err)
	}

	// Match notifications are best effort.
	_ = s.gamification.NotifyPotentialMatches(ctx, item)

	return item, nil
}

func (s *itemService) createItem(ctx context.Context, ownerID uint, input ItemInput, status string) (*model.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &model.Item{
		UserID:            ownerID,
		Name:              input.Name,
		Category:          input.Category,
		Description:       input.Description,
		DateLostOrFound:   input.DateLostOrFound,
		Location:          input.Location,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Color:             input.Color,
		UniqueIdentifiers: input.UniqueIdentifiers,
		ContactInfo:       input.ContactInfo,
		Reward:            input.Reward,
		DropOffLocation:   input.DropOffLocation,
		IsEmergency:       input.IsEmergency,
		Status:            status,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// GetItem returns an item by ID with its owner resolved for display.
func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	if data, _ := s.cache.Get(ctx, itemCacheKey(id)); data != nil {
		var cached model.Item
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(item); err == nil {
		_ = s.cache.Set(ctx, itemCacheKey(id), payload, itemCacheTTL)
	}
	return item, nil
}

func (s *itemService) findItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *itemService) ListUserItems(ctx context.Context, userID uint) ([]model.Item, error) {
	return s.itemRepo.ListByUser(ctx, userID)
}

func (s *itemService) Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Item, error) {
	return s.itemRepo.Search(ctx, criteria)
}

// UpdateItem merges provided fields into an owned item report.
func (s *itemService) UpdateItem(ctx context.Context, id uuid.UUID, callerID uint, input UpdateItemInput) (*model.Item, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != callerID {
		return nil, apperrors.ErrNotItemOwner
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		if !model.ValidCategory(*input.Category) {
			return nil, apperrors.ErrInvalidCategory
		}
		item.Category = *input.Category
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.DateLostOrFound != nil {
		item.DateLostOrFound = input.DateLostOrFound
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.Latitude != nil {
		item.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		item.Longitude = input.Longitude
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.UniqueIdentifiers != nil {
		item.UniqueIdentifiers = *input.UniqueIdentifiers
	}
	if input.ContactInfo != nil {
		item.ContactInfo = *input.ContactInfo
	}
	if input.Reward != nil {
		item.Reward = *input.Reward
	}
	if input.DropOffLocation != nil {
		item.DropOffLocation = *input.DropOffLocation
	}
	if input.IsEmergency != nil {
		item.IsEmergency = *input.IsEmergency
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	_ = s.cache.Delete(ctx, itemCacheKey(id))
	return item, nil
}

// DeleteItem removes an owned item report.
func (s *itemService) DeleteItem(ctx context.Context, id uuid.UUID, callerID uint) error {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != callerID {
		return apperrors.ErrNotItemOwner
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	_ = s.cache.Delete(ctx, itemCacheKey(id))
	return nil
}

// ResolveItem marks an owned report as resolved. Resolution is terminal.
// Resolving a found item counts as returning it to its owner and triggers
// the return awards.
func (s *itemService) ResolveItem(ctx context.Context, id uuid.UUID, callerID uint) (*model.Item, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != callerID {
		return nil, apperrors.ErrNotItemOwner
	}
	if item.IsResolved {
		return nil, apperrors.ErrItemAlreadyResolved
	}

	now := time.Now()
	item.IsResolved = true
	item.ResolvedAt = &now

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("resolve item: %w", err)
	}

	_ = s.cache.Delete(ctx, itemCacheKey(id))

	if item.Status == model.StatusFound {
		if err := s.gamification.AwardItemReturned(ctx, callerID, item); err != nil {
			return nil, fmt.Errorf("award return: %w", err)
		}
	}

	return item, nil
}
