package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/model"
)

// ItemRepository defines item report persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Item, error)
	Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Item, error)
	CountFoundByUser(ctx context.Context, userID uint) (int64, error)
	CountReturnedByUser(ctx context.Context, userID uint) (int64, error)
	FindUnresolvedLostByCategory(ctx context.Context, category string) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id).Error
}

// FindByID returns an item with its owner preloaded for display.
func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListByUser(ctx context.Context, userID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Search applies the conjunctive filter. Absent criteria impose no
// constraint; substring matches use indexed LIKE rather than regex scans.
func (r *itemRepository) Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})

	if criteria.Keyword != "" {
		kw := "%" + strings.ToLower(criteria.Keyword) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", kw, kw)
	}
	if criteria.Category != "" {
		q = q.Where("category = ?", criteria.Category)
	}
	if criteria.DateFrom != nil {
		q = q.Where("created_at >= ?", *criteria.DateFrom)
	}
	if criteria.DateTo != nil {
		q = q.Where("created_at <= ?", *criteria.DateTo)
	}
	if criteria.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(criteria.Location)+"%")
	}
	if criteria.Color != "" {
		q = q.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(criteria.Color)+"%")
	}
	if criteria.Status != "" && criteria.Status != model.StatusAll {
		q = q.Where("status = ?", criteria.Status)
	}

	var items []model.Item
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) CountFoundByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ? AND status = ?", userID, model.StatusFound).
		Count(&count).Error
	return count, err
}

// CountReturnedByUser counts the caller's found items that were resolved,
// i.e. handed back to their owners.
func (r *itemRepository) CountReturnedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("user_id = ? AND status = ? AND is_resolved = ?", userID, model.StatusFound, true).
		Count(&count).Error
	return count, err
}

func (r *itemRepository) FindUnresolvedLostByCategory(ctx context.Context, category string) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("category = ? AND status = ? AND is_resolved = ?", category, model.StatusLost, false).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
