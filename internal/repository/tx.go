package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles transaction-bound repositories for multi-table writes.
type Repositories struct {
	Users         UserRepository
	Items         ItemRepository
	Notifications NotificationRepository
}

// TxManager runs a function with all repositories bound to one transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a GORM-backed transaction manager.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &Repositories{
			Users:         NewUserRepository(tx),
			Items:         NewItemRepository(tx),
			Notifications: NewNotificationRepository(tx),
		}
		return fn(ctx, repos)
	})
}
