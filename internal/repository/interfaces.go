package repository

import (
	"context"
	"time"

	"github.com/worlddist/ordering-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetActive returns the session only while expires_at > now.
	GetActive(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	UpsertMany(ctx context.Context, products []*domain.Product) error
}

type OrderRepository interface {
	// Create persists the order header and all items in one
	// transaction; on any failure nothing is visible afterwards.
	Create(ctx context.Context, order *domain.Order) error
	GetByUserID(ctx context.Context, userID uint) ([]*domain.Order, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Product ProductRepository
	Order   OrderRepository
}
