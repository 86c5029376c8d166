package service

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"member-pricing-service/internal/entity"
)

type ProductStore interface {
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdatePrices(ctx context.Context, product entity.Product, update entity.PriceUpdate) error
}

// ProductCache holds stored (unresolved) products. Get reports a miss as
// (nil, false, nil).
type ProductCache interface {
	Get(ctx context.Context, id int) (*entity.Product, bool, error)
	Set(ctx context.Context, product *entity.Product) error
	Invalidate(ctx context.Context, ids ...int) error
}

// EventPublisher is satisfied by *kafka.Writer.
type EventPublisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type UserStore interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
}

type SessionStore interface {
	Save(ctx context.Context, email, token string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
}
