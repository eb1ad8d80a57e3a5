package repository

import (
	"context"
	"errors"

	"github.com/payflow/checkout-backend/internal/models"
)

// ErrNoRows is returned by lookups that match nothing, so callers don't
// depend on the driver's sentinel.
var ErrNoRows = errors.New("no rows")

type Products interface {
	GetByID(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
}

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	GetBySessionID(ctx context.Context, sessionID string) (models.Transaction, error)
	// Update persists the confirmation outcome: payment intent and status.
	Update(ctx context.Context, tx models.Transaction) error
	List(ctx context.Context, limit, offset int) ([]models.Transaction, error)
}

type CheckoutEvents interface {
	Create(ctx context.Context, e models.CheckoutEvent) error
}
