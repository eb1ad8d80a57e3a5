package postgres

import (
	"context"

	"github.com/payflow/checkout-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type checkoutEventsRepo struct{ pool *pgxpool.Pool }

func (r *checkoutEventsRepo) Create(ctx context.Context, e models.CheckoutEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO checkout_events (id, transaction_id, action, details) VALUES ($1,$2,$3,$4)`,
		e.ID, e.TransactionID, e.Action, e.Details,
	)
	return err
}
