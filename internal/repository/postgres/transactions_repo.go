package postgres

import (
	"context"
	"errors"

	"github.com/payflow/checkout-backend/internal/models"
	repo "github.com/payflow/checkout-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	const q = `
INSERT INTO transactions (
  id, product_id, stripe_session_id, stripe_payment_intent, amount, currency, status
) VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, product_id, stripe_session_id, stripe_payment_intent, amount, currency, status, created_at;
`
	err := r.pool.QueryRow(ctx, q,
		tx.ID, tx.ProductID, tx.StripeSessionID, tx.StripePaymentIntent, tx.Amount, tx.Currency, tx.Status,
	).Scan(&tx.ID, &tx.ProductID, &tx.StripeSessionID, &tx.StripePaymentIntent, &tx.Amount, &tx.Currency, &tx.Status, &tx.CreatedAt)
	return tx, err
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return r.getWhere(ctx, `id=$1`, id)
}

func (r *transactionsRepo) GetBySessionID(ctx context.Context, sessionID string) (models.Transaction, error) {
	return r.getWhere(ctx, `stripe_session_id=$1`, sessionID)
}

func (r *transactionsRepo) getWhere(ctx context.Context, cond, arg string) (models.Transaction, error) {
	var tx models.Transaction
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, stripe_session_id, stripe_payment_intent, amount, currency, status, created_at
		   FROM transactions
		  WHERE `+cond,
		arg,
	).Scan(&tx.ID, &tx.ProductID, &tx.StripeSessionID, &tx.StripePaymentIntent, &tx.Amount, &tx.Currency, &tx.Status, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repo.ErrNoRows
	}
	return tx, err
}

func (r *transactionsRepo) Update(ctx context.Context, tx models.Transaction) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE transactions SET stripe_payment_intent=$2, status=$3 WHERE id=$1`,
		tx.ID, tx.StripePaymentIntent, tx.Status,
	)
	return err
}

func (r *transactionsRepo) List(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, stripe_session_id, stripe_payment_intent, amount, currency, status, created_at
		   FROM transactions
		  ORDER BY created_at DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.ProductID, &tx.StripeSessionID, &tx.StripePaymentIntent, &tx.Amount, &tx.Currency, &tx.Status, &tx.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
