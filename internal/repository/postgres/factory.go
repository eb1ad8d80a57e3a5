package postgres

import (
	repo "github.com/payflow/checkout-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Products       repo.Products
	Transactions   repo.Transactions
	CheckoutEvents repo.CheckoutEvents
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Products:       &productsRepo{pool},
		Transactions:   &transactionsRepo{pool},
		CheckoutEvents: &checkoutEventsRepo{pool},
	}
}
