package postgres

import (
	"context"
	"errors"

	"github.com/payflow/checkout-backend/internal/models"
	repo "github.com/payflow/checkout-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productsRepo struct{ pool *pgxpool.Pool }

func (r *productsRepo) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, price, image_url, created_at
		   FROM products
		  WHERE id=$1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, repo.ErrNoRows
	}
	return p, err
}

func (r *productsRepo) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, image_url, created_at
		   FROM products
		  ORDER BY name
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
