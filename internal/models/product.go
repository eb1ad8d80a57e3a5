package models

import (
	"errors"
	"strings"
	"time"
)

// Product is owned by the catalog subsystem; checkout only reads it.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" { return errors.New("name required") }
	if p.Price < 0 { return errors.New("price must be >= 0") }
	return nil
}

// UnitAmount converts the price to the integer minor units Stripe expects.
func (p *Product) UnitAmount() int64 {
	return MinorUnits(p.Price)
}
