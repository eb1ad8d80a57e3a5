package models

import (
	"math"
	"time"
)

// Well-known Stripe payment statuses. Status is deliberately an open string:
// whatever the API reports at confirmation time is stored as-is.
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)

type Transaction struct {
	ID                  string    `json:"id"`
	ProductID           *string   `json:"product_id,omitempty"`
	StripeSessionID     string    `json:"stripe_session_id"`
	StripePaymentIntent *string   `json:"stripe_payment_intent,omitempty"`
	Amount              float64   `json:"amount"`
	Currency            string    `json:"currency"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// MinorUnits converts a major-unit amount (e.g. 19.99) to the integer minor
// units (1999) the payment API expects.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MajorUnits is the inverse of MinorUnits.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
