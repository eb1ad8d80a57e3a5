package models

import "time"

type CheckoutEvent struct {
	ID            string         `json:"id"`
	TransactionID *string        `json:"transaction_id"`
	Action        string         `json:"action"`
	Details       map[string]any `json:"details"`
	CreatedAt     time.Time      `json:"created_at"`
}
