package payment

import "context"

// Session is the slice of a Stripe Checkout Session this service cares
// about, with metadata lifted into typed optional fields.
type Session struct {
	ID              string
	URL             string
	PaymentStatus   string
	AmountTotal     int64 // minor units
	Currency        string
	PaymentIntentID *string
	ProductID       *string
}

type CreateSessionInput struct {
	ProductID   string
	ProductName string
	ImageURL    *string
	UnitAmount  int64 // minor units
	Currency    string
}

// Gateway is the checkout-session surface of the payment processor.
type Gateway interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (Session, error)
}
