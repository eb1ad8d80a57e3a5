package payment

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// ExternalError wraps any failure reported by the payment processor so the
// boundary can map it to a status code without inspecting Stripe types.
type ExternalError struct {
	Msg string
}

func (e *ExternalError) Error() string { return e.Msg }

// StripeGateway holds the API credential explicitly instead of relying on
// the package-global stripe.Key.
type StripeGateway struct {
	api *client.API
	// success URL carries the {CHECKOUT_SESSION_ID} placeholder Stripe
	// substitutes on redirect.
	successURL string
	cancelURL  string
}

func NewStripeGateway(secretKey, domainURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:        api,
		successURL: domainURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  domainURL + "/cancel/",
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in CreateSessionInput) (Session, error) {
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(in.Currency),
		UnitAmount: stripe.Int64(in.UnitAmount),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(in.ProductName),
		},
	}
	if in.ImageURL != nil {
		priceData.ProductData.Images = stripe.StringSlice([]string{*in.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx
	// correlated back on confirmation (and usable by webhooks later)
	params.AddMetadata("product_id", in.ProductID)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, wrapStripeErr("create checkout session", err)
	}
	return fromStripeSession(sess), nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return Session{}, wrapStripeErr("retrieve checkout session", err)
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(s *stripe.CheckoutSession) Session {
	out := Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = &s.PaymentIntent.ID
	}
	if pid, ok := s.Metadata["product_id"]; ok && pid != "" {
		out.ProductID = &pid
	}
	return out
}

func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		return &ExternalError{Msg: fmt.Sprintf("%s: %s", op, sErr.Msg)}
	}
	return &ExternalError{Msg: fmt.Sprintf("%s: %s", op, err.Error())}
}
