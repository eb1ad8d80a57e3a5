package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/payflow/checkout-backend/internal/metrics"
	"github.com/payflow/checkout-backend/internal/models"
	"github.com/payflow/checkout-backend/internal/payment"
	repo "github.com/payflow/checkout-backend/internal/repository"
	"github.com/payflow/checkout-backend/internal/worker"
)

type CheckoutService struct {
	products repo.Products
	trx      repo.Transactions
	events   repo.CheckoutEvents
	gateway  payment.Gateway
	wp       *worker.Pool
	currency string
}

func NewCheckoutService(p repo.Products, t repo.Transactions, e repo.CheckoutEvents, g payment.Gateway, wp *worker.Pool, currency string) *CheckoutService {
	return &CheckoutService{products: p, trx: t, events: e, gateway: g, wp: wp, currency: currency}
}

// CreateSessionResult is what the create handler returns to the client.
type CreateSessionResult struct {
	SessionID   string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

// ConfirmResult mirrors the confirmation payload the storefront renders.
type ConfirmResult struct {
	Message       string  `json:"message"`
	TransactionID *string `json:"transaction_id"`
	SessionID     string  `json:"session_id"`
	PaymentIntent *string `json:"payment_intent"`
	AmountTotal   float64 `json:"amount_total"`
	Currency      string  `json:"currency"`
	PaymentStatus string  `json:"payment_status"`
	ProductID     *string `json:"product_id"`
}

// ----------------- Session creation -----------------

// CreateSession opens a checkout session with the payment processor and
// records exactly one unpaid Transaction for it.
func (s *CheckoutService) CreateSession(ctx context.Context, productID string) (CreateSessionResult, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return CreateSessionResult{}, ErrNotFound
		}
		return CreateSessionResult{}, err
	}

	sess, err := s.gateway.CreateSession(ctx, payment.CreateSessionInput{
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		UnitAmount:  product.UnitAmount(),
		Currency:    s.currency,
	})
	if err != nil {
		metrics.CheckoutFailures.WithLabelValues("create_session").Inc()
		return CreateSessionResult{}, err
	}

	tx, err := s.trx.Create(ctx, models.Transaction{
		ProductID:       &product.ID,
		StripeSessionID: sess.ID,
		Amount:          product.Price,
		Currency:        s.currency,
		Status:          models.StatusUnpaid,
	})
	if err != nil {
		// The remote session stays open; there is no compensation call.
		// Logged with the session id so it can be reconciled by hand.
		slog.Error("transaction persist failed after session create",
			"session_id", sess.ID, "product_id", product.ID, "err", err)
		metrics.CheckoutFailures.WithLabelValues("persist").Inc()
		return CreateSessionResult{}, err
	}

	metrics.SessionsCreated.Inc()
	s.record(tx.ID, "session_created", map[string]any{
		"session_id": sess.ID,
		"product_id": product.ID,
	})
	return CreateSessionResult{SessionID: sess.ID, RedirectURL: sess.URL}, nil
}

// ----------------- Success confirmation -----------------

// ConfirmSuccess reconciles the local Transaction against the session the
// processor reports. The processor is the authority for status; a missing
// local record is not an error.
func (s *CheckoutService) ConfirmSuccess(ctx context.Context, sessionID string) (ConfirmResult, error) {
	if sessionID == "" {
		return ConfirmResult{}, &ValidationError{Field: "session_id", Msg: "required"}
	}

	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		metrics.CheckoutFailures.WithLabelValues("retrieve_session").Inc()
		return ConfirmResult{}, err
	}

	var txID *string
	tx, err := s.trx.GetBySessionID(ctx, sessionID)
	switch {
	case err == nil:
		tx.StripePaymentIntent = sess.PaymentIntentID
		tx.Status = sess.PaymentStatus
		if err := s.trx.Update(ctx, tx); err != nil {
			return ConfirmResult{}, err
		}
		txID = &tx.ID
		s.record(tx.ID, "session_confirmed", map[string]any{
			"session_id":     sessionID,
			"payment_status": sess.PaymentStatus,
		})
	case errors.Is(err, repo.ErrNoRows):
		// confirmation proceeds on external data alone
	default:
		return ConfirmResult{}, err
	}

	metrics.Confirmations.WithLabelValues(sess.PaymentStatus).Inc()
	return ConfirmResult{
		Message:       "Payment was successful!",
		TransactionID: txID,
		SessionID:     sess.ID,
		PaymentIntent: sess.PaymentIntentID,
		AmountTotal:   models.MajorUnits(sess.AmountTotal),
		Currency:      sess.Currency,
		PaymentStatus: sess.PaymentStatus,
		ProductID:     sess.ProductID,
	}, nil
}

// ----------------- Cancel -----------------

// Cancel acknowledges an abandoned checkout. Stateless.
func (s *CheckoutService) Cancel() string {
	return "Payment was cancelled."
}

// ----------------- Queries -----------------

func (s *CheckoutService) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := s.trx.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return models.Transaction{}, ErrNotFound
	}
	return tx, err
}

func (s *CheckoutService) ListTransactions(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	return s.trx.List(ctx, limit, offset)
}

// ----------------- Helpers -----------------

// record writes the event trail off the request path.
func (s *CheckoutService) record(txID, action string, details map[string]any) {
	if s.wp == nil {
		return
	}
	id := txID
	s.wp.Submit(func() {
		if err := s.events.Create(context.Background(), models.CheckoutEvent{
			TransactionID: &id,
			Action:        action,
			Details:       details,
		}); err != nil {
			slog.Warn("checkout event write failed", "action", action, "err", err)
		}
	})
}
