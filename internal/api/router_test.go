package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payflow/checkout-backend/internal/config"
	"github.com/payflow/checkout-backend/internal/models"
	"github.com/payflow/checkout-backend/internal/payment"
	repo "github.com/payflow/checkout-backend/internal/repository"
	"github.com/payflow/checkout-backend/internal/services"
)

type memProducts struct{ byID map[string]models.Product }

func (m *memProducts) GetByID(_ context.Context, id string) (models.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return models.Product{}, repo.ErrNoRows
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context, _, _ int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

type memTransactions struct{ bySession map[string]models.Transaction }

func (m *memTransactions) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = "tx-1"
	}
	tx.CreatedAt = time.Now()
	m.bySession[tx.StripeSessionID] = tx
	return tx, nil
}

func (m *memTransactions) GetByID(_ context.Context, id string) (models.Transaction, error) {
	for _, tx := range m.bySession {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, repo.ErrNoRows
}

func (m *memTransactions) GetBySessionID(_ context.Context, sid string) (models.Transaction, error) {
	tx, ok := m.bySession[sid]
	if !ok {
		return models.Transaction{}, repo.ErrNoRows
	}
	return tx, nil
}

func (m *memTransactions) Update(_ context.Context, tx models.Transaction) error {
	m.bySession[tx.StripeSessionID] = tx
	return nil
}

func (m *memTransactions) List(_ context.Context, _, _ int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.bySession {
		out = append(out, tx)
	}
	return out, nil
}

type memEvents struct{}

func (memEvents) Create(_ context.Context, _ models.CheckoutEvent) error { return nil }

type memGateway struct {
	sessions  map[string]payment.Session
	createErr error
}

func (g *memGateway) CreateSession(_ context.Context, in payment.CreateSessionInput) (payment.Session, error) {
	if g.createErr != nil {
		return payment.Session{}, g.createErr
	}
	return payment.Session{ID: "cs_live_1", URL: "https://checkout.stripe.com/pay/cs_live_1"}, nil
}

func (g *memGateway) RetrieveSession(_ context.Context, id string) (payment.Session, error) {
	s, ok := g.sessions[id]
	if !ok {
		return payment.Session{}, &payment.ExternalError{Msg: "no such session"}
	}
	return s, nil
}

func pt(s string) *string { return &s }

func newTestServer(gw *memGateway) (*httptest.Server, *memTransactions) {
	products := &memProducts{byID: map[string]models.Product{
		"prod-1": {ID: "prod-1", Name: "Widget", Price: 19.99},
	}}
	trx := &memTransactions{bySession: map[string]models.Transaction{}}

	checkout := services.NewCheckoutService(products, trx, memEvents{}, gw, nil, "usd")
	catalog := services.NewCatalogService(products)
	h := NewRouter(config.Config{Env: "test", RateRPS: 0}, checkout, catalog)
	return httptest.NewServer(h), trx
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateCheckoutSessionEndpoint(t *testing.T) {
	srv, trx := newTestServer(&memGateway{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-checkout-session/prod-1/", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "cs_live_1", body["id"])
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_live_1", body["redirect_url"])

	tx, ok := trx.bySession["cs_live_1"]
	require.True(t, ok)
	assert.Equal(t, models.StatusUnpaid, tx.Status)
}

func TestCreateCheckoutSessionEndpoint_UnknownProduct(t *testing.T) {
	srv, _ := newTestServer(&memGateway{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-checkout-session/missing/", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode(t, resp)
	assert.NotEmpty(t, body["error"])
}

func TestCreateCheckoutSessionEndpoint_GatewayError(t *testing.T) {
	srv, _ := newTestServer(&memGateway{createErr: &payment.ExternalError{Msg: "stripe is down"}})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-checkout-session/prod-1/", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "stripe is down", body["error"])
}

func TestSuccessEndpoint_MissingSessionID(t *testing.T) {
	srv, _ := newTestServer(&memGateway{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/success")
	require.NoError(t, err)
	// always a 400, never a 500
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "Missing session_id", body["error"])
}

func TestSuccessEndpoint_RoundTrip(t *testing.T) {
	gw := &memGateway{sessions: map[string]payment.Session{
		"cs_live_1": {
			ID:              "cs_live_1",
			PaymentStatus:   models.StatusPaid,
			AmountTotal:     1999,
			Currency:        "usd",
			PaymentIntentID: pt("pi_1"),
			ProductID:       pt("prod-1"),
		},
	}}
	srv, trx := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-checkout-session/prod-1/", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/success?session_id=cs_live_1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "Payment was successful!", body["message"])
	assert.Equal(t, 19.99, body["amount_total"])
	assert.Equal(t, "usd", body["currency"])
	assert.Equal(t, "paid", body["payment_status"])
	assert.Equal(t, "pi_1", body["payment_intent"])
	assert.Equal(t, "prod-1", body["product_id"])
	assert.NotEmpty(t, body["transaction_id"])

	assert.Equal(t, models.StatusPaid, trx.bySession["cs_live_1"].Status)
}

func TestSuccessEndpoint_NoLocalTransaction(t *testing.T) {
	gw := &memGateway{sessions: map[string]payment.Session{
		"cs_orphan": {ID: "cs_orphan", PaymentStatus: models.StatusPaid, AmountTotal: 500, Currency: "usd"},
	}}
	srv, _ := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/success?session_id=cs_orphan")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Nil(t, body["transaction_id"])
	assert.Equal(t, 5.0, body["amount_total"])
}

func TestSuccessEndpoint_GatewayError(t *testing.T) {
	srv, _ := newTestServer(&memGateway{sessions: map[string]payment.Session{}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/success?session_id=cs_unknown")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCancelEndpoint(t *testing.T) {
	srv, trx := newTestServer(&memGateway{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/cancel/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "Payment was cancelled.", body["message"])
	assert.Empty(t, trx.bySession)
}

func TestProductEndpoints(t *testing.T) {
	srv, _ := newTestServer(&memGateway{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/products/prod-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Widget", body["name"])

	resp, err = http.Get(srv.URL + "/products/none")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactionEndpoints(t *testing.T) {
	gw := &memGateway{}
	srv, _ := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-checkout-session/prod-1/", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/transactions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var txs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "unpaid", txs[0]["status"])

	resp, err = http.Get(srv.URL + "/transactions/" + txs[0]["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "cs_live_1", body["stripe_session_id"])
}
