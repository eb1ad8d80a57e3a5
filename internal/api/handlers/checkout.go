package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/payflow/checkout-backend/internal/api/httpx"
	"github.com/payflow/checkout-backend/internal/api/validate"
	"github.com/payflow/checkout-backend/internal/payment"
	"github.com/payflow/checkout-backend/internal/services"
)

// CreateCheckoutSession handles POST /create-checkout-session/{product_id}/.
func CreateCheckoutSession(svc *services.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "product_id")
		res, err := svc.CreateSession(r.Context(), productID)
		if err != nil {
			writeCheckoutErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":       "success",
			"id":           res.SessionID,
			"redirect_url": res.RedirectURL,
		})
	}
}

// Success handles GET /success?session_id=...; the payment processor
// redirects the buyer here after checkout.
func Success(svc *services.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		if ef := validate.Required("session_id", sessionID); ef != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_error", "Missing session_id", validate.Errs{*ef})
			return
		}
		res, err := svc.ConfirmSuccess(r.Context(), sessionID)
		if err != nil {
			writeCheckoutErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

// Cancel handles GET /cancel/.
func Cancel(svc *services.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": svc.Cancel()})
	}
}

func GetTransaction(svc *services.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tx, err := svc.GetTransaction(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCheckoutErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, tx)
	}
}

func ListTransactions(svc *services.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r, 50)
		txs, err := svc.ListTransactions(r.Context(), limit, offset)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, txs)
	}
}

// writeCheckoutErr maps service error kinds to status codes at the boundary.
func writeCheckoutErr(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	var xErr *payment.ExternalError
	switch {
	case errors.As(err, &vErr):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "Missing "+vErr.Field, nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.As(err, &xErr):
		httpx.WriteError(w, http.StatusInternalServerError, "payment_error", xErr.Msg, nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}

func pagination(r *http.Request, defLimit int) (limit, offset int) {
	limit = defLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 { limit = n }
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 { offset = n }
	}
	return limit, offset
}
