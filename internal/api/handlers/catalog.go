package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/payflow/checkout-backend/internal/api/httpx"
	"github.com/payflow/checkout-backend/internal/services"
)

func GetProduct(svc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCheckoutErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func ListProducts(svc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r, 50)
		products, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, products)
	}
}
