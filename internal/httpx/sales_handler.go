package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merahputih/kafepos/internal/fulfillment"
	"github.com/merahputih/kafepos/internal/sales"
)

type SalesHandler struct {
	Svc *sales.Service
}

func (h *SalesHandler) Register(r *chi.Mux) {
	r.Post("/transactions", h.recordSale)
	r.Get("/transactions/{id}", h.get)
}

type recordSaleResp struct {
	Transaction  sales.Transaction  `json:"transaction"`
	KitchenOrder *fulfillment.Order `json:"kitchen_order,omitempty"`
}

func (h *SalesHandler) recordSale(w http.ResponseWriter, r *http.Request) {
	var in sales.RecordSaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	t, kitchenOrder, err := h.Svc.RecordSale(ctx, uid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordSaleResp{Transaction: t, KitchenOrder: kitchenOrder})
}

func (h *SalesHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.Svc.Repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
