package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merahputih/kafepos/internal/fulfillment"
)

type KitchenHandler struct {
	Svc *fulfillment.Service
}

func (h *KitchenHandler) Register(r *chi.Mux) {
	r.Get("/kitchen/orders", h.list)
	r.Post("/kitchen/orders", h.create)
	r.Get("/kitchen/orders/{id}", h.get)
	r.Get("/kitchen/orders/{id}/status", h.status)
	r.Post("/kitchen/orders/{id}/status", h.advance)
}

func (h *KitchenHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Svc.Repo.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *KitchenHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Svc.Repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// status: polling murah via cache Redis, fallback DB.
func (h *KitchenHandler) status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	orderID := chi.URLParam(r, "id")
	if st, ok := h.Svc.CachedStatus(ctx, orderID); ok {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(st)})
		return
	}
	o, err := h.Svc.Repo.Get(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(o.Status)})
}

func (h *KitchenHandler) create(w http.ResponseWriter, r *http.Request) {
	var in fulfillment.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Svc.Create(ctx, uid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

type advanceReq struct {
	Status fulfillment.Status `json:"status"`
}

func (h *KitchenHandler) advance(w http.ResponseWriter, r *http.Request) {
	var req advanceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Svc.Advance(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
