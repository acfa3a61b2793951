package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merahputih/kafepos/internal/ledger"
)

type MaterialsHandler struct {
	Repo *ledger.Repo
}

func (h *MaterialsHandler) Register(r *chi.Mux) {
	r.Get("/materials", h.list)
	r.Post("/materials", h.create)
	r.Get("/materials/low-stock", h.listLow)
	r.Patch("/materials/{id}", h.update)
	r.Delete("/materials/{id}", h.remove)
}

// materialView menambah status turunan ke payload.
type materialView struct {
	ledger.Material
	Status ledger.StockStatus `json:"status"`
}

func toViews(ms []ledger.Material) []materialView {
	out := make([]materialView, 0, len(ms))
	for _, m := range ms {
		out = append(out, materialView{Material: m, Status: m.Status()})
	}
	return out
}

func (h *MaterialsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ms, err := h.Repo.List(ctx, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViews(ms))
}

func (h *MaterialsHandler) listLow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ms, err := h.Repo.ListLow(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViews(ms))
}

func (h *MaterialsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateMaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Repo.Create(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, materialView{Material: m, Status: m.Status()})
}

func (h *MaterialsHandler) update(w http.ResponseWriter, r *http.Request) {
	var in ledger.UpdateMaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	m, err := h.Repo.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, materialView{Material: m, Status: m.Status()})
}

func (h *MaterialsHandler) remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
