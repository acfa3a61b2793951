package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merahputih/kafepos/internal/catalog"
)

type CatalogHandler struct {
	Svc *catalog.Service
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Post("/products", h.createProduct)
	r.Get("/products/{id}/materials", h.getRecipe)
	r.Put("/products/{id}/materials", h.replaceRecipe)
	r.Get("/products/{id}/availability", h.availability)
}

// availability: pre-check kasir sebelum item masuk keranjang.
func (h *CatalogHandler) availability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	av, err := h.Svc.IsAvailable(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, av)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	views, err := h.Svc.ListWithAvailability(ctx,
		r.URL.Query().Get("search"),
		catalog.Category(r.URL.Query().Get("category")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Svc.CreateProduct(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) getRecipe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	productID := chi.URLParam(r, "id")
	if _, err := h.Svc.Repo.Get(ctx, productID); err != nil {
		writeError(w, err)
		return
	}
	details, err := h.Svc.Repo.RecipeDetails(ctx, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type replaceRecipeReq struct {
	Materials []catalog.RecipeLineInput `json:"materials"`
}

func (h *CatalogHandler) replaceRecipe(w http.ResponseWriter, r *http.Request) {
	var req replaceRecipeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	details, err := h.Svc.ReplaceRecipe(ctx, chi.URLParam(r, "id"), req.Materials)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
