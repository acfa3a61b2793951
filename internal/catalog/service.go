package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/merahputih/kafepos/internal/notify"
)

// ProductView: produk plus ketersediaan turunan (tidak pernah disimpan).
type ProductView struct {
	Product
	Availability
}

type Service struct {
	Repo     *Repo
	Notifier *notify.Service
	Log      *slog.Logger
}

// ListWithAvailability menghitung ulang ketersediaan per produk per request.
func (s *Service) ListWithAvailability(ctx context.Context, search string, category Category) ([]ProductView, error) {
	products, err := s.Repo.List(ctx, search, category)
	if err != nil {
		return nil, err
	}
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		details, err := s.Repo.RecipeDetails(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ProductView{Product: p, Availability: ComputeAvailability(details)})
	}
	return out, nil
}

func (s *Service) IsAvailable(ctx context.Context, productID string) (Availability, error) {
	if _, err := s.Repo.Get(ctx, productID); err != nil {
		return Availability{}, err
	}
	details, err := s.Repo.RecipeDetails(ctx, productID)
	if err != nil {
		return Availability{}, err
	}
	return ComputeAvailability(details), nil
}

// CreateProduct membuat produk baru dan memberi tahu barista.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (Product, error) {
	p, err := s.Repo.Create(ctx, in)
	if err != nil {
		return Product{}, err
	}

	data, _ := json.Marshal(map[string]any{"produk_id": p.ID, "nama_produk": p.Name, "harga": p.Price})
	if err := s.Notifier.CreateForRole(ctx, "Barista", notify.TypeNewProduct,
		"Produk Baru",
		fmt.Sprintf("Produk %q telah ditambahkan ke menu.", p.Name),
		data); err != nil {
		// notifikasi best-effort; produk sudah tersimpan
		s.Log.Error("new product notification failed", "produk_id", p.ID, "error", err)
	}
	return p, nil
}

// ReplaceRecipe mengganti resep produk. Saat produk pertama kali mendapat
// resep non-kosong, Admin dan Manager diberi tahu.
func (s *Service) ReplaceRecipe(ctx context.Context, productID string, lines []RecipeLineInput) ([]RecipeLineDetail, error) {
	product, err := s.Repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	wasFirst, err := s.Repo.ReplaceRecipe(ctx, productID, lines)
	if err != nil {
		return nil, err
	}

	details, err := s.Repo.RecipeDetails(ctx, productID)
	if err != nil {
		return nil, err
	}

	if wasFirst {
		var parts []string
		for _, d := range details {
			parts = append(parts, fmt.Sprintf("%s (%g %s)", d.MaterialName, d.Qty, d.Unit))
		}
		data, _ := json.Marshal(map[string]any{
			"produk_id":   product.ID,
			"nama_produk": product.Name,
			"action":      "composition_added",
		})
		msg := fmt.Sprintf("Komposisi bahan untuk produk %q telah ditambahkan. Bahan: %s",
			product.Name, strings.Join(parts, ", "))
		for _, role := range []string{"Admin", "Manager"} {
			if err := s.Notifier.CreateForRole(ctx, role, notify.TypeMaterialUpdate,
				"Komposisi Produk Ditambahkan", msg, data); err != nil {
				s.Log.Error("recipe notification failed", "role", role, "produk_id", product.ID, "error", err)
			}
		}
	}
	return details, nil
}
