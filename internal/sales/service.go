package sales

import (
	"context"
	"log/slog"

	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/fulfillment"
)

type Service struct {
	Repo      *Repo
	Kitchen   *fulfillment.Service
	Publisher *events.Publisher
	Log       *slog.Logger
}

// RecordSale mencatat penjualan. Debit stok terjadi di sini, satu kali;
// tiket dapur yang ikut dibuat tertaut ke transaksi ini dan tidak mendebit
// lagi saat completed.
func (s *Service) RecordSale(ctx context.Context, cashierID string, in RecordSaleInput) (Transaction, *fulfillment.Order, error) {
	if err := in.Validate(); err != nil {
		return Transaction{}, nil, err
	}

	t, movements, err := s.Repo.Record(ctx, cashierID, in.Items)
	if err != nil {
		return Transaction{}, nil, err
	}
	s.Publisher.PublishStockDebited("sale", t.ID, movements)
	s.Log.Info("sale recorded", "transaksi_id", t.ID, "total", t.Total, "items", len(t.Items))

	var kitchenOrder *fulfillment.Order
	if in.SpawnKitchenOrder {
		items := make([]fulfillment.ItemInput, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, fulfillment.ItemInput{ProductID: it.ProductID, Qty: it.Qty, Notes: it.Notes})
		}
		o, err := s.Kitchen.Create(ctx, cashierID, fulfillment.CreateOrderInput{
			TransactionID: &t.ID,
			Items:         items,
		})
		if err != nil {
			// penjualan sudah tercatat; tiket dapur bisa dibuat ulang manual
			s.Log.Error("kitchen order spawn failed", "transaksi_id", t.ID, "error", err)
		} else {
			kitchenOrder = &o
		}
	}
	return t, kitchenOrder, nil
}
