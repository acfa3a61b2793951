package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/merahputih/kafepos/internal/catalog"
	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/ledger"
	"github.com/merahputih/kafepos/internal/postgres"
	"github.com/merahputih/kafepos/internal/redisx"
)

type Service struct {
	Repo      *Repo
	Redis     *redis.Client
	Publisher *events.Publisher
	Log       *slog.Logger
}

func (s *Service) Create(ctx context.Context, cashierID string, in CreateOrderInput) (Order, error) {
	o, err := s.Repo.Create(ctx, cashierID, in)
	if err != nil {
		return Order{}, err
	}
	s.cacheStatus(ctx, o.ID, o.Status)
	s.Publisher.PublishKitchenStatus(o.ID, o.OrderNumber, string(o.Status))
	return o, nil
}

// Advance memajukan order tepat satu langkah; target selain penerus sah
// ditolak. Transisi masuk completed mendebit stok bahan per resep item —
// kecuali order terhubung ke transaksi penjualan, yang sudah mendebit stok
// saat RecordSale; order semacam itu selesai sebagai transisi status murni.
func (s *Service) Advance(ctx context.Context, orderID string, target Status) (Order, error) {
	if !ValidStatus(target) {
		return Order{}, fmt.Errorf("%w: unknown status %q", core.ErrValidation, target)
	}

	tx, err := s.Repo.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur Status
	var orderNumber string
	var transactionID *string
	err = tx.QueryRow(ctx, `
		SELECT status, order_number, transaksi_id FROM barista_orders
		WHERE order_id=$1 FOR UPDATE`, orderID).Scan(&cur, &orderNumber, &transactionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: kitchen order %s", core.ErrNotFound, orderID)
	}
	if err != nil {
		return Order{}, postgres.MarkTransient(err)
	}
	if !CanTransition(cur, target) {
		return Order{}, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, cur, target)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE barista_orders SET status=$2, updated_at=now() WHERE order_id=$1`,
		orderID, target); err != nil {
		return Order{}, err
	}

	var movements []events.StockMovement
	if target == StatusCompleted && transactionID == nil {
		if movements, err = s.debitRecipes(ctx, tx, orderID); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}

	s.cacheStatus(ctx, orderID, target)
	s.Publisher.PublishKitchenStatus(orderID, orderNumber, string(target))
	s.Publisher.PublishStockDebited("kitchen", orderID, movements)
	s.Log.Info("kitchen order advanced", "order_id", orderID, "from", cur, "to", target)

	return s.Repo.Get(ctx, orderID)
}

// debitRecipes mengurangi stok tiap bahan: jumlah resep x jumlah item,
// clamp di nol, di dalam transaksi yang sama dengan perubahan status.
// Kebutuhan seluruh item digabung dulu lalu didebit terurut per bahan_id,
// urutan lock yang sama dengan pencatat penjualan.
func (s *Service) debitRecipes(ctx context.Context, tx pgx.Tx, orderID string) ([]events.StockMovement, error) {
	rows, err := tx.Query(ctx,
		`SELECT produk_id, jumlah FROM barista_order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	type itemQty struct {
		productID string
		qty       int
	}
	var items []itemQty
	for rows.Next() {
		var it itemQty
		if err := rows.Scan(&it.productID, &it.qty); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var batches [][]catalog.Requirement
	for _, it := range items {
		lines, err := catalog.RecipeLinesTx(ctx, tx, it.productID)
		if err != nil {
			return nil, err
		}
		batches = append(batches, catalog.Requirements(lines, it.qty))
	}

	var movements []events.StockMovement
	for _, req := range catalog.CombineRequirements(batches...) {
		newQty, err := ledger.ApplyDelta(ctx, tx, req.MaterialID, -req.Qty)
		if err != nil {
			return nil, err
		}
		movements = append(movements, events.StockMovement{
			MaterialID: req.MaterialID,
			Delta:      -req.Qty,
			NewQty:     newQty,
		})
	}
	return movements, nil
}

func (s *Service) cacheStatus(ctx context.Context, orderID string, status Status) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyKitchenStatus, orderID)
	_ = s.Redis.Set(ctx, key, string(status), redisx.TTLStatusCache).Err()
}

// CachedStatus untuk polling murah; DB tetap kebenaran saat cache kosong.
func (s *Service) CachedStatus(ctx context.Context, orderID string) (Status, bool) {
	if s.Redis == nil {
		return "", false
	}
	v, err := s.Redis.Get(ctx, fmt.Sprintf(redisx.KeyKitchenStatus, orderID)).Result()
	if err != nil || v == "" {
		return "", false
	}
	return Status(v), true
}
