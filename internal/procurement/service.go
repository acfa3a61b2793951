package procurement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/ledger"
	"github.com/merahputih/kafepos/internal/postgres"
)

type Service struct {
	Repo      *Repo
	Publisher *events.Publisher
	Log       *slog.Logger
}

func (s *Service) Create(ctx context.Context, userID string, in CreateOrderInput) (Order, error) {
	return s.Repo.Create(ctx, userID, in)
}

// MarkShipped: Pending -> Dikirim saja.
func (s *Service) MarkShipped(ctx context.Context, orderID string) (Order, error) {
	tx, err := s.Repo.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM material_orders WHERE pengadaan_id=$1 FOR UPDATE`, orderID).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: procurement order %s", core.ErrNotFound, orderID)
	}
	if err != nil {
		return Order{}, postgres.MarkTransient(err)
	}
	if !CanTransition(cur, StatusDikirim) {
		return Order{}, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, cur, StatusDikirim)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE material_orders SET status=$2, updated_at=now() WHERE pengadaan_id=$1`,
		orderID, StatusDikirim); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}
	return s.Repo.Get(ctx, orderID)
}

// ConfirmReceived: transisi terminal ke Diterima. Sah dari Pending maupun
// Dikirim (penerimaan tanpa tahap kirim ditoleransi). Order yang sudah
// Diterima ditolak dengan ErrConflict tanpa perubahan stok — guard ini yang
// mencegah double-credit saat request duplikat. Set status, set tanggal
// terima, dan kredit stok adalah satu transaksi.
func (s *Service) ConfirmReceived(ctx context.Context, orderID string, receivedAt time.Time) (Order, error) {
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	tx, err := s.Repo.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur Status
	var materialID string
	var qty float64
	err = tx.QueryRow(ctx, `
		SELECT status, bahan_id, jumlah FROM material_orders
		WHERE pengadaan_id=$1 FOR UPDATE`, orderID).Scan(&cur, &materialID, &qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: procurement order %s", core.ErrNotFound, orderID)
	}
	if err != nil {
		return Order{}, postgres.MarkTransient(err)
	}
	if cur == StatusDiterima {
		return Order{}, fmt.Errorf("%w: order %s already received", core.ErrConflict, orderID)
	}
	if !CanTransition(cur, StatusDiterima) {
		return Order{}, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, cur, StatusDiterima)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE material_orders SET status=$2, tanggal_terima=$3, updated_at=now()
		WHERE pengadaan_id=$1`,
		orderID, StatusDiterima, receivedAt); err != nil {
		return Order{}, err
	}

	newQty, err := ledger.ApplyDelta(ctx, tx, materialID, qty)
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}

	s.Publisher.PublishStockCredited(orderID, events.StockMovement{
		MaterialID: materialID,
		Delta:      qty,
		NewQty:     newQty,
	})
	s.Log.Info("procurement received", "pengadaan_id", orderID, "bahan_id", materialID, "jumlah", qty)

	return s.Repo.Get(ctx, orderID)
}
