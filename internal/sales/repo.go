package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/catalog"
	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/ledger"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Get(ctx context.Context, id string) (Transaction, error) {
	var t Transaction
	err := r.DB.QueryRow(ctx, `
		SELECT t.transaksi_id, t.user_id, u.username, t.total_harga, t.tanggal
		FROM transactions t
		JOIN users u ON u.user_id = t.user_id
		WHERE t.transaksi_id=$1`, id).
		Scan(&t.ID, &t.CashierID, &t.Username, &t.Total, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, fmt.Errorf("%w: transaction %s", core.ErrNotFound, id)
	}
	if err != nil {
		return Transaction{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT ti.detail_id, ti.transaksi_id, ti.produk_id, p.nama_produk, ti.jumlah, ti.harga_satuan
		FROM transaction_items ti
		JOIN products p ON p.produk_id = ti.produk_id
		WHERE ti.transaksi_id=$1`, id)
	if err != nil {
		return Transaction{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.ProductName, &it.Qty, &it.UnitPrice); err != nil {
			return Transaction{}, err
		}
		t.Items = append(t.Items, it)
	}
	return t, rows.Err()
}

// Record: satu unit atomik — bekukan harga, tulis transaksi + item, debit
// stok tiap baris resep produk terjual. Gagal di langkah mana pun membatalkan
// semuanya; tidak ada transaksi parsial atau debit yatim.
func (r *Repo) Record(ctx context.Context, cashierID string, items []ItemInput) (Transaction, []events.StockMovement, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, nil, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	transactionID := uuid.NewString()
	out := Transaction{ID: transactionID, CashierID: cashierID}

	for _, in := range items {
		var price int
		var name string
		err := tx.QueryRow(ctx,
			`SELECT harga, nama_produk FROM products WHERE produk_id=$1`, in.ProductID).
			Scan(&price, &name)
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, nil, fmt.Errorf("%w: product %s", core.ErrNotFound, in.ProductID)
		}
		if err != nil {
			return Transaction{}, nil, err
		}
		out.Items = append(out.Items, Item{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			ProductID:     in.ProductID,
			ProductName:   name,
			Qty:           in.Qty,
			UnitPrice:     price,
		})
	}
	out.Total = ComputeTotal(out.Items)

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions(transaksi_id, user_id, total_harga)
		VALUES ($1,$2,$3)`, transactionID, cashierID, out.Total); err != nil {
		return Transaction{}, nil, err
	}

	var batches [][]catalog.Requirement
	for _, it := range out.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO transaction_items(detail_id, transaksi_id, produk_id, jumlah, harga_satuan)
			VALUES ($1,$2,$3,$4,$5)`,
			it.ID, transactionID, it.ProductID, it.Qty, it.UnitPrice); err != nil {
			return Transaction{}, nil, err
		}

		lines, err := catalog.RecipeLinesTx(ctx, tx, it.ProductID)
		if err != nil {
			return Transaction{}, nil, err
		}
		batches = append(batches, catalog.Requirements(lines, it.Qty))
	}

	// debit seluruh kebutuhan order dalam satu urutan bahan global
	var movements []events.StockMovement
	for _, req := range catalog.CombineRequirements(batches...) {
		newQty, err := ledger.ApplyDelta(ctx, tx, req.MaterialID, -req.Qty)
		if err != nil {
			return Transaction{}, nil, err
		}
		movements = append(movements, events.StockMovement{
			MaterialID: req.MaterialID,
			Delta:      -req.Qty,
			NewQty:     newQty,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, nil, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}
	return out, movements, nil
}
