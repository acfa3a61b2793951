package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/core"
)

type Repo struct{ DB *pgxpool.Pool }

const orderSelect = `
	SELECT bo.order_id, bo.order_number, bo.transaksi_id, bo.cashier_id,
	       COALESCE(u.username,''), bo.status, bo.created_at, bo.updated_at
	FROM barista_orders bo
	LEFT JOIN users u ON u.user_id = bo.cashier_id`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.TransactionID, &o.CashierID,
		&o.CashierName, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *Repo) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT boi.item_id, boi.order_id, boi.produk_id, p.nama_produk,
		       boi.jumlah, COALESCE(boi.notes,'')
		FROM barista_order_items boi
		JOIN products p ON p.produk_id = boi.produk_id
		WHERE boi.order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Qty, &it.Notes); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, orderSelect+` WHERE bo.order_id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: kitchen order %s", core.ErrNotFound, id)
	}
	if err != nil {
		return Order{}, err
	}
	o.Items, err = r.items(ctx, id)
	return o, err
}

// List dengan filter status; "active" = semua yang belum completed.
func (r *Repo) List(ctx context.Context, status string) ([]Order, error) {
	sql := orderSelect
	args := []any{}
	switch {
	case status == "active":
		sql += ` WHERE bo.status <> 'completed'`
	case status != "":
		if !ValidStatus(Status(status)) {
			return nil, fmt.Errorf("%w: unknown status %q", core.ErrValidation, status)
		}
		sql += ` WHERE bo.status=$1`
		args = append(args, status)
	}
	sql += ` ORDER BY bo.created_at DESC`

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Items, err = r.items(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Create menulis order + item dalam satu transaksi; status awal waiting.
func (r *Repo) Create(ctx context.Context, cashierID string, in CreateOrderInput) (Order, error) {
	if err := in.Validate(); err != nil {
		return Order{}, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderID := uuid.NewString()
	orderNumber := NewOrderNumber(time.Now())

	if _, err := tx.Exec(ctx, `
		INSERT INTO barista_orders(order_id, order_number, transaksi_id, cashier_id, status)
		VALUES ($1,$2,$3,$4,'waiting')`,
		orderID, orderNumber, in.TransactionID, cashierID); err != nil {
		return Order{}, err
	}

	for _, it := range in.Items {
		ct, err := tx.Exec(ctx, `
			INSERT INTO barista_order_items(item_id, order_id, produk_id, jumlah, notes)
			SELECT $1, $2, produk_id, $4, NULLIF($5,'') FROM products WHERE produk_id=$3`,
			uuid.NewString(), orderID, it.ProductID, it.Qty, it.Notes)
		if err != nil {
			return Order{}, err
		}
		if ct.RowsAffected() == 0 {
			return Order{}, fmt.Errorf("%w: product %s", core.ErrNotFound, it.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}
	return r.Get(ctx, orderID)
}
