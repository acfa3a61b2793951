package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/core"
)

type Repo struct{ DB *pgxpool.Pool }

const orderSelect = `
	SELECT mo.pengadaan_id, mo.bahan_id, mo.user_id, mo.jumlah, mo.harga,
	       mo.tanggal_pesan, mo.tanggal_terima, mo.status, mo.created_at, mo.updated_at,
	       m.nama_bahan, m.satuan, u.username
	FROM material_orders mo
	JOIN materials m ON m.bahan_id = mo.bahan_id
	JOIN users u ON u.user_id = mo.user_id`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.MaterialID, &o.UserID, &o.Qty, &o.UnitCost,
		&o.OrderedAt, &o.ReceivedAt, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.MaterialName, &o.MaterialUnit, &o.Username)
	return o, err
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, orderSelect+` WHERE mo.pengadaan_id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: procurement order %s", core.ErrNotFound, id)
	}
	return o, err
}

func (r *Repo) List(ctx context.Context, status Status) ([]Order, error) {
	sql := orderSelect
	args := []any{}
	if status != "" {
		sql += ` WHERE mo.status=$1`
		args = append(args, status)
	}
	sql += ` ORDER BY mo.tanggal_pesan DESC`

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
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, userID string, in CreateOrderInput) (Order, error) {
	if err := in.Validate(); err != nil {
		return Order{}, err
	}
	id := uuid.NewString()
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO material_orders(pengadaan_id, bahan_id, user_id, jumlah, harga, status)
		SELECT $1, bahan_id, $3, $4, $5, 'Pending' FROM materials WHERE bahan_id=$2`,
		id, in.MaterialID, userID, in.Qty, in.UnitCost)
	if err != nil {
		return Order{}, err
	}
	if ct.RowsAffected() == 0 {
		return Order{}, fmt.Errorf("%w: material %s", core.ErrNotFound, in.MaterialID)
	}
	return r.Get(ctx, id)
}
