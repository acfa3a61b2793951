package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/postgres"
)

type Repo struct{ DB *pgxpool.Pool }

const materialCols = `bahan_id, nama_bahan, stok_saat_ini, stok_minimum, satuan, created_at, updated_at`

func scanMaterial(row pgx.Row) (Material, error) {
	var m Material
	err := row.Scan(&m.ID, &m.Name, &m.CurrentStock, &m.MinimumStock, &m.Unit, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *Repo) Get(ctx context.Context, id string) (Material, error) {
	m, err := scanMaterial(r.DB.QueryRow(ctx,
		`SELECT `+materialCols+` FROM materials WHERE bahan_id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, fmt.Errorf("%w: material %s", core.ErrNotFound, id)
	}
	return m, err
}

func (r *Repo) List(ctx context.Context, search string) ([]Material, error) {
	sql := `SELECT ` + materialCols + ` FROM materials`
	args := []any{}
	if search != "" {
		sql += ` WHERE nama_bahan ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	sql += ` ORDER BY nama_bahan ASC`

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ListLow(ctx context.Context) ([]Material, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+materialCols+` FROM materials
		 WHERE stok_saat_ini < stok_minimum ORDER BY nama_bahan ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CreateMaterialInput) (Material, error) {
	if err := in.Validate(); err != nil {
		return Material{}, err
	}
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO materials(bahan_id, nama_bahan, stok_saat_ini, stok_minimum, satuan)
		VALUES ($1,$2,$3,$4,$5)`,
		id, in.Name, in.CurrentStock, in.MinimumStock, in.Unit)
	if err != nil {
		return Material{}, err
	}
	return r.Get(ctx, id)
}

// Update hanya menyentuh metadata; stok tidak pernah di-set langsung dari sini.
func (r *Repo) Update(ctx context.Context, id string, in UpdateMaterialInput) (Material, error) {
	if err := in.Validate(); err != nil {
		return Material{}, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE materials SET
			nama_bahan   = COALESCE($2, nama_bahan),
			stok_minimum = COALESCE($3, stok_minimum),
			satuan       = COALESCE($4, satuan),
			updated_at   = now()
		WHERE bahan_id=$1`,
		id, in.Name, in.MinimumStock, in.Unit)
	if err != nil {
		return Material{}, err
	}
	if ct.RowsAffected() == 0 {
		return Material{}, fmt.Errorf("%w: material %s", core.ErrNotFound, id)
	}
	return r.Get(ctx, id)
}

// Delete menolak selama bahan masih dirujuk resep atau pengadaan yang belum selesai.
func (r *Repo) Delete(ctx context.Context, id string) error {
	var recipeRefs, openOrders int
	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM product_materials WHERE bahan_id=$1),
			(SELECT COUNT(*) FROM material_orders WHERE bahan_id=$1 AND status <> 'Diterima')`,
		id).Scan(&recipeRefs, &openOrders)
	if err != nil {
		return err
	}
	if recipeRefs > 0 || openOrders > 0 {
		return fmt.Errorf("%w: material %s is still referenced", core.ErrConflict, id)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM materials WHERE bahan_id=$1`, id)
	if err != nil {
		// referensi yang muncul di antara pengecekan dan DELETE mendarat di
		// FK constraint; tetap conflict, bukan 500
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: material %s is still referenced", core.ErrConflict, id)
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %s", core.ErrNotFound, id)
	}
	return nil
}

// ApplyDelta menambah/mengurangi stok satu bahan di dalam transaksi pemilik.
// Row di-lock FOR UPDATE dulu supaya delta konkuren ke bahan yang sama
// terserialisasi; hasil decrement di-clamp di nol. Caller yang mendebit lebih
// dari satu bahan wajib memanggil dalam urutan bahan_id naik. Deadlock atau
// lock timeout kembali sebagai ErrTransient supaya request bisa diulang.
func ApplyDelta(ctx context.Context, tx pgx.Tx, materialID string, delta float64) (float64, error) {
	var cur float64
	err := tx.QueryRow(ctx,
		`SELECT stok_saat_ini FROM materials WHERE bahan_id=$1 FOR UPDATE`,
		materialID).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: material %s", core.ErrNotFound, materialID)
	}
	if err != nil {
		return 0, postgres.MarkTransient(err)
	}

	var newQty float64
	err = tx.QueryRow(ctx, `
		UPDATE materials
		SET stok_saat_ini = GREATEST(0, stok_saat_ini + $2), updated_at = now()
		WHERE bahan_id=$1
		RETURNING stok_saat_ini`,
		materialID, delta).Scan(&newQty)
	if err != nil {
		return 0, postgres.MarkTransient(err)
	}
	return newQty, nil
}
