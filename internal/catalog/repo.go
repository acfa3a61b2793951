package catalog

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

const productCols = `produk_id, nama_produk, harga, COALESCE(deskripsi,''), jenis_produk, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE produk_id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, fmt.Errorf("%w: product %s", core.ErrNotFound, id)
	}
	return p, err
}

func (r *Repo) List(ctx context.Context, search string, category Category) ([]Product, error) {
	sql := `SELECT ` + productCols + ` FROM products WHERE 1=1`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		sql += fmt.Sprintf(` AND nama_produk ILIKE $%d`, len(args))
	}
	if category != "" {
		args = append(args, category)
		sql += fmt.Sprintf(` AND jenis_produk = $%d`, len(args))
	}
	sql += ` ORDER BY nama_produk ASC`

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CreateProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(produk_id, nama_produk, harga, deskripsi, jenis_produk)
		VALUES ($1,$2,$3,NULLIF($4,''),$5)`,
		id, in.Name, in.Price, in.Description, in.Category)
	if err != nil {
		return Product{}, err
	}
	return r.Get(ctx, id)
}

// RecipeDetails membaca resep produk bergabung dengan stok bahan live.
func (r *Repo) RecipeDetails(ctx context.Context, productID string) ([]RecipeLineDetail, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pm.bahan_id, m.nama_bahan, m.satuan, pm.jumlah, m.stok_saat_ini
		FROM product_materials pm
		JOIN materials m ON m.bahan_id = pm.bahan_id
		WHERE pm.produk_id=$1
		ORDER BY m.nama_bahan ASC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecipeLineDetail
	for rows.Next() {
		var d RecipeLineDetail
		if err := rows.Scan(&d.MaterialID, &d.MaterialName, &d.Unit, &d.Qty, &d.CurrentStock); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RecipeLinesTx membaca resep di dalam transaksi milik state machine.
func RecipeLinesTx(ctx context.Context, tx pgx.Tx, productID string) ([]RecipeLine, error) {
	rows, err := tx.Query(ctx,
		`SELECT produk_id, bahan_id, jumlah FROM product_materials WHERE produk_id=$1`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecipeLine
	for rows.Next() {
		var l RecipeLine
		if err := rows.Scan(&l.ProductID, &l.MaterialID, &l.Qty); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ReplaceRecipe mengganti seluruh resep produk dalam satu transaksi.
// Product row di-lock dulu supaya dua replace konkuren tidak sama-sama
// mengira dirinya "yang pertama". wasFirst=true kalau sebelumnya resep kosong
// dan sekarang terisi.
func (r *Repo) ReplaceRecipe(ctx context.Context, productID string, lines []RecipeLineInput) (wasFirst bool, err error) {
	if err := ValidateRecipeLines(lines); err != nil {
		return false, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("%w: begin tx: %v", core.ErrTransient, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists string
	err = tx.QueryRow(ctx,
		`SELECT produk_id FROM products WHERE produk_id=$1 FOR UPDATE`, productID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("%w: product %s", core.ErrNotFound, productID)
	}
	if err != nil {
		return false, postgres.MarkTransient(err)
	}

	var existing int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM product_materials WHERE produk_id=$1`, productID).Scan(&existing); err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM product_materials WHERE produk_id=$1`, productID); err != nil {
		return false, err
	}

	for _, l := range lines {
		ct, err := tx.Exec(ctx, `
			INSERT INTO product_materials(produk_id, bahan_id, jumlah)
			SELECT $1, bahan_id, $3 FROM materials WHERE bahan_id=$2`,
			productID, l.MaterialID, l.Qty)
		if err != nil {
			return false, err
		}
		if ct.RowsAffected() == 0 {
			return false, fmt.Errorf("%w: material %s", core.ErrNotFound, l.MaterialID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%w: commit: %v", core.ErrTransient, err)
	}
	return existing == 0 && len(lines) > 0, nil
}
