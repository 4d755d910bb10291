package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/product-inventory/internal/model"
)

// ProductQuery defines filters & pagination for the paged product listing.
// Empty Category/SearchTerm are passed to the procedure as NULL so the
// procedure skips that filter.
type ProductQuery struct {
	Page       int
	PageSize   int
	Category   string
	SearchTerm string
}

// ProductRepo accesses the products table. Mutations and paged reads go
// through stored procedures; read-only aggregation (categories,
// statistics, search) uses raw parameterized queries.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

// scanProduct reads one product row. Description is nullable in the table.
func scanProduct(scan func(dest ...any) error) (model.Product, error) {
	var p model.Product
	var desc sql.NullString
	err := scan(&p.ID, &p.Name, &desc, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	p.Description = desc.String
	return p, err
}

// List calls sp_get_products, which returns one page of rows with the
// overall total count attached to every row. The total is zero when the
// result set is empty.
func (r *ProductRepo) List(ctx context.Context, q ProductQuery) ([]model.Product, int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"CALL sp_get_products(?,?,?,?)",
		q.Page, q.PageSize, nullStr(q.Category), nullStr(q.SearchTerm))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, q.PageSize)
	total := 0
	for rows.Next() {
		var p model.Product
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID calls sp_get_product_by_id. A missing row is ErrNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx, "CALL sp_get_product_by_id(?)", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// Create calls sp_create_product, which inserts the row and echoes the
// full created record back. Zero echoed rows means the insert failed.
func (r *ProductRepo) Create(ctx context.Context, name, description string, price float64, category string) (model.Product, error) {
	return scanProduct(r.DB.QueryRowContext(ctx,
		"CALL sp_create_product(?,?,?,?)",
		name, nullStr(description), price, category).Scan)
}

// Update calls sp_update_product with the fully merged field set and
// returns the updated row. Merging absent fields onto the existing
// record is the service's job; the procedure overwrites every column.
func (r *ProductRepo) Update(ctx context.Context, id uint64, name, description string, price float64, category string) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"CALL sp_update_product(?,?,?,?,?)",
		id, name, nullStr(description), price, category).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// Delete calls sp_delete_product.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "CALL sp_delete_product(?)", id)
	return err
}

// Categories returns the distinct category names, alphabetically.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT category FROM products ORDER BY category ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Search returns products whose name contains term, ranked exact match
// first, then prefix matches, then other substring matches, name ASC
// inside each tier. Ranking happens in the query so the limit keeps the
// best matches; an exact match is never truncated away by alphabetical
// order.
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]model.Product, error) {
	lt := strings.ToLower(term)
	like := "%" + lt + "%"
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, price, category, created_at, updated_at
		 FROM products
		 WHERE LOWER(name) LIKE ?
		 ORDER BY CASE
			WHEN LOWER(name) = ? THEN 0
			WHEN LOWER(name) LIKE CONCAT(?, '%') THEN 1
			ELSE 2
		 END, name ASC
		 LIMIT ?`,
		like, lt, lt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		var p model.Product
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// OverallStats returns the total product count and the average price.
// The average is zero when the table is empty.
func (r *ProductRepo) OverallStats(ctx context.Context) (int, float64, error) {
	var count int
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), AVG(price) FROM products").Scan(&count, &avg)
	return count, avg.Float64, err
}

// CategoryStats returns count/avg/min/max per category.
func (r *ProductRepo) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT category, COUNT(*), AVG(price), MIN(price), MAX(price)
		 FROM products
		 GROUP BY category
		 ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CategoryStat{}
	for rows.Next() {
		var s model.CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.AveragePrice, &s.MinPrice, &s.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PriceHistogram returns counts for the five fixed price buckets:
// <50, 50-99.99, 100-499.99, 500-999.99, >=1000.
func (r *ProductRepo) PriceHistogram(ctx context.Context) ([5]int, error) {
	var h [5]int
	err := r.DB.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN price < 50 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN price >= 50 AND price < 100 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN price >= 100 AND price < 500 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN price >= 500 AND price < 1000 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN price >= 1000 THEN 1 ELSE 0 END), 0)
		 FROM products`).
		Scan(&h[0], &h[1], &h[2], &h[3], &h[4])
	return h, err
}

// nullStr maps an empty string to SQL NULL.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
