package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/aguaviva/storefront/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, category, active, COALESCE(image_url, ''), created_at`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Active, &p.ImageURL, &p.CreatedAt)
	return p, err
}

// FindActiveByIDs fetches the active products among the given ids in one
// query. Ids that are unknown or inactive simply don't come back; the cart
// resolver relies on that to drop stale references.
func (r *ProductRepository) FindActiveByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1) AND active
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetActiveByID returns nil without an error when the product is unknown or
// inactive, so callers can answer both cases uniformly.
func (r *ProductRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND active
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListActiveByCategory returns active products in one category, ordered by
// id.
func (r *ProductRepository) ListActiveByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category = $1 AND active
		ORDER BY id
	`, category)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
