package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
		INSERT INTO products (product_code, product_name, category_id, details, status)
		VALUES ($1, $2, NULLIF($3, 0), $4, $5)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		p.ProductCode, p.ProductName, p.CategoryID, p.Details, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("product create: %w", err)
	}
	return nil
}

const productColumns = `
	id, product_code, product_name, COALESCE(category_id,0),
	COALESCE(details,''), status, created_at, updated_at
`

func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p := &models.Product{}
	err := r.DB.QueryRow(q, id).Scan(
		&p.ID, &p.ProductCode, &p.ProductName, &p.CategoryID,
		&p.Details, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("product get: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) List(limit, offset int) ([]*models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY product_name LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("product list: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(
			&p.ID, &p.ProductCode, &p.ProductName, &p.CategoryID,
			&p.Details, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("product scan: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
		UPDATE products
		SET product_name=$1, category_id=NULLIF($2,0), details=$3, status=$4, updated_at=NOW()
		WHERE id=$5
	`
	if _, err := r.DB.Exec(q, p.ProductName, p.CategoryID, p.Details, p.Status, p.ID); err != nil {
		return fmt.Errorf("product update: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("product delete: %w", err)
	}
	return nil
}
