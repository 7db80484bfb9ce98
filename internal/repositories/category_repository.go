package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(c *models.Category) error {
	const q = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q, c.Name).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("category create: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(id int64) (*models.Category, error) {
	const q = `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`
	c := &models.Category{}
	if err := r.DB.QueryRow(q, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("category get: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) List() ([]*models.Category, error) {
	const q = `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("category list: %w", err)
	}
	defer rows.Close()

	var cats []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("category scan: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) Update(c *models.Category) error {
	const q = `UPDATE categories SET name=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.DB.Exec(q, c.Name, c.ID); err != nil {
		return fmt.Errorf("category update: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("category delete: %w", err)
	}
	return nil
}
