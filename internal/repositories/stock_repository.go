package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type StockRepository struct {
	DB *sql.DB
}

func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{DB: db}
}

func (r *StockRepository) Create(s *models.Stock) error {
	const q = `
		INSERT INTO stocks (stock_quantity, current_quantity, note, user_id, product_id, category_id)
		VALUES ($1, $2, $3, NULLIF($4,0), $5, NULLIF($6,0))
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		s.StockQuantity, s.CurrentQuantity, s.Note, s.UserID, s.ProductID, s.CategoryID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("stock create: %w", err)
	}
	return nil
}

const stockColumns = `
	id, stock_quantity, current_quantity, COALESCE(note,''),
	COALESCE(user_id,0), product_id, COALESCE(category_id,0), created_at, updated_at
`

func (r *StockRepository) GetByID(id int64) (*models.Stock, error) {
	q := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	s := &models.Stock{}
	err := r.DB.QueryRow(q, id).Scan(
		&s.ID, &s.StockQuantity, &s.CurrentQuantity, &s.Note,
		&s.UserID, &s.ProductID, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stock get: %w", err)
	}
	return s, nil
}

func (r *StockRepository) List(limit, offset int) ([]*models.Stock, error) {
	q := `SELECT ` + stockColumns + ` FROM stocks ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("stock list: %w", err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		s := &models.Stock{}
		if err := rows.Scan(
			&s.ID, &s.StockQuantity, &s.CurrentQuantity, &s.Note,
			&s.UserID, &s.ProductID, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("stock scan: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

func (r *StockRepository) Update(s *models.Stock) error {
	const q = `
		UPDATE stocks
		SET stock_quantity=$1, current_quantity=$2, note=$3, updated_at=NOW()
		WHERE id=$4
	`
	if _, err := r.DB.Exec(q, s.StockQuantity, s.CurrentQuantity, s.Note, s.ID); err != nil {
		return fmt.Errorf("stock update: %w", err)
	}
	return nil
}

func (r *StockRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM stocks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("stock delete: %w", err)
	}
	return nil
}

// ListDetailed — джойн для сводного отчёта по складу.
func (r *StockRepository) ListDetailed() ([]*models.StockReportRow, error) {
	const q = `
		SELECT p.product_name, p.product_code, COALESCE(c.name,''),
		       s.stock_quantity, s.current_quantity, COALESCE(s.note,'')
		FROM stocks s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = s.category_id
		ORDER BY p.product_name
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()

	var report []*models.StockReportRow
	for rows.Next() {
		row := &models.StockReportRow{}
		if err := rows.Scan(
			&row.ProductName, &row.ProductCode, &row.CategoryName,
			&row.StockQuantity, &row.CurrentQuantity, &row.Note,
		); err != nil {
			return nil, fmt.Errorf("stock report scan: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
