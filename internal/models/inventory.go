package models

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	CategoryID  int64     `json:"category_id,omitempty"`
	Details     string    `json:"details,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stock — движение по складу: сколько оприходовано и сколько осталось.
type Stock struct {
	ID              int64     `json:"id"`
	StockQuantity   int       `json:"stock_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	Note            string    `json:"note,omitempty"`
	UserID          int64     `json:"user_id,omitempty"`
	ProductID       int64     `json:"product_id"`
	CategoryID      int64     `json:"category_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StockReportRow — строка сводного отчёта (продукт + категория + остатки).
type StockReportRow struct {
	ProductName     string `json:"product_name"`
	ProductCode     string `json:"product_code"`
	CategoryName    string `json:"category_name"`
	StockQuantity   int    `json:"stock_quantity"`
	CurrentQuantity int    `json:"current_quantity"`
	Note            string `json:"note,omitempty"`
}
