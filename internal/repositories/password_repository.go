package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type PasswordRepository interface {
	Create(userID int64, hash string) error
	GetByUserID(userID int64) (*models.Password, error)
}

type passwordRepository struct {
	DB *sql.DB
}

func NewPasswordRepository(db *sql.DB) PasswordRepository {
	return &passwordRepository{DB: db}
}

// Create — ровно одна строка на пользователя (user_id — первичный ключ).
func (r *passwordRepository) Create(userID int64, hash string) error {
	const q = `INSERT INTO passwords (user_id, password) VALUES ($1, $2)`
	if _, err := r.DB.Exec(q, userID, hash); err != nil {
		return fmt.Errorf("password create: %w", err)
	}
	return nil
}

func (r *passwordRepository) GetByUserID(userID int64) (*models.Password, error) {
	const q = `SELECT user_id, password FROM passwords WHERE user_id = $1`
	p := &models.Password{}
	if err := r.DB.QueryRow(q, userID).Scan(&p.UserID, &p.Hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("password get: %w", err)
	}
	return p, nil
}
