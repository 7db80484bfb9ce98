package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type SessionRepository interface {
	Create(session *models.Session) error
	GetByID(id string) (*models.Session, error)
	Delete(id string) error
	DeleteExpired() (int64, error)
}

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	const q = `INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.DB.Exec(q, session.ID, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("session create: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(id string) (*models.Session, error) {
	const q = `SELECT id, user_id, expires_at FROM sessions WHERE id = $1`
	s := &models.Session{}
	if err := r.DB.QueryRow(q, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return s, nil
}

func (r *sessionRepository) Delete(id string) error {
	if _, err := r.DB.Exec(`DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// DeleteExpired — ручная чистка (cron/админка), middleware сам по себе
// протухшие сессии не трогает.
func (r *sessionRepository) DeleteExpired() (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("session delete expired: %w", err)
	}
	return res.RowsAffected()
}
