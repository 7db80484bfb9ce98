package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type LoginLogRepository interface {
	Create(log *models.LoginLog) error
	ListByUserID(userID int64, limit, offset int) ([]*models.LoginLog, error)
	// ClearSession — обнулить ссылку на сессию, строки лога не удаляем
	ClearSession(sessionID string) error
}

type loginLogRepository struct {
	DB *sql.DB
}

func NewLoginLogRepository(db *sql.DB) LoginLogRepository {
	return &loginLogRepository{DB: db}
}

func (r *loginLogRepository) Create(l *models.LoginLog) error {
	const q = `
		INSERT INTO login_logs (session_id, user_id, browser, device, os, ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, logged_in_at
	`
	if err := r.DB.QueryRow(q,
		l.SessionID, l.UserID, l.Browser, l.Device, l.OS, l.IP,
	).Scan(&l.ID, &l.LoggedInAt); err != nil {
		return fmt.Errorf("login log create: %w", err)
	}
	return nil
}

func (r *loginLogRepository) ListByUserID(userID int64, limit, offset int) ([]*models.LoginLog, error) {
	const q = `
		SELECT id, session_id, user_id, browser, device, os, ip, logged_in_at
		FROM login_logs
		WHERE user_id = $1
		ORDER BY logged_in_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("login log list: %w", err)
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		l := &models.LoginLog{}
		var sid sql.NullString
		if err := rows.Scan(&l.ID, &sid, &l.UserID, &l.Browser, &l.Device, &l.OS, &l.IP, &l.LoggedInAt); err != nil {
			return nil, fmt.Errorf("login log scan: %w", err)
		}
		if sid.Valid {
			s := sid.String
			l.SessionID = &s
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *loginLogRepository) ClearSession(sessionID string) error {
	if _, err := r.DB.Exec(`UPDATE login_logs SET session_id = NULL WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("login log clear session: %w", err)
	}
	return nil
}
