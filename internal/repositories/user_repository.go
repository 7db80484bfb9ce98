package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int64) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)

	// verification
	SetEmailVerified(email string) error
	// компенсирующее удаление при неудачной регистрации
	DeleteByEmail(email string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (full_name, user_name, email, profile_photo, role_id, email_verified)
		VALUES ($1, $2, $3, $4, NULLIF($5, 0), $6)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.FullName,
		user.UserName,
		user.Email,
		user.ProfilePhoto,
		user.RoleID,
		user.EmailVerified,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

const userColumns = `
	id, COALESCE(full_name,''), user_name, email,
	COALESCE(profile_photo,''), COALESCE(role_id,0), email_verified, created_at
`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.FullName, &u.UserName, &u.Email,
		&u.ProfilePhoto, &u.RoleID, &u.EmailVerified, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRow(q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRow(q, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET full_name=$1, user_name=$2, email=$3, profile_photo=$4, role_id=NULLIF($5,0)
		WHERE id=$6
	`
	if _, err := r.DB.Exec(q,
		user.FullName, user.UserName, user.Email, user.ProfilePhoto, user.RoleID, user.ID,
	); err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c); err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return c, nil
}

func (r *userRepository) SetEmailVerified(email string) error {
	res, err := r.DB.Exec(`UPDATE users SET email_verified = TRUE WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("user set email verified: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user set email verified: no user with email %s", email)
	}
	return nil
}

func (r *userRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE email = $1`, email); err != nil {
		return fmt.Errorf("user delete by email: %w", err)
	}
	return nil
}
