package repositories

import (
	"database/sql"
	"fmt"

	"storehouse/internal/models"
)

type RoleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) Create(role *models.Role) error {
	const q = `
		INSERT INTO roles (role_name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q, role.RoleName).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return fmt.Errorf("role create: %w", err)
	}
	return nil
}

func (r *RoleRepository) GetByID(id int64) (*models.Role, error) {
	const q = `SELECT id, role_name, created_at, updated_at FROM roles WHERE id = $1`
	role := &models.Role{}
	if err := r.DB.QueryRow(q, id).Scan(&role.ID, &role.RoleName, &role.CreatedAt, &role.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("role get: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) List() ([]*models.Role, error) {
	const q = `SELECT id, role_name, created_at, updated_at FROM roles ORDER BY id`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("role list: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.RoleName, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("role scan: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) Update(role *models.Role) error {
	const q = `UPDATE roles SET role_name=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.DB.Exec(q, role.RoleName, role.ID); err != nil {
		return fmt.Errorf("role update: %w", err)
	}
	return nil
}

func (r *RoleRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("role delete: %w", err)
	}
	return nil
}
