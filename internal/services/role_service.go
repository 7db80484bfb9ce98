package services

import (
	"storehouse/internal/models"
	"storehouse/internal/repositories"
)

type RoleService interface {
	CreateRole(role *models.Role) error
	GetRoleByID(id int64) (*models.Role, error)
	ListRoles() ([]*models.Role, error)
	UpdateRole(role *models.Role) error
	DeleteRole(id int64) error
}

type roleService struct {
	repo *repositories.RoleRepository
}

func NewRoleService(repo *repositories.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) CreateRole(role *models.Role) error { return s.repo.Create(role) }

func (s *roleService) GetRoleByID(id int64) (*models.Role, error) { return s.repo.GetByID(id) }

func (s *roleService) ListRoles() ([]*models.Role, error) { return s.repo.List() }

func (s *roleService) UpdateRole(role *models.Role) error { return s.repo.Update(role) }

func (s *roleService) DeleteRole(id int64) error { return s.repo.Delete(id) }
