package services

import (
	"storehouse/internal/models"
	"storehouse/internal/repositories"
)

type CategoryService interface {
	CreateCategory(c *models.Category) error
	GetCategoryByID(id int64) (*models.Category, error)
	ListCategories() ([]*models.Category, error)
	UpdateCategory(c *models.Category) error
	DeleteCategory(id int64) error
}

type categoryService struct {
	repo *repositories.CategoryRepository
}

func NewCategoryService(repo *repositories.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(c *models.Category) error { return s.repo.Create(c) }

func (s *categoryService) GetCategoryByID(id int64) (*models.Category, error) {
	return s.repo.GetByID(id)
}

func (s *categoryService) ListCategories() ([]*models.Category, error) { return s.repo.List() }

func (s *categoryService) UpdateCategory(c *models.Category) error { return s.repo.Update(c) }

func (s *categoryService) DeleteCategory(id int64) error { return s.repo.Delete(id) }
