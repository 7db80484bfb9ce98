package services

import (
	"fmt"

	"storehouse/internal/models"
	"storehouse/internal/repositories"
	"storehouse/internal/utils"
)

type ProductService interface {
	CreateProduct(p *models.Product) error
	GetProductByID(id int64) (*models.Product, error)
	ListProducts(limit, offset int) ([]*models.Product, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id int64) error
}

type productService struct {
	repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// CreateProduct — артикул генерируется здесь, клиент его не задаёт.
func (s *productService) CreateProduct(p *models.Product) error {
	if p.ProductCode == "" {
		code, err := utils.NewProductCode()
		if err != nil {
			return fmt.Errorf("generate product code: %w", err)
		}
		p.ProductCode = code
	}
	if p.Status == "" {
		p.Status = "active"
	}
	return s.repo.Create(p)
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

func (s *productService) ListProducts(limit, offset int) ([]*models.Product, error) {
	return s.repo.List(limit, offset)
}

func (s *productService) UpdateProduct(p *models.Product) error { return s.repo.Update(p) }

func (s *productService) DeleteProduct(id int64) error { return s.repo.Delete(id) }
