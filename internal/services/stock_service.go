package services

import (
	"storehouse/internal/models"
	"storehouse/internal/repositories"
)

type StockService interface {
	CreateStock(s *models.Stock) error
	GetStockByID(id int64) (*models.Stock, error)
	ListStocks(limit, offset int) ([]*models.Stock, error)
	UpdateStock(s *models.Stock) error
	DeleteStock(id int64) error
	StockReport() ([]*models.StockReportRow, error)
}

type stockService struct {
	repo *repositories.StockRepository
}

func NewStockService(repo *repositories.StockRepository) StockService {
	return &stockService{repo: repo}
}

func (s *stockService) CreateStock(st *models.Stock) error {
	// новая партия без явного остатка считается нетронутой
	if st.CurrentQuantity == 0 {
		st.CurrentQuantity = st.StockQuantity
	}
	return s.repo.Create(st)
}

func (s *stockService) GetStockByID(id int64) (*models.Stock, error) { return s.repo.GetByID(id) }

func (s *stockService) ListStocks(limit, offset int) ([]*models.Stock, error) {
	return s.repo.List(limit, offset)
}

func (s *stockService) UpdateStock(st *models.Stock) error { return s.repo.Update(st) }

func (s *stockService) DeleteStock(id int64) error { return s.repo.Delete(id) }

func (s *stockService) StockReport() ([]*models.StockReportRow, error) {
	return s.repo.ListDetailed()
}
