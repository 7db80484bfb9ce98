package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"storehouse/internal/models"
	"storehouse/internal/pdf"
	"storehouse/internal/services"
)

type StockHandler struct {
	service services.StockService
	pdfGen  pdf.Generator
}

func NewStockHandler(service services.StockService, pdfGen pdf.Generator) *StockHandler {
	return &StockHandler{service: service, pdfGen: pdfGen}
}

type stockRequest struct {
	StockQuantity   int    `json:"stock_quantity" binding:"required,gt=0"`
	CurrentQuantity int    `json:"current_quantity"`
	Note            string `json:"note"`
	ProductID       int64  `json:"product_id" binding:"required"`
	CategoryID      int64  `json:"category_id"`
}

func (h *StockHandler) Create(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	s := &models.Stock{
		StockQuantity:   req.StockQuantity,
		CurrentQuantity: req.CurrentQuantity,
		Note:            req.Note,
		UserID:          currentUserID(c),
		ProductID:       req.ProductID,
		CategoryID:      req.CategoryID,
	}
	if err := h.service.CreateStock(s); err != nil {
		log.Printf("[stock][create] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stock"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *StockHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}
	s, err := h.service.GetStockByID(id)
	if err != nil || s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *StockHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	stocks, err := h.service.ListStocks(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stocks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stocks})
}

func (h *StockHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}
	s, err := h.service.GetStockByID(id)
	if err != nil || s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}
	var req struct {
		StockQuantity   *int    `json:"stock_quantity"`
		CurrentQuantity *int    `json:"current_quantity"`
		Note            *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	if req.StockQuantity != nil {
		s.StockQuantity = *req.StockQuantity
	}
	if req.CurrentQuantity != nil {
		s.CurrentQuantity = *req.CurrentQuantity
	}
	if req.Note != nil {
		s.Note = *req.Note
	}
	if err := h.service.UpdateStock(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}
	if err := h.service.DeleteStock(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock deleted"})
}

// Report — PDF со сводкой остатков.
func (h *StockHandler) Report(c *gin.Context) {
	rows, err := h.service.StockReport()
	if err != nil {
		log.Printf("[stock][report] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	path, err := h.pdfGen.GenerateStockReport(rows)
	if err != nil {
		log.Printf("[stock][report] pdf error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
