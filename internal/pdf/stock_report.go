package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"storehouse/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateStockReport(rows []*models.StockReportRow) (string, error)
}

type ReportGenerator struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF; пусто — используем встроенную Helvetica
	fontName string
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	g := &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "Helvetica",
	}
	if fontPath != "" {
		g.fontName = "Custom"
	}
	return g
}

// GenerateStockReport — сводная таблица остатков по продуктам.
// Возвращает имя файла относительно RootDir.
func (g *ReportGenerator) GenerateStockReport(rows []*models.StockReportRow) (string, error) {
	filename := fmt.Sprintf("stock_report_%s.pdf", time.Now().Format("2006-01-02_150405"))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Stock Report", false)
	pdf.SetAuthor("storehouse", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)

	g.addFont(pdf)
	pdf.AliasNbPages("")
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "STOCK REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, time.Now().Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== Шапка таблицы
	widths := []float64{60, 30, 35, 25, 30}
	headers := []string{"Product", "Code", "Category", "Recorded", "Current"}
	pdf.SetFont(g.fontName, "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// ===== Строки
	pdf.SetFont(g.fontName, "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 6, row.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, row.ProductCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, row.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, strconv.Itoa(row.StockQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, strconv.Itoa(row.CurrentQuantity), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// ===== Итого
	totalRecorded, totalCurrent := 0, 0
	for _, row := range rows {
		totalRecorded += row.StockQuantity
		totalCurrent += row.CurrentQuantity
	}
	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, strconv.Itoa(totalRecorded), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, strconv.Itoa(totalCurrent), "1", 1, "R", false, 0, "")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReportGenerator) addFont(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(15, y, 195, y)
	pdf.SetY(y + 2)
}
