package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storehouse/internal/models"
)

func TestGenerateStockReport(t *testing.T) {
	dir := t.TempDir()
	gen := NewReportGenerator(dir, "")

	rows := []*models.StockReportRow{
		{ProductName: "Widget", ProductCode: "WGT-001", CategoryName: "Hardware", StockQuantity: 100, CurrentQuantity: 87},
		{ProductName: "Gadget", ProductCode: "GDT-002", CategoryName: "Hardware", StockQuantity: 40, CurrentQuantity: 40},
	}

	path, err := gen.GenerateStockReport(rows)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "stock_report_"))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// заголовок PDF
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestGenerateStockReport_EmptyRows(t *testing.T) {
	gen := NewReportGenerator(t.TempDir(), "")

	path, err := gen.GenerateStockReport(nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
