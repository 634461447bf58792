package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/Gouveia04K/GA-Financas/internal/middleware"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the caller's transações as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"descricao", "valor", "tipo", "categoria", "data", "observacao", "criada_em"}

func (h *ExportHandler) loadTransacoes(c *gin.Context, userID uint) ([]models.Transacao, bool) {
	var txs []models.Transacao
	if err := h.DB.Preload("Categoria").
		Where("user_id = ?", userID).
		Order("data ASC, id ASC").
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar transações")
		return nil, false
	}
	return txs, true
}

func exportRow(t *models.Transacao) []string {
	catNome := ""
	if t.Categoria != nil {
		catNome = t.Categoria.Nome
	}
	return []string{
		t.Descricao,
		t.Valor.StringFixed(2),
		t.Tipo,
		catNome,
		t.Data.Format("2006-01-02"),
		t.Observacao,
		t.CriadaEm.Format("2006-01-02 15:04:05"),
	}
}

// ExportCSV streams the caller's transações as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	txs, ok := h.loadTransacoes(c, user.ID)
	if !ok {
		return
	}

	filename := fmt.Sprintf("transacoes_%s.csv", uuid.New().String())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for i := range txs {
		_ = w.Write(exportRow(&txs[i]))
	}
	w.Flush()
}

// ExportXLSX builds an Excel workbook with the caller's transações.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	txs, ok := h.loadTransacoes(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Transações"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar planilha")
		return
	}

	header := make([]interface{}, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar planilha")
		return
	}
	for i := range txs {
		row := exportRow(&txs[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			util.Error(c, http.StatusInternalServerError, "erro ao gerar planilha")
			return
		}
	}

	filename := fmt.Sprintf("transacoes_%s.xlsx", uuid.New().String())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar planilha")
		return
	}
}
