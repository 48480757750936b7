package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"transactions-api/internal/ledger"
	"transactions-api/internal/middleware"
	"transactions-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams the caller's transactions as CSV or XLSX.
type ExportHandler struct {
	Ledger *ledger.Ledger
}

func NewExportHandler(l *ledger.Ledger) *ExportHandler {
	return &ExportHandler{Ledger: l}
}

var exportHeader = []string{"id", "title", "amount", "created_at"}

// ExportCSV writes the session's transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)

	txs, err := h.Ledger.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for _, tx := range txs {
		writer.Write([]string{
			tx.ID,
			tx.Title,
			tx.Amount.String(),
			tx.CreatedAt.Format(time.RFC3339),
		})
	}
}

// ExportXLSX writes the session's transactions as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)

	txs, err := h.Ledger.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list transactions")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		util.Error(c, http.StatusInternalServerError, "could not build workbook")
		return
	}
	for i, tx := range txs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{tx.ID, tx.Title, tx.Amount.String(), tx.CreatedAt.Format(time.RFC3339)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			util.Error(c, http.StatusInternalServerError, "could not build workbook")
			return
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		// headers already sent, nothing sensible left to do
		return
	}
}
