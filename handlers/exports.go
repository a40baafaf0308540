package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

// ExportReportesExcel downloads the report list (with the usual optional
// filters) as a spreadsheet for the admin panel.
func (h *Handler) ExportReportesExcel(w http.ResponseWriter, r *http.Request) {
	query := h.DB.Preload("Categoria").Preload("Estado")
	if idCategoria := queryInt(r, "id_categoria", 0); idCategoria != 0 {
		query = query.Where("id_categoria = ?", idCategoria)
	}
	if idEstado := queryInt(r, "id_estado", 0); idEstado != 0 {
		query = query.Where("id_estado = ?", idEstado)
	}

	var reportes []models.Reporte
	if err := query.Order("created_at DESC").Find(&reportes).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	f := excelize.NewFile()
	sheet := "Reportes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo generar el archivo")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})

	headers := []string{"Folio", "Nombre", "Apellido paterno", "Apellido materno",
		"Categoría", "Estado", "Dirección", "Fecha de creación"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, reporte := range reportes {
		direccion := ""
		if reporte.Direccion != nil {
			direccion = *reporte.Direccion
		}
		values := []interface{}{
			reporte.Folio, reporte.Nombre, reporte.ApellidoPaterno, reporte.ApellidoMaterno,
			reporte.Categoria.Nombre, reporte.Estado.Nombre, direccion,
			reporte.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo generar el archivo")
		return
	}

	filename := fmt.Sprintf("reportes_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// GetReportePDF generates the one-page acuse the citizen keeps after filing a
// report.
func (h *Handler) GetReportePDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reporte models.Reporte
	err := h.DB.Preload("Categoria").Preload("Estado").
		First(&reporte, "id_reporte = ?", id).Error
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so the accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SIRSE - Acuse de reporte")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(50, 8, tr(label))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, tr(value))
		pdf.Ln(8)
	}

	line("Folio:", reporte.Folio)
	line("Reportante:", fmt.Sprintf("%s %s %s", reporte.Nombre, reporte.ApellidoPaterno, reporte.ApellidoMaterno))
	line("Categoría:", reporte.Categoria.Nombre)
	line("Estado:", reporte.Estado.Nombre)
	if reporte.Direccion != nil {
		line("Dirección:", *reporte.Direccion)
	}
	if reporte.Descripcion != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(50, 8, tr("Descripción:"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(*reporte.Descripcion), "", "L", false)
	}
	pdf.Ln(6)
	line("Fecha de registro:", reporte.CreatedAt.Format("2006-01-02 15:04:05"))

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo generar el PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", reporte.Folio))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
