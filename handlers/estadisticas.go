package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

var nombresMeses = [13]string{"",
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// GetEstadisticasGenerales returns the dashboard headline numbers. States
// 1/2/3 are the seeded Pendiente/En proceso/Resuelto rows.
func (h *Handler) GetEstadisticasGenerales(w http.ResponseWriter, r *http.Request) {
	var totalReportes, totalCategorias int64
	var pendientes, enProceso, resueltos, ultimoMes int64

	h.DB.Model(&models.Reporte{}).Count(&totalReportes)
	h.DB.Model(&models.Categoria{}).Where("estado = ?", true).Count(&totalCategorias)
	h.DB.Model(&models.Reporte{}).Where("id_estado = ?", 1).Count(&pendientes)
	h.DB.Model(&models.Reporte{}).Where("id_estado = ?", 2).Count(&enProceso)
	h.DB.Model(&models.Reporte{}).Where("id_estado = ?", 3).Count(&resueltos)

	haceUnMes := time.Now().AddDate(0, 0, -30)
	h.DB.Model(&models.Reporte{}).Where("created_at >= ?", haceUnMes).Count(&ultimoMes)

	writeJSON(w, http.StatusOK, map[string]int64{
		"total_reportes":      totalReportes,
		"total_categorias":    totalCategorias,
		"reportes_pendientes": pendientes,
		"reportes_proceso":    enProceso,
		"reportes_resueltos":  resueltos,
		"reportes_ultimo_mes": ultimoMes,
	})
}

// GetReportesPorCategoria counts reports per category; categories without
// reports appear with total 0.
func (h *Handler) GetReportesPorCategoria(w http.ResponseWriter, r *http.Request) {
	var rows []struct {
		Nombre string
		Total  int64
	}
	err := h.DB.Table("categorias").
		Select("categorias.nombre AS nombre, COUNT(reportes.id_reporte) AS total").
		Joins("LEFT JOIN reportes ON reportes.id_categoria = categorias.id_categoria").
		Group("categorias.id_categoria, categorias.nombre").
		Scan(&rows).Error
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]interface{}{"categoria": row.Nombre, "total": row.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetReportesPorEstado(w http.ResponseWriter, r *http.Request) {
	var rows []struct {
		Nombre string
		Total  int64
	}
	err := h.DB.Table("estados").
		Select("estados.nombre AS nombre, COUNT(reportes.id_reporte) AS total").
		Joins("LEFT JOIN reportes ON reportes.id_estado = estados.id_estado").
		Group("estados.id_estado, estados.nombre").
		Scan(&rows).Error
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]interface{}{"estado": row.Nombre, "total": row.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetReportesPorMes buckets the trailing 12 months of reports by calendar
// month. Bucketing happens here instead of SQL so the query stays portable
// across Postgres and the sqlite test driver.
func (h *Handler) GetReportesPorMes(w http.ResponseWriter, r *http.Request) {
	desde := time.Now().AddDate(-1, 0, 0)

	var fechas []time.Time
	err := h.DB.Model(&models.Reporte{}).
		Where("created_at >= ?", desde).
		Pluck("created_at", &fechas).Error
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	type claveMes struct {
		Anio int
		Mes  int
	}
	conteo := map[claveMes]int{}
	for _, fecha := range fechas {
		conteo[claveMes{fecha.Year(), int(fecha.Month())}]++
	}

	claves := make([]claveMes, 0, len(conteo))
	for clave := range conteo {
		claves = append(claves, clave)
	}
	sort.Slice(claves, func(i, j int) bool {
		if claves[i].Anio != claves[j].Anio {
			return claves[i].Anio < claves[j].Anio
		}
		return claves[i].Mes < claves[j].Mes
	})

	out := make([]map[string]interface{}, 0, len(claves))
	for _, clave := range claves {
		out = append(out, map[string]interface{}{
			"año":        clave.Anio,
			"mes":        clave.Mes,
			"nombre_mes": nombresMeses[clave.Mes],
			"total":      conteo[clave],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetReportesRecientes returns the newest N reports with their category and
// state names resolved.
func (h *Handler) GetReportesRecientes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	var reportes []models.Reporte
	err := h.DB.Preload("Categoria").Preload("Estado").
		Order("created_at DESC").Limit(limit).Find(&reportes).Error
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(reportes))
	for _, reporte := range reportes {
		out = append(out, map[string]interface{}{
			"id_reporte": reporte.IDReporte,
			"folio":      reporte.Folio,
			"nombre":     reporte.Nombre + " " + reporte.ApellidoPaterno,
			"categoria":  reporte.Categoria.Nombre,
			"estado":     reporte.Estado.Nombre,
			"created_at": reporte.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetZonasCalientes ranks addresses by report frequency.
func (h *Handler) GetZonasCalientes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	var rows []struct {
		Direccion string
		Total     int64
	}
	err := h.DB.Model(&models.Reporte{}).
		Select("direccion, COUNT(id_reporte) AS total").
		Where("direccion IS NOT NULL AND direccion <> ''").
		Group("direccion").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]interface{}{"direccion": row.Direccion, "total": row.Total})
	}
	writeJSON(w, http.StatusOK, out)
}
