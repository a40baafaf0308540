package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
	"github.com/PatricioVargasR/Sistema-SIRSE/utils"
)

type reporteCreateReq struct {
	Nombre             string  `json:"nombre"`
	ApellidoPaterno    string  `json:"apellido_paterno"`
	ApellidoMaterno    string  `json:"apellido_materno"`
	Descripcion        *string `json:"descripcion"`
	TelefonoReportante *string `json:"telefono_reportante"`
	Latitud            *string `json:"latitud"`
	Longitud           *string `json:"longitud"`
	Direccion          *string `json:"direccion"`
	IDCategoria        uint    `json:"id_categoria"`
	IDEstado           uint    `json:"id_estado"`
}

type reporteUpdateReq struct {
	Nombre             *string `json:"nombre"`
	ApellidoPaterno    *string `json:"apellido_paterno"`
	ApellidoMaterno    *string `json:"apellido_materno"`
	Descripcion        *string `json:"descripcion"`
	TelefonoReportante *string `json:"telefono_reportante"`
	Latitud            *string `json:"latitud"`
	Longitud           *string `json:"longitud"`
	Direccion          *string `json:"direccion"`
	IDCategoria        *uint   `json:"id_categoria"`
	IDEstado           *uint   `json:"id_estado"`
}

// reporteSimple is the reduced projection used by the map endpoint.
type reporteSimple struct {
	IDReporte       uint      `json:"id_reporte"`
	Nombre          string    `json:"nombre"`
	ApellidoPaterno string    `json:"apellido_paterno"`
	ApellidoMaterno string    `json:"apellido_materno"`
	Folio           string    `json:"folio"`
	Descripcion     *string   `json:"descripcion"`
	Latitud         *string   `json:"latitud"`
	Longitud        *string   `json:"longitud"`
	Direccion       *string   `json:"direccion"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) categoriaExists(id uint) (bool, error) {
	var categoria models.Categoria
	err := h.DB.First(&categoria, "id_categoria = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (h *Handler) estadoExists(id uint) (bool, error) {
	var estado models.Estado
	err := h.DB.First(&estado, "id_estado = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CreateReporte validates the category and state references, assigns a fresh
// folio and stores the report. The state defaults to 1 (Pendiente).
func (h *Handler) CreateReporte(w http.ResponseWriter, r *http.Request) {
	var req reporteCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.IDEstado == 0 {
		req.IDEstado = 1
	}

	if ok, err := h.categoriaExists(req.IDCategoria); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	} else if !ok {
		writeDetail(w, http.StatusNotFound, "Categoría no encontrada")
		return
	}
	if ok, err := h.estadoExists(req.IDEstado); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	} else if !ok {
		writeDetail(w, http.StatusNotFound, "Estado no encontrado")
		return
	}

	reporte := models.Reporte{
		Nombre:             req.Nombre,
		ApellidoPaterno:    req.ApellidoPaterno,
		ApellidoMaterno:    req.ApellidoMaterno,
		Folio:              utils.GenerarFolio(),
		TelefonoReportante: req.TelefonoReportante,
		Descripcion:        req.Descripcion,
		Latitud:            req.Latitud,
		Longitud:           req.Longitud,
		Direccion:          req.Direccion,
		IDCategoria:        req.IDCategoria,
		IDEstado:           req.IDEstado,
	}
	if err := h.DB.Create(&reporte).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.DB.Preload("Categoria").Preload("Estado").Preload("Multimedia").
		First(&reporte, "id_reporte = ?", reporte.IDReporte)
	writeJSON(w, http.StatusCreated, reporte)
}

// GetReportes lists reports newest-first with optional category/state filters
// and skip/limit pagination. A filter value of 0 means "no filter".
func (h *Handler) GetReportes(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	query := h.DB.Preload("Categoria").Preload("Estado").Preload("Multimedia")
	if idCategoria := queryInt(r, "id_categoria", 0); idCategoria != 0 {
		query = query.Where("id_categoria = ?", idCategoria)
	}
	if idEstado := queryInt(r, "id_estado", 0); idEstado != 0 {
		query = query.Where("id_estado = ?", idEstado)
	}

	var reportes []models.Reporte
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&reportes).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reportes)
}

func (h *Handler) GetReporte(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reporte models.Reporte
	err := h.DB.Preload("Categoria").Preload("Estado").Preload("Multimedia").
		First(&reporte, "id_reporte = ?", id).Error
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, reporte)
}

// GetReportePorFolio is the citizen-facing lookup: exact folio match.
func (h *Handler) GetReportePorFolio(w http.ResponseWriter, r *http.Request) {
	folio := mux.Vars(r)["folio"]

	var reporte models.Reporte
	err := h.DB.Preload("Categoria").Preload("Estado").Preload("Multimedia").
		First(&reporte, "folio = ?", folio).Error
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, reporte)
}

// UpdateReporte merges only the fields present in the body. Category and state
// references are re-validated only when they change.
func (h *Handler) UpdateReporte(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req reporteUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var reporte models.Reporte
	if err := h.DB.First(&reporte, "id_reporte = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}

	if req.IDCategoria != nil {
		if ok, err := h.categoriaExists(*req.IDCategoria); err != nil {
			writeDetail(w, http.StatusInternalServerError, err.Error())
			return
		} else if !ok {
			writeDetail(w, http.StatusNotFound, "Categoría no encontrada")
			return
		}
		reporte.IDCategoria = *req.IDCategoria
	}
	if req.IDEstado != nil {
		if ok, err := h.estadoExists(*req.IDEstado); err != nil {
			writeDetail(w, http.StatusInternalServerError, err.Error())
			return
		} else if !ok {
			writeDetail(w, http.StatusNotFound, "Estado no encontrado")
			return
		}
		reporte.IDEstado = *req.IDEstado
	}

	if req.Nombre != nil {
		reporte.Nombre = *req.Nombre
	}
	if req.ApellidoPaterno != nil {
		reporte.ApellidoPaterno = *req.ApellidoPaterno
	}
	if req.ApellidoMaterno != nil {
		reporte.ApellidoMaterno = *req.ApellidoMaterno
	}
	if req.Descripcion != nil {
		reporte.Descripcion = req.Descripcion
	}
	if req.TelefonoReportante != nil {
		reporte.TelefonoReportante = req.TelefonoReportante
	}
	if req.Latitud != nil {
		reporte.Latitud = req.Latitud
	}
	if req.Longitud != nil {
		reporte.Longitud = req.Longitud
	}
	if req.Direccion != nil {
		reporte.Direccion = req.Direccion
	}

	if err := h.DB.Save(&reporte).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.DB.Preload("Categoria").Preload("Estado").Preload("Multimedia").
		First(&reporte, "id_reporte = ?", reporte.IDReporte)
	writeJSON(w, http.StatusOK, reporte)
}

// DeleteReporte hard-deletes a report and its multimedia rows. Files on disk
// stay behind; only the multimedia delete endpoint removes those.
func (h *Handler) DeleteReporte(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reporte models.Reporte
	if err := h.DB.First(&reporte, "id_reporte = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}

	if err := h.DB.Where("id_reporte = ?", reporte.IDReporte).Delete(&models.Multimedia{}).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.DB.Delete(&reporte).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Reporte eliminado correctamente")
}

func (h *Handler) puntosQuery(r *http.Request) *gorm.DB {
	query := h.DB.Model(&models.Reporte{}).
		Where("latitud IS NOT NULL AND longitud IS NOT NULL")
	if idCategoria := queryInt(r, "id_categoria", 0); idCategoria != 0 {
		query = query.Where("id_categoria = ?", idCategoria)
	}
	if idEstado := queryInt(r, "id_estado", 0); idEstado != 0 {
		query = query.Where("id_estado = ?", idEstado)
	}
	return query
}

// GetPuntosMapa returns the reduced projection of located reports for the map.
func (h *Handler) GetPuntosMapa(w http.ResponseWriter, r *http.Request) {
	var puntos []reporteSimple
	if err := h.puntosQuery(r).Find(&puntos).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, puntos)
}

// GetPuntosGeoJSON serves the same points as a GeoJSON FeatureCollection for
// the heatmap layer. Rows whose coordinates do not parse are skipped.
func (h *Handler) GetPuntosGeoJSON(w http.ResponseWriter, r *http.Request) {
	var puntos []reporteSimple
	if err := h.puntosQuery(r).Find(&puntos).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, p := range puntos {
		if p.Latitud == nil || p.Longitud == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(*p.Latitud, 64)
		lon, errLon := strconv.ParseFloat(*p.Longitud, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		feature := geojson.NewFeature(orb.Point{lon, lat})
		feature.Properties["id_reporte"] = p.IDReporte
		feature.Properties["folio"] = p.Folio
		if p.Direccion != nil {
			feature.Properties["direccion"] = *p.Direccion
		}
		fc.Append(feature)
	}
	writeJSON(w, http.StatusOK, fc)
}
