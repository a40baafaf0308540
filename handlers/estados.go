package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

type estadoCreateReq struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}

type estadoUpdateReq struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}

func (h *Handler) GetEstados(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	query := h.DB.Offset(skip).Limit(limit)
	if v := r.URL.Query().Get("activos"); v == "true" {
		query = query.Where("activo = ?", true)
	} else if v == "false" {
		query = query.Where("activo = ?", false)
	}

	var estados []models.Estado
	if err := query.Find(&estados).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, estados)
}

func (h *Handler) GetEstado(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var estado models.Estado
	if err := h.DB.First(&estado, "id_estado = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Estado no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, estado)
}

func (h *Handler) CreateEstado(w http.ResponseWriter, r *http.Request) {
	var req estadoCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	estado := models.Estado{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if req.Activo != nil {
		estado.Activo = *req.Activo
	}
	if err := h.DB.Create(&estado).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, estado)
}

func (h *Handler) UpdateEstado(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req estadoUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var estado models.Estado
	if err := h.DB.First(&estado, "id_estado = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Estado no encontrado")
		return
	}

	if req.Nombre != nil {
		estado.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		estado.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		estado.Activo = *req.Activo
	}
	if err := h.DB.Save(&estado).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, estado)
}

func (h *Handler) DeleteEstado(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var estado models.Estado
	if err := h.DB.First(&estado, "id_estado = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Estado no encontrado")
		return
	}

	estado.Activo = false
	if err := h.DB.Save(&estado).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Estado desactivado correctamente")
}
