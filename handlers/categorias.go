package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

type categoriaCreateReq struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      *bool   `json:"estado"`
}

type categoriaUpdateReq struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      *bool   `json:"estado"`
}

func (h *Handler) GetCategorias(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	query := h.DB.Offset(skip).Limit(limit)
	if v := r.URL.Query().Get("activos"); v == "true" {
		query = query.Where("estado = ?", true)
	} else if v == "false" {
		query = query.Where("estado = ?", false)
	}

	var categorias []models.Categoria
	if err := query.Find(&categorias).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categorias)
}

func (h *Handler) GetCategoria(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var categoria models.Categoria
	if err := h.DB.First(&categoria, "id_categoria = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Categoría no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, categoria)
}

func (h *Handler) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	var req categoriaCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	categoria := models.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Estado:      true,
	}
	if req.Estado != nil {
		categoria.Estado = *req.Estado
	}
	if err := h.DB.Create(&categoria).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, categoria)
}

func (h *Handler) UpdateCategoria(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req categoriaUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var categoria models.Categoria
	if err := h.DB.First(&categoria, "id_categoria = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Categoría no encontrada")
		return
	}

	if req.Nombre != nil {
		categoria.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		categoria.Descripcion = req.Descripcion
	}
	if req.Estado != nil {
		categoria.Estado = *req.Estado
	}
	if err := h.DB.Save(&categoria).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categoria)
}

// DeleteCategoria is a soft delete: the row stays so existing reports keep a
// valid reference.
func (h *Handler) DeleteCategoria(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var categoria models.Categoria
	if err := h.DB.First(&categoria, "id_categoria = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Categoría no encontrada")
		return
	}

	categoria.Estado = false
	if err := h.DB.Save(&categoria).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Categoría desactivada correctamente")
}
