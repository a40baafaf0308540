package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/middleware"
	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

type usuarioUpdateReq struct {
	Nombre       *string `json:"nombre"`
	Email        *string `json:"email"`
	Telefono     *string `json:"telefono"`
	Departamento *string `json:"departamento"`
	Rol          *string `json:"rol"`
	Contrasena   *string `json:"contraseña"`
}

type cambiarContrasenaReq struct {
	Actual string `json:"contraseña_actual"`
	Nueva  string `json:"contraseña_nueva"`
}

func (h *Handler) GetUsuarios(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	var usuarios []models.Usuario
	if err := h.DB.Offset(skip).Limit(limit).Find(&usuarios).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, usuarios)
}

func (h *Handler) GetUsuario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var usuario models.Usuario
	if err := h.DB.First(&usuario, "id = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

// CreateUsuario lets an authenticated operator create another account. Same
// shape as Registro, kept separate because the admin panel calls both.
func (h *Handler) CreateUsuario(w http.ResponseWriter, r *http.Request) {
	h.Registro(w, r)
}

// UpdateUsuario applies a partial merge: only fields present in the body are
// touched, and a new password goes through the hash.
func (h *Handler) UpdateUsuario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req usuarioUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var usuario models.Usuario
	if err := h.DB.First(&usuario, "id = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	if req.Nombre != nil {
		usuario.Nombre = *req.Nombre
	}
	if req.Email != nil {
		usuario.Email = *req.Email
	}
	if req.Telefono != nil {
		usuario.Telefono = req.Telefono
	}
	if req.Departamento != nil {
		usuario.Departamento = req.Departamento
	}
	if req.Rol != nil {
		usuario.Rol = *req.Rol
	}
	if req.Contrasena != nil {
		hash, err := hashContrasena(*req.Contrasena)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "error al procesar la contraseña")
			return
		}
		usuario.Contrasena = hash
	}

	if err := h.DB.Save(&usuario).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

// DeleteUsuario hard-deletes an account but refuses to delete the caller's own.
func (h *Handler) DeleteUsuario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var usuario models.Usuario
	if err := h.DB.First(&usuario, "id = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	var caller models.Usuario
	err := h.DB.Where("email = ?", middleware.GetEmail(r)).First(&caller).Error
	if err == nil && caller.ID == usuario.ID {
		writeDetail(w, http.StatusBadRequest, "No puedes eliminar tu propia cuenta")
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.DB.Delete(&usuario).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Usuario eliminado correctamente")
}

// CambiarContrasena re-verifies the current password before accepting the new one.
func (h *Handler) CambiarContrasena(w http.ResponseWriter, r *http.Request) {
	var req cambiarContrasenaReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var usuario models.Usuario
	if err := h.DB.Where("email = ?", middleware.GetEmail(r)).First(&usuario).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if !verificarContrasena(req.Actual, usuario.Contrasena) {
		writeDetail(w, http.StatusBadRequest, "Contraseña actual incorrecta")
		return
	}

	hash, err := hashContrasena(req.Nueva)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "error al procesar la contraseña")
		return
	}
	usuario.Contrasena = hash
	if err := h.DB.Save(&usuario).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Contraseña actualizada correctamente")
}
