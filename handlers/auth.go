package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/middleware"
	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

type registroReq struct {
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Contrasena   string  `json:"contraseña"`
	Telefono     *string `json:"telefono"`
	Departamento *string `json:"departamento"`
	Rol          string  `json:"rol"`
}

type loginReq struct {
	Email      string `json:"email"`
	Contrasena string `json:"contraseña"`
}

type tokenResp struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Usuario     models.Usuario `json:"usuario"`
}

func hashContrasena(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verificarContrasena(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Registro creates an operator account. Duplicate emails are rejected before
// the insert so the caller gets a clean conflict instead of a DB error.
func (h *Handler) Registro(w http.ResponseWriter, r *http.Request) {
	var req registroReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var existing models.Usuario
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		writeDetail(w, http.StatusConflict, "El email ya está registrado")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	hash, err := hashContrasena(req.Contrasena)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "error al procesar la contraseña")
		return
	}

	rol := req.Rol
	if rol == "" {
		rol = "Operador"
	}
	usuario := models.Usuario{
		Nombre:       req.Nombre,
		Email:        req.Email,
		Contrasena:   hash,
		Telefono:     req.Telefono,
		Departamento: req.Departamento,
		Rol:          rol,
	}
	if err := h.DB.Create(&usuario).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, usuario)
}

// Login checks credentials and issues a bearer token with the email as subject.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var usuario models.Usuario
	if err := h.DB.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if !verificarContrasena(req.Contrasena, usuario.Contrasena) {
		writeDetail(w, http.StatusBadRequest, "Contraseña incorrecta")
		return
	}

	token, err := middleware.GenerateToken(usuario.Email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo crear el token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{
		AccessToken: token,
		TokenType:   "bearer",
		Usuario:     usuario,
	})
}

// Me returns the profile of the token's subject.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	var usuario models.Usuario
	if err := h.DB.Where("email = ?", middleware.GetEmail(r)).First(&usuario).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}
