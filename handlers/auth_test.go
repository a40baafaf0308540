package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PatricioVargasR/Sistema-SIRSE/middleware"
	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

// comoUsuario routes the request through the JWT middleware with a token for
// email, so GetEmail resolves inside the handler the same way it does behind
// the router.
func comoUsuario(t *testing.T, email string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	token, err := middleware.GenerateToken(email)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.JWTMiddleware(handler).ServeHTTP(rec, req)
	return rec
}

func registrar(t *testing.T, h *Handler, email, contrasena string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{
		"nombre":     "Ana",
		"email":      email,
		"contraseña": contrasena,
	})
	req := httptest.NewRequest("POST", "/api/auth/registro", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Registro(rec, req)
	return rec
}

func TestRegistro_EmailDuplicado(t *testing.T) {
	h := newTestHandler(t)

	rec := registrar(t, h, "ana@sirse.mx", "secreto123")
	require.Equal(t, 201, rec.Code, rec.Body.String())

	rec = registrar(t, h, "ana@sirse.mx", "otro456")
	assert.Equal(t, 409, rec.Code)

	var count int64
	h.DB.Model(&models.Usuario{}).Where("email = ?", "ana@sirse.mx").Count(&count)
	assert.Equal(t, int64(1), count, "el segundo intento no debe dejar fila")
}

func TestRegistro_GuardaHashNoTextoPlano(t *testing.T) {
	h := newTestHandler(t)

	rec := registrar(t, h, "ana@sirse.mx", "secreto123")
	require.Equal(t, 201, rec.Code)

	var usuario models.Usuario
	require.NoError(t, h.DB.First(&usuario, "email = ?", "ana@sirse.mx").Error)
	assert.NotEqual(t, "secreto123", usuario.Contrasena)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte("secreto123")))

	assert.NotContains(t, rec.Body.String(), "secreto123")
	assert.NotContains(t, rec.Body.String(), usuario.Contrasena, "el hash nunca se serializa")
}

func TestRegistro_RolPorDefecto(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, 201, registrar(t, h, "ana@sirse.mx", "secreto123").Code)

	var usuario models.Usuario
	require.NoError(t, h.DB.First(&usuario, "email = ?", "ana@sirse.mx").Error)
	assert.Equal(t, "Operador", usuario.Rol)
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, 201, registrar(t, h, "ana@sirse.mx", "secreto123").Code)

	login := func(email, contrasena string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]string{"email": email, "contraseña": contrasena})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	rec := login("ana@sirse.mx", "secreto123")
	require.Equal(t, 200, rec.Code, rec.Body.String())
	var resp tokenResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana@sirse.mx", resp.Usuario.Email)

	assert.Equal(t, 400, login("ana@sirse.mx", "incorrecta").Code)
	assert.Equal(t, 404, login("nadie@sirse.mx", "secreto123").Code)
}

func TestUpdateUsuario_MergeParcialYRehash(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, 201, registrar(t, h, "ana@sirse.mx", "secreto123").Code)

	var usuario models.Usuario
	require.NoError(t, h.DB.First(&usuario, "email = ?", "ana@sirse.mx").Error)
	hashAnterior := usuario.Contrasena

	payload, _ := json.Marshal(map[string]string{
		"departamento": "Atención ciudadana",
		"contraseña":   "nueva789",
	})
	req := httptest.NewRequest("PUT", "/api/usuarios/1", bytes.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(usuario.ID)})
	rec := httptest.NewRecorder()
	h.UpdateUsuario(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	require.NoError(t, h.DB.First(&usuario, "id = ?", usuario.ID).Error)
	assert.Equal(t, "Ana", usuario.Nombre, "los campos no enviados quedan intactos")
	assert.Equal(t, "Atención ciudadana", *usuario.Departamento)
	assert.NotEqual(t, hashAnterior, usuario.Contrasena)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte("nueva789")))
}

func TestDeleteUsuario_NoExiste(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("DELETE", "/api/usuarios/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rec := httptest.NewRecorder()
	h.DeleteUsuario(rec, req)
	assert.Equal(t, 404, rec.Code)
}

func TestDeleteUsuario_PropiaCuenta(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, 201, registrar(t, h, "ana@sirse.mx", "secreto123").Code)
	require.Equal(t, 201, registrar(t, h, "beto@sirse.mx", "secreto456").Code)

	var ana, beto models.Usuario
	require.NoError(t, h.DB.First(&ana, "email = ?", "ana@sirse.mx").Error)
	require.NoError(t, h.DB.First(&beto, "email = ?", "beto@sirse.mx").Error)

	borrar := func(id uint) *http.Request {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/usuarios/%d", id), nil)
		return mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(id)})
	}

	rec := comoUsuario(t, "ana@sirse.mx", h.DeleteUsuario, borrar(ana.ID))
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "propia cuenta")

	var count int64
	h.DB.Model(&models.Usuario{}).Where("id = ?", ana.ID).Count(&count)
	assert.Equal(t, int64(1), count, "el rechazo no debe tocar la fila")

	// Borrar a otra cuenta con el mismo token sí procede.
	rec = comoUsuario(t, "ana@sirse.mx", h.DeleteUsuario, borrar(beto.ID))
	require.Equal(t, 200, rec.Code, rec.Body.String())
	h.DB.Model(&models.Usuario{}).Where("id = ?", beto.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCambiarContrasena(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, 201, registrar(t, h, "ana@sirse.mx", "secreto123").Code)

	cambiar := func(actual, nueva string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]string{
			"contraseña_actual": actual,
			"contraseña_nueva":  nueva,
		})
		req := httptest.NewRequest("PUT", "/api/usuarios/me/cambiar-contrasena", bytes.NewReader(payload))
		return comoUsuario(t, "ana@sirse.mx", h.CambiarContrasena, req)
	}

	rec := cambiar("equivocada", "nueva789")
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contraseña actual incorrecta")

	var usuario models.Usuario
	require.NoError(t, h.DB.First(&usuario, "email = ?", "ana@sirse.mx").Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte("secreto123")),
		"el intento fallido no debe cambiar el hash")

	rec = cambiar("secreto123", "nueva789")
	require.Equal(t, 200, rec.Code, rec.Body.String())

	require.NoError(t, h.DB.First(&usuario, "email = ?", "ana@sirse.mx").Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte("nueva789")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte("secreto123")))
}
