package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

var folioPattern = regexp.MustCompile(`^SIRSE-\d{14}-[A-Z0-9]{4}$`)

func crearReporte(t *testing.T, h *Handler, body map[string]interface{}) models.Reporte {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/reportes", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateReporte(rec, req)
	require.Equal(t, 201, rec.Code, rec.Body.String())

	var reporte models.Reporte
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reporte))
	return reporte
}

func TestCreateReporte_AsignaFolio(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	reporte := crearReporte(t, h, map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
	})

	assert.Regexp(t, folioPattern, reporte.Folio)
	assert.Equal(t, uint(1), reporte.IDEstado, "sin id_estado el reporte queda Pendiente")
	assert.Equal(t, "Pendiente", reporte.Estado.Nombre)

	var saved models.Reporte
	require.NoError(t, h.DB.First(&saved, "folio = ?", reporte.Folio).Error)
	assert.Equal(t, reporte.IDReporte, saved.IDReporte)
}

func TestCreateReporte_CategoriaInexistente(t *testing.T) {
	h := newTestHandler(t)
	seedReferencia(t, h.DB)

	payload, _ := json.Marshal(map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     999,
	})
	req := httptest.NewRequest("POST", "/api/reportes", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateReporte(rec, req)

	assert.Equal(t, 404, rec.Code)

	var count int64
	h.DB.Model(&models.Reporte{}).Count(&count)
	assert.Zero(t, count, "un create rechazado no debe dejar filas")
}

func TestCreateReporte_EstadoInexistente(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	payload, _ := json.Marshal(map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
		"id_estado":        42,
	})
	req := httptest.NewRequest("POST", "/api/reportes", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateReporte(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestUpdateReporte_MergeParcial(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	reporte := crearReporte(t, h, map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
		"descripcion":      "Bache enorme",
		"direccion":        "Av. Juárez 10",
		"latitud":          "19.43",
		"longitud":         "-99.13",
	})

	payload, _ := json.Marshal(map[string]interface{}{"descripcion": "Bache reparado a medias"})
	req := httptest.NewRequest("PUT", "/api/reportes/1", bytes.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(reporte.IDReporte)})
	rec := httptest.NewRecorder()
	h.UpdateReporte(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var saved models.Reporte
	require.NoError(t, h.DB.First(&saved, "id_reporte = ?", reporte.IDReporte).Error)
	assert.Equal(t, "Bache reparado a medias", *saved.Descripcion)
	assert.Equal(t, "Av. Juárez 10", *saved.Direccion)
	assert.Equal(t, "19.43", *saved.Latitud)
	assert.Equal(t, "-99.13", *saved.Longitud)
	assert.Equal(t, reporte.Folio, saved.Folio, "el folio nunca cambia en un update")
}

func TestDeleteReporte_CascadaMultimedia(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	reporte := crearReporte(t, h, map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
	})

	archivos := []models.Multimedia{
		{IDReporte: reporte.IDReporte, URLArchivo: "uploads/a.jpg", TipoArchivo: "imagen"},
		{IDReporte: reporte.IDReporte, URLArchivo: "uploads/b.pdf", TipoArchivo: "documento"},
	}
	require.NoError(t, h.DB.Create(&archivos).Error)

	req := httptest.NewRequest("DELETE", "/api/reportes/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(reporte.IDReporte)})
	rec := httptest.NewRecorder()
	h.DeleteReporte(rec, req)
	require.Equal(t, 200, rec.Code)

	var countReportes, countMultimedia int64
	h.DB.Model(&models.Reporte{}).Count(&countReportes)
	h.DB.Model(&models.Multimedia{}).Where("id_reporte = ?", reporte.IDReporte).Count(&countMultimedia)
	assert.Zero(t, countReportes)
	assert.Zero(t, countMultimedia, "borrar el reporte arrastra sus filas multimedia")
}

func TestGetReportes_FiltroCeroDevuelveTodo(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	for i, estado := range []uint{1, 2, 2} {
		crearReporte(t, h, map[string]interface{}{
			"nombre":           fmt.Sprintf("Reportante %d", i),
			"apellido_paterno": "Pérez",
			"apellido_materno": "López",
			"id_categoria":     categoria.IDCategoria,
			"id_estado":        estado,
		})
	}

	// id_estado=0 se interpreta como "sin filtro", igual que omitirlo
	req := httptest.NewRequest("GET", "/api/reportes?id_estado=0", nil)
	rec := httptest.NewRecorder()
	h.GetReportes(rec, req)
	require.Equal(t, 200, rec.Code)

	var todos []models.Reporte
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	assert.Len(t, todos, 3)

	req = httptest.NewRequest("GET", "/api/reportes?id_estado=2", nil)
	rec = httptest.NewRecorder()
	h.GetReportes(rec, req)
	require.Equal(t, 200, rec.Code)

	var filtrados []models.Reporte
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtrados))
	assert.Len(t, filtrados, 2)
	for _, reporte := range filtrados {
		assert.Equal(t, uint(2), reporte.IDEstado)
	}
}

func TestGetReportePorFolio(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	reporte := crearReporte(t, h, map[string]interface{}{
		"nombre":           "Juan",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
	})

	req := httptest.NewRequest("GET", "/api/reportes/folio/"+reporte.Folio, nil)
	req = mux.SetURLVars(req, map[string]string{"folio": reporte.Folio})
	rec := httptest.NewRecorder()
	h.GetReportePorFolio(rec, req)
	require.Equal(t, 200, rec.Code)

	var found models.Reporte
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, reporte.IDReporte, found.IDReporte)

	req = httptest.NewRequest("GET", "/api/reportes/folio/SIRSE-00000000000000-XXXX", nil)
	req = mux.SetURLVars(req, map[string]string{"folio": "SIRSE-00000000000000-XXXX"})
	rec = httptest.NewRecorder()
	h.GetReportePorFolio(rec, req)
	assert.Equal(t, 404, rec.Code)
}

func TestGetPuntosMapa_SoloConCoordenadas(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	crearReporte(t, h, map[string]interface{}{
		"nombre":           "Con ubicación",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
		"latitud":          "19.4326",
		"longitud":         "-99.1332",
	})
	crearReporte(t, h, map[string]interface{}{
		"nombre":           "Sin ubicación",
		"apellido_paterno": "Gómez",
		"apellido_materno": "Ruiz",
		"id_categoria":     categoria.IDCategoria,
	})

	req := httptest.NewRequest("GET", "/api/reportes/mapa/puntos", nil)
	rec := httptest.NewRecorder()
	h.GetPuntosMapa(rec, req)
	require.Equal(t, 200, rec.Code)

	var puntos []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &puntos))
	require.Len(t, puntos, 1)
	assert.Equal(t, "Con ubicación", puntos[0]["nombre"])
}

func TestGetPuntosGeoJSON(t *testing.T) {
	h := newTestHandler(t)
	categoria := seedReferencia(t, h.DB)

	crearReporte(t, h, map[string]interface{}{
		"nombre":           "Con ubicación",
		"apellido_paterno": "Pérez",
		"apellido_materno": "López",
		"id_categoria":     categoria.IDCategoria,
		"latitud":          "19.4326",
		"longitud":         "-99.1332",
	})
	crearReporte(t, h, map[string]interface{}{
		"nombre":           "Coordenadas rotas",
		"apellido_paterno": "Gómez",
		"apellido_materno": "Ruiz",
		"id_categoria":     categoria.IDCategoria,
		"latitud":          "no-número",
		"longitud":         "-99.1",
	})

	req := httptest.NewRequest("GET", "/api/reportes/mapa/geojson", nil)
	rec := httptest.NewRecorder()
	h.GetPuntosGeoJSON(rec, req)
	require.Equal(t, 200, rec.Code)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1, "las coordenadas que no parsean se omiten")
	assert.InDelta(t, -99.1332, fc.Features[0].Geometry.Coordinates[0], 0.0001)
	assert.InDelta(t, 19.4326, fc.Features[0].Geometry.Coordinates[1], 0.0001)
}
