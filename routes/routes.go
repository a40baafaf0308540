package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/handlers"
	"github.com/PatricioVargasR/Sistema-SIRSE/middleware"
)

// RegisterRoutes wires every endpoint. Citizen-facing report and multimedia
// routes are public; the admin resources sit behind the JWT middleware.
func RegisterRoutes(db *gorm.DB) http.Handler {
	h := handlers.New(db)
	r := mux.NewRouter()

	r.HandleFunc("/", handleRoot).Methods("GET")
	r.HandleFunc("/health", handleHealth).Methods("GET")

	// =====================================================
	// Public routes (no authentication)
	// =====================================================
	r.HandleFunc("/api/auth/registro", h.Registro).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	r.HandleFunc("/api/reportes", h.CreateReporte).Methods("POST")
	r.HandleFunc("/api/reportes", h.GetReportes).Methods("GET")
	r.HandleFunc("/api/reportes/folio/{folio}", h.GetReportePorFolio).Methods("GET")
	r.HandleFunc("/api/reportes/mapa/puntos", h.GetPuntosMapa).Methods("GET")
	r.HandleFunc("/api/reportes/mapa/geojson", h.GetPuntosGeoJSON).Methods("GET")
	r.HandleFunc("/api/reportes/{id:[0-9]+}", h.GetReporte).Methods("GET")
	r.HandleFunc("/api/reportes/{id:[0-9]+}", h.UpdateReporte).Methods("PUT")
	r.HandleFunc("/api/reportes/{id:[0-9]+}", h.DeleteReporte).Methods("DELETE")
	r.HandleFunc("/api/reportes/{id:[0-9]+}/pdf", h.GetReportePDF).Methods("GET")

	r.HandleFunc("/multimedia/{reporte_id:[0-9]+}/upload", h.UploadMultimedia).Methods("POST")
	r.HandleFunc("/multimedia/reporte/{reporte_id:[0-9]+}", h.GetMultimediaReporte).Methods("GET")
	r.HandleFunc("/multimedia/{id:[0-9]+}", h.DeleteMultimedia).Methods("DELETE")

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))),
	)

	// =====================================================
	// Protected routes (require JWT authentication)
	// =====================================================
	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.Use(middleware.JWTMiddleware)
	auth.HandleFunc("/me", h.Me).Methods("GET")

	usuarios := r.PathPrefix("/api/usuarios").Subrouter()
	usuarios.Use(middleware.JWTMiddleware)
	usuarios.HandleFunc("", h.GetUsuarios).Methods("GET")
	usuarios.HandleFunc("", h.CreateUsuario).Methods("POST")
	usuarios.HandleFunc("/me/cambiar-contrasena", h.CambiarContrasena).Methods("PUT")
	usuarios.HandleFunc("/{id:[0-9]+}", h.GetUsuario).Methods("GET")
	usuarios.HandleFunc("/{id:[0-9]+}", h.UpdateUsuario).Methods("PUT")
	usuarios.HandleFunc("/{id:[0-9]+}", h.DeleteUsuario).Methods("DELETE")

	categorias := r.PathPrefix("/api/categorias").Subrouter()
	categorias.Use(middleware.JWTMiddleware)
	categorias.HandleFunc("", h.GetCategorias).Methods("GET")
	categorias.HandleFunc("", h.CreateCategoria).Methods("POST")
	categorias.HandleFunc("/{id:[0-9]+}", h.GetCategoria).Methods("GET")
	categorias.HandleFunc("/{id:[0-9]+}", h.UpdateCategoria).Methods("PUT")
	categorias.HandleFunc("/{id:[0-9]+}", h.DeleteCategoria).Methods("DELETE")

	estados := r.PathPrefix("/api/estados").Subrouter()
	estados.Use(middleware.JWTMiddleware)
	estados.HandleFunc("", h.GetEstados).Methods("GET")
	estados.HandleFunc("", h.CreateEstado).Methods("POST")
	estados.HandleFunc("/{id:[0-9]+}", h.GetEstado).Methods("GET")
	estados.HandleFunc("/{id:[0-9]+}", h.UpdateEstado).Methods("PUT")
	estados.HandleFunc("/{id:[0-9]+}", h.DeleteEstado).Methods("DELETE")

	estadisticas := r.PathPrefix("/api/estadisticas").Subrouter()
	estadisticas.Use(middleware.JWTMiddleware)
	estadisticas.HandleFunc("/generales", h.GetEstadisticasGenerales).Methods("GET")
	estadisticas.HandleFunc("/por-categoria", h.GetReportesPorCategoria).Methods("GET")
	estadisticas.HandleFunc("/por-estado", h.GetReportesPorEstado).Methods("GET")
	estadisticas.HandleFunc("/por-mes", h.GetReportesPorMes).Methods("GET")
	estadisticas.HandleFunc("/recientes", h.GetReportesRecientes).Methods("GET")
	estadisticas.HandleFunc("/zonas-calientes", h.GetZonasCalientes).Methods("GET")

	export := r.PathPrefix("/api/reportes/export").Subrouter()
	export.Use(middleware.JWTMiddleware)
	export.HandleFunc("/excel", h.ExportReportesExcel).Methods("GET")

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Bienvenido a SIRSE API",
		"version": "1.0.0",
		"sistema": "Sistema Integral de Reportes de Seguridad y Emergencias",
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "SIRSE API"})
}
