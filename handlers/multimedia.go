package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

// tiposPermitidos maps an allowed extension to its coarse classification.
var tiposPermitidos = map[string]string{
	"jpg":  "imagen",
	"jpeg": "imagen",
	"png":  "imagen",
	"gif":  "imagen",
	"mp4":  "video",
	"mov":  "video",
	"avi":  "video",
	"pdf":  "documento",
}

// UploadMultimedia attaches a file to a report: checks the report exists,
// validates the extension against the allow-list, writes the file under the
// uploads directory with a randomized name and records the metadata row.
func (h *Handler) UploadMultimedia(w http.ResponseWriter, r *http.Request) {
	reporteID := mux.Vars(r)["reporte_id"]

	var reporte models.Reporte
	if err := h.DB.First(&reporte, "id_reporte = ?", reporteID).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Reporte no encontrado")
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "formulario multipart inválido")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "falta el campo file")
		return
	}
	defer file.Close()

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	tipoArchivo, ok := tiposPermitidos[extension]
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Tipo de archivo no permitido")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo crear el directorio de uploads")
		return
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), extension)
	path := filepath.Join(h.UploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo guardar el archivo")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeDetail(w, http.StatusInternalServerError, "no se pudo guardar el archivo")
		return
	}

	multimedia := models.Multimedia{
		IDReporte:   reporte.IDReporte,
		URLArchivo:  path,
		TipoArchivo: tipoArchivo,
	}
	if err := h.DB.Create(&multimedia).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, multimedia)
}

func (h *Handler) GetMultimediaReporte(w http.ResponseWriter, r *http.Request) {
	reporteID := mux.Vars(r)["reporte_id"]

	var multimedia []models.Multimedia
	if err := h.DB.Where("id_reporte = ?", reporteID).Find(&multimedia).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, multimedia)
}

// DeleteMultimedia removes the file best-effort (a filesystem failure is
// logged, not surfaced) and then deletes the row.
func (h *Handler) DeleteMultimedia(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var multimedia models.Multimedia
	if err := h.DB.First(&multimedia, "id_multimedia = ?", id).Error; err != nil {
		writeDetail(w, http.StatusNotFound, "Archivo no encontrado")
		return
	}

	if err := os.Remove(multimedia.URLArchivo); err != nil && !os.IsNotExist(err) {
		log.Printf("error al eliminar archivo %s: %v", multimedia.URLArchivo, err)
	}

	if err := h.DB.Delete(&multimedia).Error; err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, "Archivo eliminado correctamente")
}
