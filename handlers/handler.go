package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"gorm.io/gorm"
)

// Handler bundles the resources every endpoint needs. Tests construct one over
// an in-memory database instead of the real Postgres connection.
type Handler struct {
	DB        *gorm.DB
	UploadDir string
}

func New(db *gorm.DB) *Handler {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &Handler{DB: db, UploadDir: dir}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail mirrors the error body shape the admin panel and the mobile app
// already parse: {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// queryInt reads an integer query parameter, falling back when absent or
// unparsable. Zero values fall through to the fallback on purpose: filters and
// offsets treat 0 the same as "not provided".
func queryInt(r *http.Request, name string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && v != 0 {
		return v
	}
	return fallback
}
