package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Usuario{},
		&models.Categoria{},
		&models.Estado{},
		&models.Reporte{},
		&models.Multimedia{},
	))
	return db
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return &Handler{DB: setupTestDB(t), UploadDir: t.TempDir()}
}

func ptr(s string) *string { return &s }

// seedReferencia creates one category and the three conventional states so the
// FK checks and the id_estado=1 default hold.
func seedReferencia(t *testing.T, db *gorm.DB) models.Categoria {
	t.Helper()
	estados := []models.Estado{
		{Nombre: "Pendiente", Activo: true},
		{Nombre: "En proceso", Activo: true},
		{Nombre: "Resuelto", Activo: true},
	}
	require.NoError(t, db.Create(&estados).Error)

	categoria := models.Categoria{Nombre: "Baches", Estado: true}
	require.NoError(t, db.Create(&categoria).Error)
	return categoria
}
