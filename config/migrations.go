package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

// Migrations brings the schema up to date. Each migration runs once and is
// recorded by gormigrate in its own table.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_sirse_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.Usuario{},
					&models.Categoria{},
					&models.Estado{},
					&models.Reporte{},
					&models.Multimedia{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"multimedia", "reportes", "estados", "categorias", "usuarios",
				)
			},
		},
	})
	return m.Migrate()
}
