package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/PatricioVargasR/Sistema-SIRSE/models"
)

func ptr(s string) *string { return &s }

// SeedReferenceData inserts the workflow states and default report categories
// on an empty database. It is a no-op when states already exist, so it is safe
// to run on every startup.
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Estado{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	estados := []models.Estado{
		{Nombre: "Pendiente", Descripcion: ptr("Reporte recibido, pendiente de revisión"), Activo: true},
		{Nombre: "En proceso", Descripcion: ptr("Reporte en proceso de atención"), Activo: true},
		{Nombre: "Resuelto", Descripcion: ptr("Reporte atendido y resuelto"), Activo: true},
		{Nombre: "Rechazado", Descripcion: ptr("Reporte no válido o duplicado"), Activo: true},
		{Nombre: "Cerrado", Descripcion: ptr("Reporte cerrado"), Activo: true},
	}
	if err := db.Create(&estados).Error; err != nil {
		return err
	}

	categorias := []models.Categoria{
		{Nombre: "Seguridad", Descripcion: ptr("Reportes relacionados con seguridad pública"), Estado: true},
		{Nombre: "Robo", Descripcion: ptr("Reportes de robos o asaltos"), Estado: true},
		{Nombre: "Accidente", Descripcion: ptr("Reportes de accidentes viales"), Estado: true},
		{Nombre: "Vandalismo", Descripcion: ptr("Actos de vandalismo o daños a propiedad"), Estado: true},
		{Nombre: "Persona sospechosa", Descripcion: ptr("Reportes de personas con actitud sospechosa"), Estado: true},
		{Nombre: "Alumbrado público", Descripcion: ptr("Problemas con iluminación en vías públicas"), Estado: true},
		{Nombre: "Baches", Descripcion: ptr("Reportes de baches en calles"), Estado: true},
		{Nombre: "Basura", Descripcion: ptr("Acumulación de basura o residuos"), Estado: true},
		{Nombre: "Fuga de agua", Descripcion: ptr("Reportes de fugas de agua"), Estado: true},
		{Nombre: "Animal callejero", Descripcion: ptr("Presencia de animales en la vía pública"), Estado: true},
		{Nombre: "Otro", Descripcion: ptr("Otros tipos de reportes"), Estado: true},
	}
	if err := db.Create(&categorias).Error; err != nil {
		return err
	}

	log.Printf("seeded %d estados and %d categorias", len(estados), len(categorias))
	return nil
}
