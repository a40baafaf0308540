package models

import "time"

// Estado is the workflow state of a report. Rows 1/2/3 are seeded as
// Pendiente / En proceso / Resuelto and the statistics queries rely on that.
type Estado struct {
	IDEstado    uint      `gorm:"column:id_estado;primaryKey" json:"id_estado"`
	Nombre      string    `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string   `gorm:"type:text" json:"descripcion"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Reportes []Reporte `gorm:"foreignKey:IDEstado;references:IDEstado" json:"-"`
}

func (Estado) TableName() string { return "estados" }
