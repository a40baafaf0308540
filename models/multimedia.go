package models

import "time"

// Multimedia is one uploaded file attached to a report. URLArchivo stores the
// local path under the uploads directory verbatim.
type Multimedia struct {
	IDMultimedia uint      `gorm:"column:id_multimedia;primaryKey" json:"id_multimedia"`
	IDReporte    uint      `gorm:"not null" json:"id_reporte"`
	URLArchivo   string    `gorm:"column:url_archivo;size:255;not null" json:"url_archivo"`
	TipoArchivo  string    `gorm:"column:tipo_archivo;size:50;not null" json:"tipo_archivo"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Multimedia) TableName() string { return "multimedia" }
