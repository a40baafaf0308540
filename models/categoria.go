package models

import "time"

// Categoria classifies reports (robo, baches, alumbrado...). Deleting one only
// flips Estado to false so historical reports keep their reference.
type Categoria struct {
	IDCategoria uint      `gorm:"column:id_categoria;primaryKey" json:"id_categoria"`
	Nombre      string    `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string   `gorm:"type:text" json:"descripcion"`
	Estado      bool      `json:"estado"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Reportes []Reporte `gorm:"foreignKey:IDCategoria;references:IDCategoria" json:"-"`
}

func (Categoria) TableName() string { return "categorias" }
