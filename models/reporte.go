package models

import "time"

// Reporte is a citizen-submitted incident report. The folio is generated
// server-side at creation and is the identifier citizens use to follow up.
type Reporte struct {
	IDReporte          uint    `gorm:"column:id_reporte;primaryKey" json:"id_reporte"`
	Nombre             string  `gorm:"size:100;not null" json:"nombre"`
	ApellidoPaterno    string  `gorm:"size:100;not null" json:"apellido_paterno"`
	ApellidoMaterno    string  `gorm:"size:100;not null" json:"apellido_materno"`
	Folio              string  `gorm:"size:50;uniqueIndex;not null" json:"folio"`
	TelefonoReportante *string `gorm:"size:20" json:"telefono_reportante"`
	Descripcion        *string `gorm:"size:500" json:"descripcion"`
	Latitud            *string `gorm:"size:50" json:"latitud"`
	Longitud           *string `gorm:"size:50" json:"longitud"`
	Direccion          *string `gorm:"size:255" json:"direccion"`

	IDCategoria uint `gorm:"not null" json:"id_categoria"`
	IDEstado    uint `gorm:"not null" json:"id_estado"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Categoria  Categoria    `gorm:"foreignKey:IDCategoria;references:IDCategoria" json:"categoria"`
	Estado     Estado       `gorm:"foreignKey:IDEstado;references:IDEstado" json:"estado"`
	Multimedia []Multimedia `gorm:"foreignKey:IDReporte;references:IDReporte;constraint:OnDelete:CASCADE" json:"multimedia"`
}

func (Reporte) TableName() string { return "reportes" }
