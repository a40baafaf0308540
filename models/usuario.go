package models

import "time"

// Usuario is an operator account for the admin panel.
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"size:100;not null" json:"nombre"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Contrasena   string    `gorm:"column:contrasena;size:255;not null" json:"-"`
	Telefono     *string   `gorm:"size:20" json:"telefono"`
	Departamento *string   `gorm:"size:100" json:"departamento"`
	Rol          string    `gorm:"size:50;default:Operador" json:"rol"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
