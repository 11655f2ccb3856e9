// internal/models/categoria.go
package models

import "time"

// Categoria is a catalog category row.
type Categoria struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion,omitempty"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	ActualizadoEn time.Time `json:"actualizadoEn"`
}

type CategoriaCreate struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

type CategoriaUpdate struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
}
