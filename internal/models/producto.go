// internal/models/producto.go
package models

import "time"

// Producto is a catalog product row.
type Producto struct {
	ID            int64     `json:"id"`
	CategoriaID   int64     `json:"categoriaId"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion,omitempty"`
	Precio        float64   `json:"precio"`
	Disponible    bool      `json:"disponible"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	ActualizadoEn time.Time `json:"actualizadoEn"`

	// CategoriaNombre is populated by joined reads, not stored on the row.
	CategoriaNombre string `json:"categoriaNombre,omitempty"`
}

// ProductoCreate is the payload for creating a product.
type ProductoCreate struct {
	CategoriaID int64   `json:"categoriaId"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Disponible  bool    `json:"disponible"`
}

// ProductoUpdate carries optional fields for partial updates.
type ProductoUpdate struct {
	CategoriaID *int64   `json:"categoriaId,omitempty"`
	Nombre      *string  `json:"nombre,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Disponible  *bool    `json:"disponible,omitempty"`
}
