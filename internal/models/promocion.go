// internal/models/promocion.go
package models

import "time"

// Promocion is a promotion row, optionally tied to a single product.
type Promocion struct {
	ID            int64     `json:"id"`
	ProductoID    int64     `json:"productoId"`
	Titulo        string    `json:"titulo"`
	Descripcion   string    `json:"descripcion,omitempty"`
	Descuento     float64   `json:"descuento"`
	Activa        bool      `json:"activa"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	ActualizadoEn time.Time `json:"actualizadoEn"`

	// ProductoNombre is populated by joined reads.
	ProductoNombre string `json:"productoNombre,omitempty"`
}

type PromocionCreate struct {
	ProductoID  int64   `json:"productoId"`
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion,omitempty"`
	Descuento   float64 `json:"descuento"`
	Activa      bool    `json:"activa"`
}

type PromocionUpdate struct {
	ProductoID  *int64   `json:"productoId,omitempty"`
	Titulo      *string  `json:"titulo,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Descuento   *float64 `json:"descuento,omitempty"`
	Activa      *bool    `json:"activa,omitempty"`
}
