// internal/models/usuario.go
package models

import "time"

// Usuario is a registered end user.
type Usuario struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Telefono      string    `json:"telefono,omitempty"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	ActualizadoEn time.Time `json:"actualizadoEn"`
}

type UsuarioCreate struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono,omitempty"`
}

type UsuarioUpdate struct {
	Nombre   *string `json:"nombre,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
}
