// internal/models/chat.go
package models

import "time"

// Chat is a persisted conversation record. One row per (usuario, external
// chat id) pair; updated in place as messages arrive.
type Chat struct {
	ID            int64     `json:"id"`
	UsuarioID     int64     `json:"usuarioId"`
	ChatID        string    `json:"chatId"`
	UltimoMensaje string    `json:"ultimoMensaje,omitempty"`
	TotalMensajes int       `json:"totalMensajes"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	ActualizadoEn time.Time `json:"actualizadoEn"`
}

type ChatCreate struct {
	UsuarioID     int64  `json:"usuarioId"`
	ChatID        string `json:"chatId"`
	UltimoMensaje string `json:"ultimoMensaje,omitempty"`
}

type ChatUpdate struct {
	UltimoMensaje *string `json:"ultimoMensaje,omitempty"`
	TotalMensajes *int    `json:"totalMensajes,omitempty"`
}
