// internal/store/chat.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

type ChatStore struct {
	db *sql.DB
}

func NewChatStore(db *sql.DB) *ChatStore {
	return &ChatStore{db: db}
}

func scanChat(row interface{ Scan(...interface{}) error }) (*models.Chat, error) {
	var c models.Chat
	var ultimoMensaje sql.NullString
	err := row.Scan(
		&c.ID, &c.UsuarioID, &c.ChatID, &ultimoMensaje, &c.TotalMensajes,
		&c.FechaCreacion, &c.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}
	c.UltimoMensaje = ultimoMensaje.String
	return &c, nil
}

func (s *ChatStore) List(ctx context.Context) ([]*models.Chat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, usuario_id, chat_id, ultimo_mensaje, total_mensajes,
		       fecha_creacion, actualizado_en
		FROM chat ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var chats []*models.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *ChatStore) Get(ctx context.Context, id int64) (*models.Chat, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, usuario_id, chat_id, ultimo_mensaje, total_mensajes,
		       fecha_creacion, actualizado_en
		FROM chat WHERE id = $1`, id)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return c, nil
}

func (s *ChatStore) ListByUsuario(ctx context.Context, usuarioID int64) ([]*models.Chat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, usuario_id, chat_id, ultimo_mensaje, total_mensajes,
		       fecha_creacion, actualizado_en
		FROM chat WHERE usuario_id = $1 ORDER BY id`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	defer rows.Close()

	var chats []*models.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *ChatStore) GetByUserAndChat(ctx context.Context, usuarioID int64, chatID string) (*models.Chat, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, usuario_id, chat_id, ultimo_mensaje, total_mensajes,
		       fecha_creacion, actualizado_en
		FROM chat WHERE usuario_id = $1 AND chat_id = $2`, usuarioID, chatID)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return c, nil
}

// RecordMessage persists one conversation turn: inserts the chat row on the
// first message for a (usuario, chat) pair, otherwise updates the last
// message and bumps the message counter.
func (s *ChatStore) RecordMessage(ctx context.Context, usuarioID int64, chatID, mensaje string) (*models.Chat, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO chat (usuario_id, chat_id, ultimo_mensaje, total_mensajes)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (usuario_id, chat_id) DO UPDATE SET
			ultimo_mensaje = EXCLUDED.ultimo_mensaje,
			total_mensajes = chat.total_mensajes + 1,
			actualizado_en = NOW()
		RETURNING id, usuario_id, chat_id, ultimo_mensaje, total_mensajes,
		          fecha_creacion, actualizado_en`,
		usuarioID, chatID, nullString(mensaje))
	c, err := scanChat(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	return c, nil
}

func (s *ChatStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
