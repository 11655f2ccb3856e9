package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "usuario_id", "chat_id", "ultimo_mensaje", "total_mensajes",
		"fecha_creacion", "actualizado_en",
	})
}

func TestChatStore_RecordMessage_FirstMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO chat (.+) ON CONFLICT \(usuario_id, chat_id\)`).
		WithArgs(int64(42), "7001", sqlmock.AnyArg()).
		WillReturnRows(chatRows().
			AddRow(1, 42, "7001", "Hola", 1, now, now))

	store := NewChatStore(db)
	chat, err := store.RecordMessage(context.Background(), 42, "7001", "Hola")
	require.NoError(t, err)

	assert.Equal(t, int64(42), chat.UsuarioID)
	assert.Equal(t, "7001", chat.ChatID)
	assert.Equal(t, "Hola", chat.UltimoMensaje)
	assert.Equal(t, 1, chat.TotalMensajes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatStore_RecordMessage_IncrementsCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO chat (.+) ON CONFLICT \(usuario_id, chat_id\)`).
		WithArgs(int64(42), "7001", sqlmock.AnyArg()).
		WillReturnRows(chatRows().
			AddRow(1, 42, "7001", "¿Cuánto cuesta un dobok?", 5, now, now))

	store := NewChatStore(db)
	chat, err := store.RecordMessage(context.Background(), 42, "7001", "¿Cuánto cuesta un dobok?")
	require.NoError(t, err)

	assert.Equal(t, 5, chat.TotalMensajes)
	assert.Equal(t, "¿Cuánto cuesta un dobok?", chat.UltimoMensaje)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatStore_GetByUserAndChat_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE usuario_id = \$1 AND chat_id = \$2`).
		WithArgs(int64(1), "nope").
		WillReturnRows(chatRows())

	store := NewChatStore(db)
	_, err = store.GetByUserAndChat(context.Background(), 1, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
