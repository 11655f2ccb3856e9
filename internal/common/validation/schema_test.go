package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ChatRequest(t *testing.T) {
	valid := []byte(`{"mensaje": "Hola", "usuario_id": 7, "chat_id": "chat-1"}`)
	require.NoError(t, ValidateJSON(ChatRequestSchema, valid))
}

func TestValidateJSON_ChatRequest_EmptyMessage(t *testing.T) {
	invalid := []byte(`{"mensaje": "", "usuario_id": 7, "chat_id": "chat-1"}`)
	err := ValidateJSON(ChatRequestSchema, invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mensaje")
}

func TestValidateJSON_ChatRequest_UnknownField(t *testing.T) {
	invalid := []byte(`{"mensaje": "Hola", "usuario_id": 7, "chat_id": "c", "extra": true}`)
	assert.Error(t, ValidateJSON(ChatRequestSchema, invalid))
}

func TestValidateJSON_WebhookUpdate(t *testing.T) {
	valid := []byte(`{"update_id": 10, "message": {"message_id": 1, "text": "hola"}, "some_future_field": {}}`)
	require.NoError(t, ValidateJSON(WebhookUpdateSchema, valid))
}

func TestValidateJSON_WebhookUpdate_MissingUpdateID(t *testing.T) {
	invalid := []byte(`{"message": {"message_id": 1}}`)
	assert.Error(t, ValidateJSON(WebhookUpdateSchema, invalid))
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	assert.Error(t, ValidateJSON(ChatRequestSchema, []byte(`{not json`)))
}
