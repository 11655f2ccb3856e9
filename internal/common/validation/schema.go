// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema validates inbound chat API payloads.
const ChatRequestSchema = `{
	"type": "object",
	"properties": {
		"mensaje": {"type": "string", "minLength": 1, "maxLength": 4096},
		"usuario_id": {"type": "integer", "minimum": 1},
		"chat_id": {"type": "string", "minLength": 1}
	},
	"required": ["mensaje", "usuario_id", "chat_id"],
	"additionalProperties": false
}`

// WebhookUpdateSchema validates Telegram webhook updates. Telegram adds
// fields over time, so additional properties are allowed.
const WebhookUpdateSchema = `{
	"type": "object",
	"properties": {
		"update_id": {"type": "integer"},
		"message": {
			"type": "object",
			"properties": {
				"message_id": {"type": "integer"},
				"text": {"type": "string"}
			},
			"required": ["message_id"]
		}
	},
	"required": ["update_id"],
	"additionalProperties": true
}`

// ValidateJSON validates a raw JSON document against a schema string.
func ValidateJSON(schema string, document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ValidateMap validates decoded JSON data against a schema map.
func ValidateMap(schemaMap, data map[string]interface{}) error {
	if len(schemaMap) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}

	return nil
}
