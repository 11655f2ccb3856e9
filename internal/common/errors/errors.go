// Package errors provides standardized error handling for the bot backend.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmbeddingFailed            ErrorCode = "EMBEDDING_FAILED"
	ErrCodeEmbeddingDimensionMismatch ErrorCode = "EMBEDDING_DIMENSION_MISMATCH"

	ErrCodeCollectionUnreachable ErrorCode = "COLLECTION_UNREACHABLE"
	ErrCodeVectorSearchFailed    ErrorCode = "VECTOR_SEARCH_FAILED"
	ErrCodeVectorUpsertFailed    ErrorCode = "VECTOR_UPSERT_FAILED"

	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMCompletionFailed ErrorCode = "LLM_COMPLETION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"

	ErrCodeSyncPartialFailure ErrorCode = "SYNC_PARTIAL_FAILURE"

	ErrCodeTelegramSendFailed ErrorCode = "TELEGRAM_SEND_FAILED"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewEmbeddingFailedError creates a retryable embedding provider error.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDimensionMismatchError creates a non-retryable configuration error. A
// vector of the wrong length can never become valid by retrying.
func NewDimensionMismatchError(want, got int) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingDimensionMismatch,
		Message:   "Embedding dimension does not match collection configuration",
		Details:   fmt.Sprintf("want: %d, got: %d", want, got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCollectionUnreachableError creates a retryable vector index error.
func NewCollectionUnreachableError(collection string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCollectionUnreachable,
		Message:   "Vector collection is unreachable",
		Details:   fmt.Sprintf("collection: %s, error: %s", collection, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVectorSearchFailedError creates a retryable similarity search error.
func NewVectorSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVectorSearchFailed,
		Message:   "Vector similarity search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVectorUpsertFailedError creates a retryable upsert error.
func NewVectorUpsertFailedError(docID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVectorUpsertFailed,
		Message:   "Vector upsert failed",
		Details:   fmt.Sprintf("docId: %s, error: %s", docID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable completion timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Language model completion timeout",
		Details:   "completion call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMCompletionFailedError creates a retryable completion error.
func NewLLMCompletionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMCompletionFailed,
		Message:   "Language model completion failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable missing record error.
func NewRecordNotFoundError(entity string, id int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("entity: %s, id: %d", entity, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSyncPartialFailureError reports rows that failed during a sync batch.
func NewSyncPartialFailureError(failed int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSyncPartialFailure,
		Message:   fmt.Sprintf("%d rows failed during catalog sync", failed),
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTelegramSendFailedError creates a retryable outbound delivery error.
func NewTelegramSendFailedError(chatID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTelegramSendFailed,
		Message:   "Telegram message delivery failed",
		Details:   fmt.Sprintf("chatId: %d, error: %s", chatID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeEmbeddingFailed,
		ErrCodeVectorSearchFailed,
		ErrCodeVectorUpsertFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeLLMCompletionFailed,
		ErrCodeTelegramSendFailed:
		return 3

	case ErrCodeCollectionUnreachable,
		ErrCodeSyncPartialFailure:
		return 2

	case ErrCodeLLMTimeout:
		return 1

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "EMBEDDING"):
		return "EMBEDDING"
	case strings.Contains(codeStr, "VECTOR") || strings.Contains(codeStr, "COLLECTION"):
		return "VECTOR_INDEX"
	case strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "RECORD"):
		return "DATABASE"
	case strings.Contains(codeStr, "SYNC"):
		return "SYNC"
	case strings.Contains(codeStr, "TELEGRAM"):
		return "DELIVERY"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
