// internal/store/store.go
package store

import "errors"

var (
	ErrNotFound             = errors.New("RECORD_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)
