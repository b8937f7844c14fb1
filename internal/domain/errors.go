package domain

import "errors"

var (
	// ErrPropertyNotFound signals a missing property record.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrVectorDimMismatch signals a partial embedding vector.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrQueryExecution signals a failed store query. Triggers the fallback
	// search path and is never surfaced to the caller.
	ErrQueryExecution = errors.New("query execution failed")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
)
