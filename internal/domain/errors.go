package domain

import "errors"

var (
	// ErrDocumentExists signals an insert with an id already present in the collection.
	ErrDocumentExists = errors.New("document already exists")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a generative text provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
