package ingest

import (
	"context"

	"github.com/clauselab/regdex/internal/domain"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
)

// CollectionRepo creates and opens vector indexes.
type CollectionRepo interface {
	Ensure(ctx context.Context, name string) error
}

// DocumentWriter persists documents into a collection.
type DocumentWriter interface {
	Add(ctx context.Context, collectionName string, doc *domdoc.Document) error
}

// Embedder turns record content into vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
