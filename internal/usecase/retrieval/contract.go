package retrieval

import (
	"context"

	"github.com/clauselab/regdex/internal/domain"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/transport/rerank"
)

// DenseSearcher runs nearest-neighbor queries against one collection.
type DenseSearcher interface {
	QueryByVector(ctx context.Context, collection string, vector []float32, k int) ([]domdoc.Document, error)
}

// CorpusReader dumps a collection for lexical full scans.
type CorpusReader interface {
	GetAll(ctx context.Context, collection string) ([]domdoc.Document, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Scorer is the pairwise relevance model behind re-ranking: one relevance
// score per input document index, for the given query.
type Scorer interface {
	Rerank(ctx context.Context, query string, documents []string) ([]rerank.Result, error)
}
