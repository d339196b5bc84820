// Package search runs KNN queries against collection indexes.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/clauselab/regdex/internal/db"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/repository/collection"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements dense retrieval over the vector store.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// QueryByVector returns up to k nearest neighbors of the query vector,
// ordered by ascending cosine distance. Each document's score is the
// similarity-style conversion score = 1 - distance.
func (r *Repo) QueryByVector(
	ctx context.Context, collectionName string, vector []float32, k int,
) ([]domdoc.Document, error) {
	q := &db.KNNQuery{
		IndexName:    collection.IndexName(collectionName),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"__content", "__vector_score", "source", "category", "type", "year"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collectionName, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	prefix := collection.KeyPrefix(collectionName)
	docs := make([]domdoc.Document, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		docs = append(docs, entryToDocument(id, entry))
	}
	return docs, nil
}

func entryToDocument(id string, entry db.SearchEntry) domdoc.Document {
	var content string
	metadata := make(map[string]string)

	for k, v := range entry.Fields {
		if k == "__content" {
			content = v
			continue
		}
		metadata[k] = v
	}

	return domdoc.Reconstruct(id, content, metadata, nil, 1.0-entry.Distance)
}
