// Package collection manages per-collection FT vector indexes.
package collection

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clauselab/regdex/internal/db"
	"github.com/clauselab/regdex/internal/domain"
)

// store is the consumer interface for collection management (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig holds HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo creates and opens collection indexes.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
	logger    *zap.Logger
}

// New creates a collection repository.
func New(s store, vectorDim int, logger *zap.Logger) *Repo {
	return &Repo{
		store:     s,
		vectorDim: vectorDim,
		hnsw:      HNSWConfig{M: 32, EFConstruct: 400},
		logger:    logger,
	}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// Ensure creates the collection index if it does not exist yet and opens it
// otherwise. Safe to call repeatedly and across process restarts.
func (r *Repo) Ensure(ctx context.Context, name string) error {
	if !db.IsValidIdentifier(name) {
		return fmt.Errorf("invalid collection name %q", name)
	}

	def := &db.IndexDefinition{
		Name:     IndexName(name),
		Prefixes: []string{KeyPrefix(name)},
		Vector: db.VectorField{
			Name:        "__vector",
			Algo:        db.VectorHNSW,
			Dim:         r.vectorDim,
			Distance:    db.DistanceCosine,
			M:           r.hnsw.M,
			EFConstruct: r.hnsw.EFConstruct,
		},
	}

	err := r.store.CreateIndex(ctx, def)
	switch {
	case err == nil:
		r.logger.Info("Created collection index", zap.String("collection", name))
		return nil
	case errors.Is(err, db.ErrIndexExists):
		r.logger.Debug("Opened existing collection index", zap.String("collection", name))
		return nil
	default:
		return fmt.Errorf("create index %s: %w", name, err)
	}
}

// Exists reports whether the collection index is present.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := r.store.IndexExists(ctx, IndexName(name))
	if err != nil {
		return false, fmt.Errorf("index exists %s: %w", name, err)
	}
	return ok, nil
}

// IndexName returns the FT index name for a collection.
func IndexName(collection string) string {
	return domain.KeyPrefix + collection + ":idx"
}

// KeyPrefix returns the document key prefix for a collection.
func KeyPrefix(collection string) string {
	return domain.KeyPrefix + collection + ":"
}
