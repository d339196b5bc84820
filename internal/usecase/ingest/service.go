// Package ingest bootstraps the knowledge base: it makes sure every
// collection's index exists and loads seed records into them. Loading is best
// effort, a record that cannot be embedded or stored is logged and skipped so
// one bad record never blocks startup.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clauselab/regdex/internal/domain"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/kb"
)

// Service bootstraps collections and loads records.
type Service struct {
	collections CollectionRepo
	documents   DocumentWriter
	embedder    Embedder
	logger      *zap.Logger
}

// New creates an ingest service.
func New(collections CollectionRepo, documents DocumentWriter, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		collections: collections,
		documents:   documents,
		embedder:    embedder,
		logger:      logger,
	}
}

// EnsureCollections create-or-opens the index of every named collection.
// Index creation failures are fatal, the pipeline cannot search what does not
// exist.
func (s *Service) EnsureCollections(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := s.collections.Ensure(ctx, name); err != nil {
			return fmt.Errorf("ensure collection %q: %w", name, err)
		}
		s.logger.Info("collection ready", zap.String("collection", name))
	}
	return nil
}

// LoadRecords embeds and stores records, returning how many were stored.
// Records that already exist or fail to embed are skipped with a log line.
func (s *Service) LoadRecords(ctx context.Context, records []kb.Record) (int, error) {
	loaded := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if err := s.loadRecord(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrDocumentExists) {
				s.logger.Debug("record already loaded",
					zap.String("id", rec.ID),
					zap.String("collection", rec.Collection))
				continue
			}
			s.logger.Error("failed to load record",
				zap.String("id", rec.ID),
				zap.String("collection", rec.Collection),
				zap.Error(err))
			continue
		}
		loaded++
		s.logger.Info("record loaded",
			zap.String("id", rec.ID),
			zap.String("collection", rec.Collection))
	}
	return loaded, nil
}

// LoadSeed loads the built-in corpus after ensuring its collections exist.
func (s *Service) LoadSeed(ctx context.Context) (int, error) {
	if err := s.EnsureCollections(ctx, kb.Collections()); err != nil {
		return 0, err
	}
	return s.LoadRecords(ctx, kb.Seed())
}

func (s *Service) loadRecord(ctx context.Context, rec kb.Record) error {
	doc, err := domdoc.New(rec.ID, rec.Content, rec.Metadata)
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}

	result, err := s.embedder.Embed(ctx, rec.Content)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	doc.SetVector(result.Embedding)

	if err := s.documents.Add(ctx, rec.Collection, &doc); err != nil {
		return err
	}
	return nil
}
