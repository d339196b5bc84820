// Package retrieval implements hybrid search: dense nearest-neighbor and
// lexical term-overlap candidates across all collections, deduplicated and
// re-ranked by a cross-encoder.
package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"

	domdoc "github.com/clauselab/regdex/internal/domain/document"
)

// Service orchestrates the hybrid retrieval pipeline.
type Service struct {
	dense       DenseSearcher
	corpus      CorpusReader
	embed       Embedder
	reranker    *Reranker
	collections []string
	logger      *zap.Logger
}

// New creates a retrieval service over the given collections.
func New(
	dense DenseSearcher, corpus CorpusReader, embed Embedder,
	reranker *Reranker, collections []string, logger *zap.Logger,
) *Service {
	return &Service{
		dense:       dense,
		corpus:      corpus,
		embed:       embed,
		reranker:    reranker,
		collections: collections,
		logger:      logger,
	}
}

// HybridSearch returns the top-k documents for the query, each with a unique
// id and the cross-encoder score of the final ranking pass.
//
// Pipeline: one query embedding; dense KNN per collection (a failing
// collection contributes nothing and the search continues); lexical Jaccard
// full scan keeping the global top-k with zero scores dropped; dense results
// concatenated before lexical ones; dedup by id, first occurrence wins, so a
// document found by both stages keeps its dense-derived copy; re-rank, or
// with no reranker configured, sort by retrieval score descending; truncate
// to k.
//
// Every internal failure has a defined fallback. The only possible
// degradations are fewer results and pre-rerank ordering, never an error.
// Fewer than k unique documents yield fewer than k results; an empty corpus
// yields an empty slice.
func (s *Service) HybridSearch(ctx context.Context, query string, k int) []domdoc.Document {
	if k <= 0 {
		return nil
	}

	candidates := s.denseSearch(ctx, query, k)
	candidates = append(candidates, s.lexicalSearch(ctx, query, k)...)
	candidates = dedupeByID(candidates)

	docs := candidates
	if s.reranker != nil {
		ranked := s.reranker.Rerank(ctx, query, candidates)
		if ranked.IsDegraded() {
			s.logger.Warn("Hybrid search degraded", zap.String("reason", ranked.Reason()))
		}
		docs = ranked.Value()
	} else {
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Score() > docs[j].Score()
		})
	}
	if len(docs) > k {
		docs = docs[:k]
	}
	return docs
}

// denseSearch embeds the query once and collects nearest neighbors from
// every collection. Embedding failure skips the dense stage entirely; a
// failing collection is logged and contributes zero documents.
func (s *Service) denseSearch(ctx context.Context, query string, k int) []domdoc.Document {
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("Query embedding failed, skipping dense retrieval", zap.Error(err))
		return nil
	}

	var results []domdoc.Document
	for _, col := range s.collections {
		docs, err := s.dense.QueryByVector(ctx, col, emb.Embedding, k)
		if err != nil {
			s.logger.Warn("Dense retrieval failed for collection",
				zap.String("collection", col), zap.Error(err))
			continue
		}
		results = append(results, docs...)
	}
	return results
}

// lexicalSearch full-scans every collection, scores each document with the
// Jaccard term overlap, and keeps the top-k across all collections combined.
// Documents scoring zero are excluded.
func (s *Service) lexicalSearch(ctx context.Context, query string, k int) []domdoc.Document {
	var results []domdoc.Document
	for _, col := range s.collections {
		docs, err := s.corpus.GetAll(ctx, col)
		if err != nil {
			s.logger.Warn("Lexical scan failed for collection",
				zap.String("collection", col), zap.Error(err))
			continue
		}
		for i := range docs {
			score := LexicalScore(query, docs[i].Content())
			if score == 0 {
				continue
			}
			docs[i].SetScore(score)
			results = append(results, docs[i])
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// dedupeByID removes documents with a repeated id, keeping the first
// occurrence and preserving order.
func dedupeByID(docs []domdoc.Document) []domdoc.Document {
	seen := make(map[string]struct{}, len(docs))
	unique := docs[:0]
	for _, d := range docs {
		if _, ok := seen[d.ID()]; ok {
			continue
		}
		seen[d.ID()] = struct{}{}
		unique = append(unique, d)
	}
	return unique
}
