package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"

	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/domain/outcome"
)

// Reranker rescores documents with the pairwise relevance model. The
// cross-encoder score replaces whatever retrieval score a document arrived
// with: upstream dense/lexical scores are discarded, not fused.
type Reranker struct {
	scorer Scorer
	logger *zap.Logger
}

// NewReranker creates a reranker over the given pairwise scorer.
func NewReranker(scorer Scorer, logger *zap.Logger) *Reranker {
	return &Reranker{scorer: scorer, logger: logger}
}

// Rerank overwrites every document's score with the pairwise relevance of
// (query, content) and sorts stably by descending score. An empty input is
// returned as is. When the model fails, the outcome degrades to the input
// slice completely untouched: same order, same length, same scores.
func (r *Reranker) Rerank(
	ctx context.Context, query string, docs []domdoc.Document,
) outcome.Outcome[[]domdoc.Document] {
	if len(docs) == 0 {
		return outcome.Ok(docs)
	}

	contents := make([]string, len(docs))
	for i := range docs {
		contents[i] = docs[i].Content()
	}

	scores, err := r.scorer.Rerank(ctx, query, contents)
	if err != nil {
		r.logger.Warn("Rerank failed, keeping retrieval order", zap.Error(err))
		return outcome.Degraded(docs, "rerank: "+err.Error())
	}

	ranked := make([]domdoc.Document, len(docs))
	copy(ranked, docs)
	for _, s := range scores {
		if s.Index < 0 || s.Index >= len(ranked) {
			continue
		}
		ranked[s.Index].SetScore(s.Score)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	return outcome.Ok(ranked)
}
