package review

import (
	"context"

	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/domain/outcome"
	"github.com/clauselab/regdex/internal/domain/verdict"
)

// Retriever runs hybrid retrieval over the knowledge base.
type Retriever interface {
	HybridSearch(ctx context.Context, query string, k int) []domdoc.Document
}

// Reasoner is the generative analysis surface consumed by the review flow.
type Reasoner interface {
	ExpandQuery(ctx context.Context, query string) outcome.Outcome[string]
	Analyze(ctx context.Context, query, contextText string) outcome.Outcome[verdict.Verdict]
}
