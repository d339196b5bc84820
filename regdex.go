// Package regdex assembles the regulatory document intelligence pipeline:
// a Redis-backed hybrid retrieval layer, a cross-encoder re-ranker and an
// LLM reasoning layer, exposed through one facade.
package regdex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clauselab/regdex/internal/config"
	"github.com/clauselab/regdex/internal/db"
	dbredis "github.com/clauselab/regdex/internal/db/redis"
	"github.com/clauselab/regdex/internal/domain"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/domain/outcome"
	"github.com/clauselab/regdex/internal/domain/verdict"
	"github.com/clauselab/regdex/internal/metrics"
	collectionrepo "github.com/clauselab/regdex/internal/repository/collection"
	documentrepo "github.com/clauselab/regdex/internal/repository/document"
	"github.com/clauselab/regdex/internal/repository/embcache"
	searchrepo "github.com/clauselab/regdex/internal/repository/search"
	"github.com/clauselab/regdex/internal/transport/openai"
	"github.com/clauselab/regdex/internal/transport/rerank"
	complianceuc "github.com/clauselab/regdex/internal/usecase/compliance"
	healthuc "github.com/clauselab/regdex/internal/usecase/health"
	ingestuc "github.com/clauselab/regdex/internal/usecase/ingest"
	reasoninguc "github.com/clauselab/regdex/internal/usecase/reasoning"
	retrievaluc "github.com/clauselab/regdex/internal/usecase/retrieval"
	reviewuc "github.com/clauselab/regdex/internal/usecase/review"
)

// Pipeline is the assembled service graph. Build one with New, use the
// operation methods or reach into the services for HTTP wiring, and Close it
// when done.
type Pipeline struct {
	store      db.Store
	Retrieval  *retrievaluc.Service
	Reasoning  *reasoninguc.Service
	Review     *reviewuc.Service
	Ingest     *ingestuc.Service
	Compliance *complianceuc.Checker
	Health     *healthuc.Service
}

// New builds the pipeline from configuration. It connects to Redis, waits
// for it to accept commands, registers the Prometheus collectors and checks
// that the embedding and completion providers respond; it does not load the
// seed corpus (call Seed for that).
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	metrics.Register()

	var embedder domain.Embedder = openai.NewEmbedder(&openai.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
	})
	if cfg.Embedding.Cache {
		embedder = embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)
	}

	collRepo := collectionrepo.New(store, cfg.Embedding.Dimensions, logger).
		WithHNSW(collectionrepo.HNSWConfig{
			M:           cfg.Retrieval.HNSWM,
			EFConstruct: cfg.Retrieval.HNSWEFConstruct,
		})
	docRepo := documentrepo.New(store)
	searchRepo := searchrepo.New(store)

	var reranker *retrievaluc.Reranker
	if cfg.Rerank.BaseURL != "" {
		scorer := rerank.NewClient(&rerank.Config{
			APIKey:     cfg.Rerank.APIKey,
			BaseURL:    cfg.Rerank.BaseURL,
			Model:      cfg.Rerank.Model,
			TimeoutSec: cfg.Rerank.TimeoutSec,
		})
		reranker = retrievaluc.NewReranker(scorer, logger)
	}

	retrievalSvc := retrievaluc.New(
		searchRepo, docRepo, embedder, reranker, cfg.Retrieval.Collections, logger,
	)

	completer := openai.NewCompleter(&openai.CompleterConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TimeoutSec:  cfg.LLM.TimeoutSec,
	})
	if err := checkProviders(ctx, embedder, completer); err != nil {
		store.Close()
		return nil, err
	}

	reasoningSvc := reasoninguc.New(completer, cfg.LLM.MaxInFlight, logger)

	reviewSvc := reviewuc.New(retrievalSvc, reasoningSvc, cfg.LLM.MaxInFlight, logger)
	ingestSvc := ingestuc.New(collRepo, docRepo, embedder, logger)

	healthSvc := healthuc.New(store)
	if hc, ok := embedder.(healthuc.Checker); ok {
		healthSvc.Register("embedding", hc)
	}
	healthSvc.Register("llm", completer)

	return &Pipeline{
		store:      store,
		Retrieval:  retrievalSvc,
		Reasoning:  reasoningSvc,
		Review:     reviewSvc,
		Ingest:     ingestSvc,
		Compliance: complianceuc.NewChecker(),
		Health:     healthSvc,
	}, nil
}

// checkProviders verifies the embedding and completion providers respond
// before the pipeline is handed out. An unreachable provider at boot is
// fatal; only failures after startup degrade per operation.
func checkProviders(ctx context.Context, embedder domain.Embedder, completer domain.HealthChecker) error {
	if hc, ok := embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding provider unavailable: %w", err)
		}
	}
	if err := completer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("completion provider unavailable: %w", err)
	}
	return nil
}

// Seed ensures the configured collections exist and loads the built-in ADGM
// corpus. Safe to call on every start, existing records are kept.
func (p *Pipeline) Seed(ctx context.Context) (int, error) {
	return p.Ingest.LoadSeed(ctx)
}

// HybridSearch returns the top-k re-ranked documents for the query.
func (p *Pipeline) HybridSearch(ctx context.Context, query string, k int) []domdoc.Document {
	return p.Retrieval.HybridSearch(ctx, query, k)
}

// ExpandQuery rewrites a query with related regulatory terminology. On
// failure the outcome degrades to the original query.
func (p *Pipeline) ExpandQuery(ctx context.Context, query string) outcome.Outcome[string] {
	return p.Reasoning.ExpandQuery(ctx, query)
}

// Analyze runs chain-of-thought compliance analysis over the query and
// retrieved context. On failure the outcome degrades to the fallback verdict.
func (p *Pipeline) Analyze(ctx context.Context, query, contextText string) outcome.Outcome[verdict.Verdict] {
	return p.Reasoning.Analyze(ctx, query, contextText)
}

// SuggestCorrection proposes replacement text for a non-compliant clause. On
// failure the outcome degrades to the original text.
func (p *Pipeline) SuggestCorrection(ctx context.Context, text string, issues []string) outcome.Outcome[string] {
	return p.Reasoning.SuggestCorrection(ctx, text, issues)
}

// ValidateDocument runs the full review flow for one document.
func (p *Pipeline) ValidateDocument(ctx context.Context, text, documentType string) reviewuc.Report {
	return p.Review.ValidateDocument(ctx, text, documentType)
}

// Close releases the database connection.
func (p *Pipeline) Close() {
	p.store.Close()
}
