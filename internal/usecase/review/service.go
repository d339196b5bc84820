// Package review validates uploaded document text against the regulatory
// knowledge base: expand the retrieval query, run hybrid search, analyze the
// top context with the reasoning service, and report.
package review

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/clauselab/regdex/internal/domain/verdict"
)

const (
	// retrievalK is how many candidates hybrid search returns per validation.
	retrievalK = 10
	// contextDocs is how many of those feed the reasoning prompt.
	contextDocs = 5
	// sourceDocs is how many sources the report cites.
	sourceDocs = 3
	// maxExcerpt caps the document excerpt included in the analysis query.
	maxExcerpt = 1000
)

// Report is the outcome of validating one document.
type Report struct {
	DocumentType    string
	Status          verdict.Status
	Issues          []string
	Recommendations []string
	Regulations     []string
	Confidence      float64
	Sources         []string
	Degraded        bool // true when expansion or analysis fell back
}

// Service runs the document validation flow.
type Service struct {
	retriever Retriever
	reasoner  Reasoner
	workers   int
	logger    *zap.Logger
}

// New creates a review service. workers bounds concurrent validations in
// ValidateBatch; values <= 0 default to 1 (fully sequential).
func New(retriever Retriever, reasoner Reasoner, workers int, logger *zap.Logger) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{retriever: retriever, reasoner: reasoner, workers: workers, logger: logger}
}

// ValidateDocument validates one document text of the given type. The flow
// is a single blocking call chain; every stage degrades locally, so a report
// always comes back.
func (s *Service) ValidateDocument(ctx context.Context, text, documentType string) Report {
	baseQuery := "ADGM requirements for " + documentType

	expanded := s.reasoner.ExpandQuery(ctx, baseQuery)

	docs := s.retriever.HybridSearch(ctx, expanded.Value(), retrievalK)

	var contextParts []string
	for i, d := range docs {
		if i >= contextDocs {
			break
		}
		contextParts = append(contextParts, d.Content())
	}

	excerpt := truncateExcerpt(text)

	analysis := s.reasoner.Analyze(ctx,
		"Validate this "+documentType+": "+excerpt,
		strings.Join(contextParts, "\n\n"),
	)
	v := analysis.Value()

	var sources []string
	for i, d := range docs {
		if i >= sourceDocs {
			break
		}
		src := d.Source()
		if src == "" {
			src = "Unknown"
		}
		sources = append(sources, src)
	}

	return Report{
		DocumentType:    documentType,
		Status:          v.Status(),
		Issues:          v.Issues(),
		Recommendations: v.Recommendations(),
		Regulations:     v.Regulations(),
		Confidence:      v.Confidence(),
		Sources:         sources,
		Degraded:        expanded.IsDegraded() || analysis.IsDegraded(),
	}
}

// truncateExcerpt caps the excerpt at maxExcerpt bytes, backing off to a
// rune boundary so a multi-byte character is never split mid-sequence.
func truncateExcerpt(text string) string {
	if len(text) <= maxExcerpt {
		return text
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Item is one document in a batch validation.
type Item struct {
	Text         string
	DocumentType string
}

// ValidateBatch validates documents concurrently with a bounded worker pool.
// Items are independent; results come back index-aligned with the input.
func (s *Service) ValidateBatch(ctx context.Context, items []Item) []Report {
	reports := make([]Report, len(items))
	if len(items) == 0 {
		return reports
	}

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			reports[i] = s.ValidateDocument(ctx, items[i].Text, items[i].DocumentType)
		}(i)
	}

	wg.Wait()
	return reports
}
