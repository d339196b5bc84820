// Package reasoning turns queries and retrieved context into structured
// compliance verdicts via a generative text service. Every operation is
// best-effort: service and parse failures degrade to documented fallback
// values instead of propagating.
package reasoning

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/clauselab/regdex/internal/domain/outcome"
	"github.com/clauselab/regdex/internal/domain/verdict"
	"github.com/clauselab/regdex/internal/metrics"
	"github.com/clauselab/regdex/internal/transport/openai"
)

// DefaultMaxInFlight bounds concurrent requests to the generative service.
const DefaultMaxInFlight = 4

// Service is the reasoning client.
type Service struct {
	completer Completer
	sem       chan struct{}
	logger    *zap.Logger
}

// New creates a reasoning service. maxInFlight bounds concurrent completion
// requests across all callers; values <= 0 use DefaultMaxInFlight.
func New(completer Completer, maxInFlight int, logger *zap.Logger) *Service {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Service{
		completer: completer,
		sem:       make(chan struct{}, maxInFlight),
		logger:    logger,
	}
}

// ExpandQuery asks the generative service for 3-5 related terms and appends
// them to the original query, whitespace-separated. On any failure the
// outcome degrades to the original query unchanged.
func (s *Service) ExpandQuery(ctx context.Context, query string) outcome.Outcome[string] {
	raw, err := s.complete(ctx, openai.CompletionRequest{
		Prompt:    expandPrompt(query),
		Operation: "expand",
	})
	if err != nil {
		s.logger.Warn("Query expansion failed", zap.Error(err))
		metrics.CompletionFallbacksTotal.WithLabelValues("expand").Inc()
		return outcome.Degraded(query, "expand: "+err.Error())
	}

	terms := splitTerms(raw)
	if len(terms) == 0 {
		metrics.CompletionFallbacksTotal.WithLabelValues("expand").Inc()
		return outcome.Degraded(query, "expand: empty response")
	}

	return outcome.Ok(query + " " + strings.Join(terms, " "))
}

// Analyze sends one structured prompt (query, retrieved context, explicit
// output schema) and parses the JSON reply into a Verdict. Service or parse
// failure degrades to verdict.Fallback() so the surrounding review flow
// never aborts.
func (s *Service) Analyze(ctx context.Context, query, contextText string) outcome.Outcome[verdict.Verdict] {
	raw, err := s.complete(ctx, openai.CompletionRequest{
		Prompt:    analyzePrompt(query, contextText),
		Operation: "analyze",
		JSON:      true,
	})
	if err != nil {
		s.logger.Warn("Compliance analysis failed", zap.Error(err))
		metrics.CompletionFallbacksTotal.WithLabelValues("analyze").Inc()
		return outcome.Degraded(verdict.Fallback(), "analyze: "+err.Error())
	}

	v, err := parseVerdict(raw)
	if err != nil {
		s.logger.Warn("Compliance analysis returned unparseable output", zap.Error(err))
		metrics.CompletionFallbacksTotal.WithLabelValues("analyze").Inc()
		return outcome.Degraded(verdict.Fallback(), "parse: "+err.Error())
	}

	return outcome.Ok(v)
}

// SuggestCorrection rewrites text given a short list of issue descriptions.
// On failure the outcome degrades to the input text unchanged; callers detect
// the no-op by comparing output against input or checking the outcome tag.
func (s *Service) SuggestCorrection(ctx context.Context, text string, issues []string) outcome.Outcome[string] {
	raw, err := s.complete(ctx, openai.CompletionRequest{
		Prompt:    correctionPrompt(text, issues),
		Operation: "correct",
	})
	if err != nil {
		s.logger.Warn("Correction suggestion failed", zap.Error(err))
		metrics.CompletionFallbacksTotal.WithLabelValues("correct").Inc()
		return outcome.Degraded(text, "correct: "+err.Error())
	}

	corrected := strings.TrimSpace(raw)
	if corrected == "" {
		metrics.CompletionFallbacksTotal.WithLabelValues("correct").Inc()
		return outcome.Degraded(text, "correct: empty response")
	}

	return outcome.Ok(corrected)
}

// complete acquires an in-flight slot and runs one completion request.
func (s *Service) complete(ctx context.Context, req openai.CompletionRequest) (string, error) {
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return s.completer.Complete(ctx, req)
}

// wireVerdict mirrors the JSON schema the analyze prompt demands.
type wireVerdict struct {
	ReasoningSteps        []string `json:"reasoning_steps"`
	ApplicableRegulations []string `json:"applicable_regulations"`
	ComplianceStatus      string   `json:"compliance_status"`
	Issues                []string `json:"issues"`
	Recommendations       []string `json:"recommendations"`
	Confidence            float64  `json:"confidence"`
}

func parseVerdict(raw string) (verdict.Verdict, error) {
	var w wireVerdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &w); err != nil {
		return verdict.Verdict{}, err
	}

	return verdict.New(
		w.ReasoningSteps,
		w.ApplicableRegulations,
		verdict.Status(w.ComplianceStatus),
		w.Issues,
		w.Recommendations,
		w.Confidence,
	), nil
}

// splitTerms breaks an expansion reply on commas and newlines and drops
// empties.
func splitTerms(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
