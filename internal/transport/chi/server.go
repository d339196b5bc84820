// Package chi exposes the HTTP API: hybrid search, query expansion, document
// analysis, correction suggestions, the full review flow and the compliance
// checklist, plus health and Prometheus metrics.
package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/domain/outcome"
	"github.com/clauselab/regdex/internal/domain/verdict"
	"github.com/clauselab/regdex/internal/metrics"
	complianceuc "github.com/clauselab/regdex/internal/usecase/compliance"
	healthuc "github.com/clauselab/regdex/internal/usecase/health"
	reviewuc "github.com/clauselab/regdex/internal/usecase/review"
)

// Retriever runs hybrid search.
type Retriever interface {
	HybridSearch(ctx context.Context, query string, k int) []domdoc.Document
}

// Reasoner runs LLM-backed operations.
type Reasoner interface {
	ExpandQuery(ctx context.Context, query string) outcome.Outcome[string]
	Analyze(ctx context.Context, query, contextText string) outcome.Outcome[verdict.Verdict]
	SuggestCorrection(ctx context.Context, text string, issues []string) outcome.Outcome[string]
}

// Reviewer runs the document validation flow.
type Reviewer interface {
	ValidateDocument(ctx context.Context, text, documentType string) reviewuc.Report
	ValidateBatch(ctx context.Context, items []reviewuc.Item) []reviewuc.Report
}

// HealthService aggregates component health checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server handles the HTTP API.
type Server struct {
	retriever Retriever
	reasoner  Reasoner
	reviewer  Reviewer
	checker   *complianceuc.Checker
	health    HealthService
	defaultK  int
	maxK      int
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	retriever Retriever,
	reasoner Reasoner,
	reviewer Reviewer,
	checker *complianceuc.Checker,
	health HealthService,
	defaultK, maxK int,
	logger *zap.Logger,
) *Server {
	return &Server{
		retriever: retriever,
		reasoner:  reasoner,
		reviewer:  reviewer,
		checker:   checker,
		health:    health,
		defaultK:  defaultK,
		maxK:      maxK,
		logger:    logger,
	}
}

// Routes mounts all handlers on a chi router.
func (s *Server) Routes(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/expand", s.Expand)
		r.Post("/analyze", s.Analyze)
		r.Post("/corrections", s.Corrections)
		r.Post("/review", s.Review)
		r.Post("/review/batch", s.ReviewBatch)
		r.Post("/compliance/check", s.ComplianceCheck)
	})

	return r
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

type searchResult struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	k := req.K
	if k <= 0 {
		k = s.defaultK
	}
	if k > s.maxK {
		k = s.maxK
	}

	docs := s.retriever.HybridSearch(r.Context(), req.Query, k)

	results := make([]searchResult, 0, len(docs))
	for _, d := range docs {
		results = append(results, searchResult{
			ID:       d.ID(),
			Content:  d.Content(),
			Score:    d.Score(),
			Metadata: d.Metadata(),
		})
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

type expandRequest struct {
	Query string `json:"query"`
}

type expandResponse struct {
	Query    string `json:"query"`
	Expanded string `json:"expanded"`
	Degraded bool   `json:"degraded"`
}

// Expand handles POST /v1/expand.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	out := s.reasoner.ExpandQuery(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, expandResponse{
		Query:    req.Query,
		Expanded: out.Value(),
		Degraded: out.IsDegraded(),
	})
}

type analyzeRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type verdictResponse struct {
	ReasoningSteps  []string `json:"reasoning_steps"`
	Regulations     []string `json:"applicable_regulations"`
	Status          string   `json:"compliance_status"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
	Degraded        bool     `json:"degraded"`
}

// Analyze handles POST /v1/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	out := s.reasoner.Analyze(r.Context(), req.Query, req.Context)
	v := out.Value()
	writeJSON(w, http.StatusOK, verdictResponse{
		ReasoningSteps:  v.ReasoningSteps(),
		Regulations:     v.Regulations(),
		Status:          string(v.Status()),
		Issues:          v.Issues(),
		Recommendations: v.Recommendations(),
		Confidence:      v.Confidence(),
		Degraded:        out.IsDegraded(),
	})
}

type correctionsRequest struct {
	Text   string   `json:"text"`
	Issues []string `json:"issues"`
}

type correctionsResponse struct {
	Suggestion string `json:"suggestion"`
	Degraded   bool   `json:"degraded"`
}

// Corrections handles POST /v1/corrections.
func (s *Server) Corrections(w http.ResponseWriter, r *http.Request) {
	var req correctionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	out := s.reasoner.SuggestCorrection(r.Context(), req.Text, req.Issues)
	writeJSON(w, http.StatusOK, correctionsResponse{
		Suggestion: out.Value(),
		Degraded:   out.IsDegraded(),
	})
}

type reviewRequest struct {
	Text         string `json:"text"`
	DocumentType string `json:"document_type"`
}

type reviewResponse struct {
	DocumentType    string   `json:"document_type"`
	Status          string   `json:"compliance_status"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Regulations     []string `json:"applicable_regulations"`
	Confidence      float64  `json:"confidence"`
	Sources         []string `json:"sources"`
	Degraded        bool     `json:"degraded"`
}

func reportToResponse(rep reviewuc.Report) reviewResponse {
	return reviewResponse{
		DocumentType:    rep.DocumentType,
		Status:          string(rep.Status),
		Issues:          rep.Issues,
		Recommendations: rep.Recommendations,
		Regulations:     rep.Regulations,
		Confidence:      rep.Confidence,
		Sources:         rep.Sources,
		Degraded:        rep.Degraded,
	}
}

// Review handles POST /v1/review.
func (s *Server) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	rep := s.reviewer.ValidateDocument(r.Context(), req.Text, req.DocumentType)
	writeJSON(w, http.StatusOK, reportToResponse(rep))
}

type reviewBatchRequest struct {
	Documents []reviewRequest `json:"documents"`
}

type reviewBatchResponse struct {
	Reports []reviewResponse `json:"reports"`
}

// ReviewBatch handles POST /v1/review/batch.
func (s *Server) ReviewBatch(w http.ResponseWriter, r *http.Request) {
	var req reviewBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents is required")
		return
	}

	items := make([]reviewuc.Item, 0, len(req.Documents))
	for _, d := range req.Documents {
		if d.Text == "" {
			writeError(w, http.StatusBadRequest, "each document needs text")
			return
		}
		items = append(items, reviewuc.Item{Text: d.Text, DocumentType: d.DocumentType})
	}

	reports := s.reviewer.ValidateBatch(r.Context(), items)
	resp := reviewBatchResponse{Reports: make([]reviewResponse, 0, len(reports))}
	for _, rep := range reports {
		resp.Reports = append(resp.Reports, reportToResponse(rep))
	}
	writeJSON(w, http.StatusOK, resp)
}

type complianceIssue struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type complianceRequest struct {
	UploadedFiles []string          `json:"uploaded_files"`
	DocumentTypes []string          `json:"document_types"`
	Issues        []complianceIssue `json:"issues"`
}

type complianceResponse struct {
	Process          string   `json:"process"`
	MissingDocuments []string `json:"missing_documents"`
	PresentDocuments []string `json:"present_documents"`
	UploadedCount    int      `json:"uploaded_count"`
	RequiredCount    int      `json:"required_count"`
	Score            int      `json:"score"`
	Status           string   `json:"status"`
	Recommendations  []string `json:"recommendations"`
}

// ComplianceCheck handles POST /v1/compliance/check.
func (s *Server) ComplianceCheck(w http.ResponseWriter, r *http.Request) {
	var req complianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.UploadedFiles) == 0 && len(req.DocumentTypes) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded_files or document_types is required")
		return
	}

	issues := make([]complianceuc.Issue, 0, len(req.Issues))
	for _, i := range req.Issues {
		issues = append(issues, complianceuc.Issue{
			Description: i.Description,
			Severity:    complianceuc.Severity(i.Severity),
		})
	}

	process := s.checker.IdentifyProcess(req.DocumentTypes)
	checklist := s.checker.CheckDocuments(req.UploadedFiles, process, req.DocumentTypes)
	score, status := s.checker.Score(issues, checklist)
	recs := s.checker.Recommendations(issues, checklist)

	writeJSON(w, http.StatusOK, complianceResponse{
		Process:          string(process),
		MissingDocuments: checklist.MissingDocuments,
		PresentDocuments: checklist.PresentDocuments,
		UploadedCount:    checklist.UploadedCount,
		RequiredCount:    checklist.RequiredCount,
		Score:            score,
		Status:           status,
		Recommendations:  recs,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	rep := s.health.Check(r.Context())

	checks := make(map[string]string, len(rep.Checks))
	for name, res := range rep.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if rep.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(rep.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
