package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/domain/outcome"
	"github.com/clauselab/regdex/internal/domain/verdict"
	complianceuc "github.com/clauselab/regdex/internal/usecase/compliance"
	healthuc "github.com/clauselab/regdex/internal/usecase/health"
	reviewuc "github.com/clauselab/regdex/internal/usecase/review"
)

// --- Mocks ---

type mockRetriever struct {
	docs []domdoc.Document
}

func (m *mockRetriever) HybridSearch(_ context.Context, _ string, k int) []domdoc.Document {
	if k < len(m.docs) {
		return m.docs[:k]
	}
	return m.docs
}

type mockReasoner struct {
	expanded   outcome.Outcome[string]
	analyzed   outcome.Outcome[verdict.Verdict]
	correction outcome.Outcome[string]
}

func (m *mockReasoner) ExpandQuery(_ context.Context, _ string) outcome.Outcome[string] {
	return m.expanded
}

func (m *mockReasoner) Analyze(_ context.Context, _, _ string) outcome.Outcome[verdict.Verdict] {
	return m.analyzed
}

func (m *mockReasoner) SuggestCorrection(_ context.Context, _ string, _ []string) outcome.Outcome[string] {
	return m.correction
}

type mockReviewer struct {
	report reviewuc.Report
}

func (m *mockReviewer) ValidateDocument(_ context.Context, _, _ string) reviewuc.Report {
	return m.report
}

func (m *mockReviewer) ValidateBatch(_ context.Context, items []reviewuc.Item) []reviewuc.Report {
	reports := make([]reviewuc.Report, len(items))
	for i := range items {
		reports[i] = m.report
	}
	return reports
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestServer(ret Retriever, rea Reasoner, rev Reviewer, h HealthService) http.Handler {
	if ret == nil {
		ret = &mockRetriever{}
	}
	if rea == nil {
		rea = &mockReasoner{}
	}
	if rev == nil {
		rev = &mockReviewer{}
	}
	if h == nil {
		h = &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}}
	}
	srv := NewServer(ret, rea, rev, complianceuc.NewChecker(), h, 5, 50, zap.NewNop())
	return srv.Routes(nil)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestSearch(t *testing.T) {
	doc, err := domdoc.New("reg_1", "jurisdiction rules", map[string]string{"source": "Regs 2020"})
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	doc.SetScore(0.9)

	handler := newTestServer(&mockRetriever{docs: []domdoc.Document{doc}}, nil, nil, nil)
	rr := postJSON(t, handler, "/v1/search", searchRequest{Query: "jurisdiction"})

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 result, got %d", resp.Count)
	}
	if resp.Results[0].ID != "reg_1" {
		t.Errorf("unexpected id %q", resp.Results[0].ID)
	}
	if resp.Results[0].Score != 0.9 {
		t.Errorf("unexpected score %v", resp.Results[0].Score)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)
	rr := postJSON(t, handler, "/v1/search", searchRequest{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearch_KClampedToMax(t *testing.T) {
	docs := make([]domdoc.Document, 0, 60)
	for i := 0; i < 60; i++ {
		d, err := domdoc.New("doc_"+string(rune('a'+i%26))+string(rune('a'+i/26)), "content", nil)
		if err != nil {
			t.Fatalf("build document: %v", err)
		}
		docs = append(docs, d)
	}

	handler := newTestServer(&mockRetriever{docs: docs}, nil, nil, nil)
	rr := postJSON(t, handler, "/v1/search", searchRequest{Query: "q", K: 1000})

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 50 {
		t.Errorf("expected k clamped to 50, got %d results", resp.Count)
	}
}

func TestExpand_Degraded(t *testing.T) {
	rea := &mockReasoner{expanded: outcome.Degraded("original query", "llm: timeout")}
	handler := newTestServer(nil, rea, nil, nil)
	rr := postJSON(t, handler, "/v1/expand", expandRequest{Query: "original query"})

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	var resp expandResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded response")
	}
	if resp.Expanded != "original query" {
		t.Errorf("degraded expansion must echo the query, got %q", resp.Expanded)
	}
}

func TestAnalyze(t *testing.T) {
	v := verdict.New(
		[]string{"step one"}, []string{"Companies Regulations 2020, Article 6"},
		verdict.NonCompliant,
		[]string{"wrong jurisdiction"}, []string{"reference ADGM"}, 0.85,
	)
	rea := &mockReasoner{analyzed: outcome.Ok(v)}
	handler := newTestServer(nil, rea, nil, nil)
	rr := postJSON(t, handler, "/v1/analyze", analyzeRequest{Query: "check jurisdiction", Context: "ctx"})

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	var resp verdictResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "non-compliant" {
		t.Errorf("unexpected status %q", resp.Status)
	}
	if resp.Confidence != 0.85 {
		t.Errorf("unexpected confidence %v", resp.Confidence)
	}
	if resp.Degraded {
		t.Error("unexpected degraded flag")
	}
}

func TestAnalyze_Fallback(t *testing.T) {
	rea := &mockReasoner{analyzed: outcome.Degraded(verdict.Fallback(), "llm: parse error")}
	handler := newTestServer(nil, rea, nil, nil)
	rr := postJSON(t, handler, "/v1/analyze", analyzeRequest{Query: "q"})

	var resp verdictResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "review_required" {
		t.Errorf("fallback status: got %q, want review_required", resp.Status)
	}
	if resp.Confidence != 0 {
		t.Errorf("fallback confidence: got %v, want 0", resp.Confidence)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag")
	}
}

func TestCorrections(t *testing.T) {
	rea := &mockReasoner{correction: outcome.Ok("The Company shall maintain a registered office.")}
	handler := newTestServer(nil, rea, nil, nil)
	rr := postJSON(t, handler, "/v1/corrections", correctionsRequest{
		Text:   "The Company may maintain an office.",
		Issues: []string{"weak language"},
	})

	var resp correctionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Degraded {
		t.Error("unexpected degraded flag")
	}
	if resp.Suggestion == "" {
		t.Error("expected non-empty suggestion")
	}
}

func TestReview(t *testing.T) {
	rev := &mockReviewer{report: reviewuc.Report{
		DocumentType: "articles_of_association",
		Status:       verdict.Compliant,
		Confidence:   0.9,
		Sources:      []string{"ADGM Companies Regulations 2020"},
	}}
	handler := newTestServer(nil, nil, rev, nil)
	rr := postJSON(t, handler, "/v1/review", reviewRequest{
		Text:         "some document text",
		DocumentType: "articles_of_association",
	})

	var resp reviewResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "compliant" {
		t.Errorf("unexpected status %q", resp.Status)
	}
	if len(resp.Sources) != 1 {
		t.Errorf("expected 1 source, got %d", len(resp.Sources))
	}
}

func TestReviewBatch(t *testing.T) {
	rev := &mockReviewer{report: reviewuc.Report{Status: verdict.ReviewRequired}}
	handler := newTestServer(nil, nil, rev, nil)
	rr := postJSON(t, handler, "/v1/review/batch", reviewBatchRequest{
		Documents: []reviewRequest{
			{Text: "doc one"},
			{Text: "doc two"},
		},
	})

	var resp reviewBatchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reports) != 2 {
		t.Errorf("expected 2 reports, got %d", len(resp.Reports))
	}
}

func TestReviewBatch_EmptyDocumentText(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)
	rr := postJSON(t, handler, "/v1/review/batch", reviewBatchRequest{
		Documents: []reviewRequest{{Text: ""}},
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestComplianceCheck(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)
	rr := postJSON(t, handler, "/v1/compliance/check", complianceRequest{
		DocumentTypes: []string{"articles_of_association", "board_resolution"},
		Issues: []complianceIssue{
			{Description: "Incorrect jurisdiction reference", Severity: "critical"},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp complianceResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Process != string(complianceuc.Incorporation) {
		t.Errorf("unexpected process %q", resp.Process)
	}
	if resp.Score >= 100 {
		t.Errorf("score should reflect deductions, got %d", resp.Score)
	}
	if len(resp.MissingDocuments) == 0 {
		t.Error("expected missing documents for a partial upload")
	}
}

func TestHealth_Degraded503(t *testing.T) {
	h := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"database":  healthuc.CheckOK,
			"embedding": healthuc.CheckError,
		},
	}}
	handler := newTestServer(nil, nil, nil, h)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Checks["embedding"] != "error" {
		t.Errorf("unexpected embedding check %q", resp.Checks["embedding"])
	}
}
