package compliance

import (
	"strings"
	"testing"
)

func TestIdentifyProcess_Incorporation(t *testing.T) {
	c := NewChecker()
	p := c.IdentifyProcess([]string{"articles_of_association", "board_resolution"})
	if p != Incorporation {
		t.Errorf("got %q, want %q", p, Incorporation)
	}
}

func TestIdentifyProcess_Licensing(t *testing.T) {
	c := NewChecker()
	p := c.IdentifyProcess([]string{"license_application", "business_plan", "compliance_manual"})
	if p != Licensing {
		t.Errorf("got %q, want %q", p, Licensing)
	}
}

func TestIdentifyProcess_Employment(t *testing.T) {
	c := NewChecker()
	p := c.IdentifyProcess([]string{"employment_contract"})
	if p != Employment {
		t.Errorf("got %q, want %q", p, Employment)
	}
}

func TestIdentifyProcess_UnknownDefaultsToIncorporation(t *testing.T) {
	c := NewChecker()
	p := c.IdentifyProcess([]string{"mystery_document"})
	if p != Incorporation {
		t.Errorf("got %q, want %q", p, Incorporation)
	}
}

func TestIdentifyProcess_LooseIdentifierMatch(t *testing.T) {
	c := NewChecker()
	p := c.IdentifyProcess([]string{"board_resolution_signed_v2"})
	if p != Incorporation {
		t.Errorf("got %q, want %q", p, Incorporation)
	}
}

func TestCheckDocuments_ByType(t *testing.T) {
	c := NewChecker()
	types := []string{"articles_of_association", "board_resolution"}
	cl := c.CheckDocuments([]string{"aoa.docx", "resolution.docx"}, Incorporation, types)

	if cl.RequiredCount != 5 {
		t.Errorf("required count: got %d, want 5", cl.RequiredCount)
	}
	if len(cl.PresentDocuments) != 2 {
		t.Errorf("present: got %v", cl.PresentDocuments)
	}
	if len(cl.MissingDocuments) != 3 {
		t.Errorf("missing: got %v", cl.MissingDocuments)
	}
	for _, m := range cl.MissingDocuments {
		if m == "Articles of Association" || m == "Board Resolution" {
			t.Errorf("%q reported missing but was uploaded", m)
		}
	}
}

func TestCheckDocuments_ByFilename(t *testing.T) {
	c := NewChecker()
	uploaded := []string{"Company_Articles_of_Association_final.docx", "employment_stuff.docx"}
	cl := c.CheckDocuments(uploaded, Incorporation, nil)

	found := false
	for _, p := range cl.PresentDocuments {
		if p == "Articles of Association" {
			found = true
		}
	}
	if !found {
		t.Errorf("filename matching missed the articles: %v", cl.PresentDocuments)
	}
}

func TestCheckDocuments_AllMissing(t *testing.T) {
	c := NewChecker()
	cl := c.CheckDocuments(nil, Employment, nil)
	if len(cl.MissingDocuments) != 3 {
		t.Errorf("missing: got %v", cl.MissingDocuments)
	}
	if len(cl.PresentDocuments) != 0 {
		t.Errorf("present: got %v", cl.PresentDocuments)
	}
}

func TestScore_Perfect(t *testing.T) {
	c := NewChecker()
	score, status := c.Score(nil, Checklist{})
	if score != 100 {
		t.Errorf("score: got %d, want 100", score)
	}
	if !strings.HasPrefix(status, "PASS") {
		t.Errorf("status: got %q", status)
	}
}

func TestScore_Deductions(t *testing.T) {
	c := NewChecker()
	// 100 - 20 (critical) - 10 (high) - 2 (low) - 10 (one missing doc)
	issues := []Issue{
		{Description: "wrong jurisdiction", Severity: SeverityCritical},
		{Description: "weak language", Severity: SeverityHigh},
		{Description: "minor issue", Severity: SeverityLow},
	}
	cl := Checklist{MissingDocuments: []string{"Board Resolution"}}

	score, status := c.Score(issues, cl)
	if score != 58 {
		t.Errorf("score: got %d, want 58", score)
	}
	if !strings.HasPrefix(status, "FAIL") {
		t.Errorf("status: got %q", status)
	}
}

func TestScore_FloorsAtZero(t *testing.T) {
	c := NewChecker()
	issues := make([]Issue, 10)
	for i := range issues {
		issues[i] = Issue{Description: "bad", Severity: SeverityCritical}
	}
	score, status := c.Score(issues, Checklist{})
	if score != 0 {
		t.Errorf("score: got %d, want 0", score)
	}
	if !strings.HasPrefix(status, "CRITICAL") {
		t.Errorf("status: got %q", status)
	}
}

func TestScore_ReviewBand(t *testing.T) {
	c := NewChecker()
	issues := []Issue{
		{Description: "a", Severity: SeverityHigh},
		{Description: "b", Severity: SeverityMedium},
	}
	score, status := c.Score(issues, Checklist{})
	if score != 85 {
		t.Errorf("score: got %d, want 85", score)
	}
	if !strings.HasPrefix(status, "REVIEW REQUIRED") {
		t.Errorf("status: got %q", status)
	}
}

func TestRecommendations_MissingDocsFirst(t *testing.T) {
	c := NewChecker()
	cl := Checklist{MissingDocuments: []string{"Business Plan", "Compliance Manual"}}
	recs := c.Recommendations(nil, cl)

	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	if !strings.HasPrefix(recs[0], "Upload missing documents:") {
		t.Errorf("first recommendation: got %q", recs[0])
	}
	if !strings.Contains(recs[0], "Business Plan") {
		t.Errorf("missing doc not listed: %q", recs[0])
	}
}

func TestRecommendations_PatternAdvice(t *testing.T) {
	c := NewChecker()
	issues := []Issue{
		{Description: "Incorrect jurisdiction: references Dubai Courts", Severity: SeverityCritical},
		{Description: "Weak language in clause 4", Severity: SeverityHigh},
	}
	recs := c.Recommendations(issues, Checklist{})

	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "Abu Dhabi Global Market (ADGM)") {
		t.Errorf("jurisdiction advice missing: %v", recs)
	}
	if !strings.Contains(joined, "binding terms") {
		t.Errorf("language advice missing: %v", recs)
	}
}

func TestRecommendations_CleanDocuments(t *testing.T) {
	c := NewChecker()
	recs := c.Recommendations(nil, Checklist{})

	if len(recs) != 1 {
		t.Fatalf("expected a single summary recommendation, got %v", recs)
	}
	if !strings.Contains(recs[0], "largely compliant") {
		t.Errorf("got %q", recs[0])
	}
}
