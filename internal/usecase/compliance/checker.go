// Package compliance maps uploaded document sets onto ADGM filing processes:
// which process is being attempted, which required documents are missing, and
// how the issue list rolls up into a single score.
package compliance

import (
	"fmt"
	"sort"
	"strings"
)

// Process is an ADGM filing process.
type Process string

const (
	// Incorporation is the company incorporation process.
	Incorporation Process = "company_incorporation"
	// Licensing is the license application process.
	Licensing Process = "licensing"
	// Employment is the employment documentation process.
	Employment Process = "employment"
)

// Severity grades an issue.
type Severity string

// Issue severities, ordered from worst to informational.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Issue is one compliance finding against a document.
type Issue struct {
	Description string
	Severity    Severity
}

// Checklist is the result of checking uploaded documents against a process.
type Checklist struct {
	Process          Process
	MissingDocuments []string
	PresentDocuments []string
	UploadedCount    int
	RequiredCount    int
}

// scoreWeights are per-severity deductions from the perfect score.
var scoreWeights = map[Severity]int{
	SeverityCritical: 20,
	SeverityHigh:     10,
	SeverityMedium:   5,
	SeverityLow:      2,
	SeverityInfo:     0,
}

// missingDocPenalty is deducted per missing required document.
const missingDocPenalty = 10

// requirements lists required document names per process.
var requirements = map[Process][]string{
	Incorporation: {
		"Articles of Association",
		"Board Resolution",
		"Shareholder Resolution",
		"Incorporation Application Form",
		"Register of Members and Directors",
	},
	Licensing: {
		"License Application Form",
		"Business Plan",
		"Compliance Manual",
		"Board Resolution for License",
		"Financial Projections",
	},
	Employment: {
		"Employment Contract",
		"Job Description",
		"Salary Certificate",
	},
}

// typeMappings maps document type identifiers to standard document names.
var typeMappings = map[string]string{
	"articles_of_association":   "Articles of Association",
	"board_resolution":          "Board Resolution",
	"shareholder_resolution":    "Shareholder Resolution",
	"incorporation_application": "Incorporation Application Form",
	"register":                  "Register of Members and Directors",
	"memorandum":                "Memorandum of Association",
	"ubo_declaration":           "UBO Declaration Form",
	"employment_contract":       "Employment Contract",
	"license_application":       "License Application Form",
	"business_plan":             "Business Plan",
	"compliance_manual":         "Compliance Manual",
}

// Checker evaluates document sets against process requirements.
type Checker struct{}

// NewChecker creates a compliance checker.
func NewChecker() *Checker {
	return &Checker{}
}

// IdentifyProcess guesses the filing process from the uploaded document
// types. Incorporation documents dominate; with no recognizable documents the
// most common process (incorporation) is assumed.
func (c *Checker) IdentifyProcess(documentTypes []string) Process {
	names := standardNames(documentTypes)

	counts := map[Process]int{}
	for p, required := range requirements {
		for _, name := range names {
			if contains(required, name) {
				counts[p]++
			}
		}
	}

	switch {
	case counts[Incorporation] > 0:
		return Incorporation
	case counts[Licensing] > counts[Employment]:
		return Licensing
	case counts[Employment] > 0:
		return Employment
	default:
		return Incorporation
	}
}

// CheckDocuments reports which required documents of the process are present
// and which are missing. Matching prefers explicit document types; without
// them it falls back to keyword matching over filenames.
func (c *Checker) CheckDocuments(uploaded []string, process Process, documentTypes []string) Checklist {
	required, ok := requirements[process]
	if !ok {
		return Checklist{Process: process, UploadedCount: len(uploaded)}
	}

	var present, missing []string

	if len(documentTypes) > 0 {
		names := standardNames(documentTypes)
		for _, req := range required {
			if contains(names, req) {
				present = append(present, req)
			} else {
				missing = append(missing, req)
			}
		}
	} else {
		for _, req := range required {
			if matchByFilename(uploaded, req) {
				present = append(present, req)
			} else {
				missing = append(missing, req)
			}
		}
	}

	return Checklist{
		Process:          process,
		MissingDocuments: missing,
		PresentDocuments: present,
		UploadedCount:    len(uploaded),
		RequiredCount:    len(required),
	}
}

// Score rolls issues and missing documents into a single score in [0,100]
// with a submission-readiness status line.
func (c *Checker) Score(issues []Issue, checklist Checklist) (int, string) {
	score := 100
	for _, issue := range issues {
		score -= scoreWeights[issue.Severity]
	}
	score -= len(checklist.MissingDocuments) * missingDocPenalty

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var status string
	switch {
	case score >= 90:
		status = "PASS - Ready for submission"
	case score >= 70:
		status = "REVIEW REQUIRED - Minor corrections needed"
	case score >= 50:
		status = "FAIL - Significant corrections required"
	default:
		status = "CRITICAL - Major non-compliance detected"
	}

	return score, status
}

// Recommendations produces prioritized, deduplicated guidance: missing
// documents first, then severity buckets, then pattern-specific advice.
func (c *Checker) Recommendations(issues []Issue, checklist Checklist) []string {
	var recs []string

	if len(checklist.MissingDocuments) > 0 {
		recs = append(recs, "Upload missing documents: "+strings.Join(checklist.MissingDocuments, ", "))
	}

	bySeverity := map[Severity]int{}
	for _, issue := range issues {
		bySeverity[issue.Severity]++
	}

	if n := bySeverity[SeverityCritical]; n > 0 {
		recs = append(recs, fmt.Sprintf("Fix %d critical issues immediately", n))
	}
	if n := bySeverity[SeverityHigh]; n > 0 {
		recs = append(recs, fmt.Sprintf("Address %d high-severity issues before submission", n))
	}

	recs = append(recs, patternAdvice(issues)...)

	if n := bySeverity[SeverityMedium]; n > 0 {
		recs = append(recs, fmt.Sprintf("Review %d medium-severity issues for better compliance", n))
	}

	if len(checklist.MissingDocuments) == 0 &&
		bySeverity[SeverityCritical] == 0 && bySeverity[SeverityHigh] == 0 {
		recs = append(recs, "Documents are largely compliant - review minor issues and submit")
	}

	return recs
}

// patternAdvice adds advice keyed off recurring issue descriptions.
func patternAdvice(issues []Issue) []string {
	patterns := map[string]string{
		"jurisdiction":  "Update all jurisdiction references to 'Abu Dhabi Global Market (ADGM)'",
		"weak language": "Replace weak language (may, might, could) with binding terms (shall, must, will)",
		"missing":       "Add all required sections as per ADGM templates",
		"signature":     "Complete all signature blocks with names, titles, and dates",
	}

	matched := map[string]bool{}
	for _, issue := range issues {
		desc := strings.ToLower(issue.Description)
		for key, advice := range patterns {
			if strings.Contains(desc, key) {
				matched[advice] = true
			}
		}
	}

	advice := make([]string, 0, len(matched))
	for a := range matched {
		advice = append(advice, a)
	}
	sort.Strings(advice)
	return advice
}

func standardNames(documentTypes []string) []string {
	var names []string
	for _, dt := range documentTypes {
		key := strings.ToLower(strings.TrimSpace(dt))
		if name, ok := typeMappings[key]; ok {
			names = append(names, name)
			continue
		}
		// allow loose identifiers like "board_resolution_signed"
		for k, name := range typeMappings {
			if strings.Contains(key, k) {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

func matchByFilename(uploaded []string, required string) bool {
	keywords := strings.Fields(strings.ToLower(required))
	for _, u := range uploaded {
		lower := strings.ToLower(u)
		matches := 0
		for _, kw := range keywords {
			if len(kw) > 3 && strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches*2 >= len(keywords) { // at least half the keywords
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
