// Package verdict defines the structured compliance reasoning result.
package verdict

// Status is the compliance outcome of an analysis.
type Status string

const (
	// Compliant means no violations were identified.
	Compliant Status = "compliant"
	// NonCompliant means at least one violation was identified.
	NonCompliant Status = "non-compliant"
	// ReviewRequired means the analysis was inconclusive and needs a human.
	ReviewRequired Status = "review_required"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case Compliant, NonCompliant, ReviewRequired:
		return true
	}
	return false
}

// Verdict is the structured result of a compliance analysis. Constructed
// fresh per call and never mutated afterwards. Issues and Recommendations
// pair up by index when both are present.
type Verdict struct {
	reasoningSteps  []string
	regulations     []string
	status          Status
	issues          []string
	recommendations []string
	confidence      float64
}

// New creates a Verdict. Confidence is clamped into [0,1] and an unknown
// status degrades to ReviewRequired.
func New(
	steps, regulations []string, status Status,
	issues, recommendations []string, confidence float64,
) Verdict {
	if !status.Valid() {
		status = ReviewRequired
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Verdict{
		reasoningSteps:  steps,
		regulations:     regulations,
		status:          status,
		issues:          issues,
		recommendations: recommendations,
		confidence:      confidence,
	}
}

// Fallback is the canonical degraded verdict returned when the reasoning
// service fails or its output cannot be parsed.
func Fallback() Verdict {
	return Verdict{
		reasoningSteps:  []string{"Analysis could not be completed"},
		status:          ReviewRequired,
		issues:          []string{"Automated analysis failed; manual review needed"},
		recommendations: []string{"Consult a legal expert"},
		confidence:      0,
	}
}

// ReasoningSteps returns the ordered chain-of-thought steps.
func (v Verdict) ReasoningSteps() []string { return v.reasoningSteps }

// Regulations returns identifiers of the regulations found applicable.
func (v Verdict) Regulations() []string { return v.regulations }

// Status returns the compliance status.
func (v Verdict) Status() Status { return v.status }

// Issues returns the identified issues in order.
func (v Verdict) Issues() []string { return v.issues }

// Recommendations returns the recommendations, index-paired with Issues.
func (v Verdict) Recommendations() []string { return v.recommendations }

// Confidence returns the model confidence in [0,1].
func (v Verdict) Confidence() float64 { return v.confidence }
