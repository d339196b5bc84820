package reasoning

import (
	"fmt"
	"strings"
)

func expandPrompt(query string) string {
	return fmt.Sprintf(`Given this legal query about ADGM compliance, provide 3-5 related search terms or synonyms.
Query: %s

Return only the expanded terms separated by commas, nothing else.`, query)
}

func analyzePrompt(query, context string) string {
	return fmt.Sprintf(`You are an ADGM legal compliance expert. Use chain-of-thought reasoning to analyze this compliance question.

Context from ADGM Regulations:
%s

Question: %s

Think through this step-by-step:
1. Identify the specific ADGM regulation or requirement being questioned
2. Check if the document/clause complies with identified regulations
3. List any specific violations or issues
4. Provide actionable recommendations

Respond in JSON format:
{
    "reasoning_steps": ["step1", "step2", ...],
    "applicable_regulations": ["regulation1", "regulation2", ...],
    "compliance_status": "compliant/non-compliant/review_required",
    "issues": ["issue1", "issue2", ...],
    "recommendations": ["recommendation1", "recommendation2", ...],
    "confidence": 0.0-1.0
}`, context, query)
}

func correctionPrompt(text string, issues []string) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteString("\n")
	}

	return fmt.Sprintf(`You are an ADGM legal expert. Correct the following text to comply with ADGM regulations.

Original Text:
%s

Issues Found:
%s
Provide the corrected text that:
1. Complies with all ADGM regulations
2. Uses proper legal language (binding terms)
3. References ADGM jurisdiction correctly
4. Includes all required elements

Return only the corrected text:`, text, b.String())
}
