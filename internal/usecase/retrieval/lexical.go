package retrieval

import "strings"

// LexicalScore computes the Jaccard similarity of the whitespace-tokenized,
// lower-cased term sets of query and document: |intersection| / |union|.
// Returns a value in [0,1]; 0 when either side has no tokens. Deterministic
// and dependency-free, it is the cheap recall signal that catches exact
// regulatory terminology (article numbers, defined terms) that embeddings
// under-weight.
func LexicalScore(query, doc string) float64 {
	qTerms := tokenSet(query)
	dTerms := tokenSet(doc)
	if len(qTerms) == 0 || len(dTerms) == 0 {
		return 0
	}

	small, large := qTerms, dTerms
	if len(dTerms) < len(qTerms) {
		small, large = dTerms, qTerms
	}

	intersection := 0
	for t := range small {
		if _, ok := large[t]; ok {
			intersection++
		}
	}

	union := len(qTerms) + len(dTerms) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
