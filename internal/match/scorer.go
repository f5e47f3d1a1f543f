package match

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer rates the similarity of two normalized strings from 0 to 100.
type Scorer interface {
	Score(query, candidate string) int
}

// TokenSetScorer scores by token-set ratio: order-insensitive token
// overlap, so "patches asstd" and "asstd patches" rate 100.
type TokenSetScorer struct{}

func (TokenSetScorer) Score(query, candidate string) int {
	return fuzzy.TokenSetRatio(query, candidate)
}

// BestMatch scans candidates in order and returns the best-scoring one.
// A later candidate must beat, not tie, the current best, so sorted
// candidates give deterministic results.
func BestMatch(query string, candidates []string, scorer Scorer) (string, int) {
	best, bestScore := "", -1
	for _, c := range candidates {
		if s := scorer.Score(query, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}
