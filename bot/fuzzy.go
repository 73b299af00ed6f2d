package bot

import "strings"

// Scorer ranks how well a candidate account name matches a query. Higher is
// better, zero means no match. The bot only needs the ordering to be stable
// and monotonic, so any scoring function with that shape can be swapped in.
type Scorer interface {
	Score(query, candidate string) int
}

// SubsequenceScorer matches candidates containing the query characters in
// order, case-insensitively. Matches at the start of the candidate and runs
// of adjacent matches score higher.
type SubsequenceScorer struct{}

func (SubsequenceScorer) Score(query, candidate string) int {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	cand := []rune(strings.ToLower(candidate))
	if len(q) == 0 || len(cand) == 0 {
		return 0
	}

	score := 0
	prev := -2
	ci := 0
	for _, qr := range q {
		found := -1
		for ; ci < len(cand); ci++ {
			if cand[ci] == qr {
				found = ci
				break
			}
		}
		if found < 0 {
			return 0
		}
		score++
		if found == 0 {
			score += 3
		}
		if found == prev+1 {
			score += 2
		}
		prev = found
		ci = found + 1
	}
	return score
}
