package search

import (
	"strings"
	"unicode/utf8"
)

// maxSuggestDistance bounds how far a dictionary term may be from the
// queried term to count as a correction.
const maxSuggestDistance = 2

// Suggest walks the text field's term dictionary and returns the
// closest term within maxSuggestDistance edits. A term that already
// exists in the dictionary gets no suggestion; ties prefer the more
// frequent term, then the lexicographically smaller one.
func (e *BleveEngine) Suggest(term string) (string, error) {
	term = strings.ToLower(term)

	dict, err := e.idx.FieldDict("text")
	if err != nil {
		return "", err
	}
	defer dict.Close()

	var (
		best      string
		bestDist  = maxSuggestDistance + 1
		bestCount uint64
	)
	termLen := utf8.RuneCountInString(term)
	for {
		entry, err := dict.Next()
		if err != nil {
			return "", err
		}
		if entry == nil {
			break
		}
		if entry.Term == term {
			// known term, nothing to correct
			return "", nil
		}
		// a length gap is a lower bound on the edit distance; counted
		// in runes so multi-byte terms are not skipped prematurely
		if lenDiff(termLen, utf8.RuneCountInString(entry.Term)) > maxSuggestDistance {
			continue
		}
		d := levenshtein(term, entry.Term)
		if d > maxSuggestDistance {
			continue
		}
		if d < bestDist ||
			(d == bestDist && entry.Count > bestCount) ||
			(d == bestDist && entry.Count == bestCount && (best == "" || entry.Term < best)) {
			best = entry.Term
			bestDist = d
			bestCount = entry.Count
		}
	}
	return best, nil
}

func lenDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
