package semantic

import (
	"sort"
	"strings"
)

// maxSuggestions bounds how many near-miss candidates a hint offers.
const maxSuggestions = 3

// closest returns up to maxSuggestions candidates whose spelling is
// close to name, best match first. A candidate qualifies when at
// least half of the longer name survives unchanged, mirroring the
// usual similarity cutoff for "did you mean" suggestions.
func closest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	for _, cand := range candidates {
		d := editDistance(strings.ToLower(name), strings.ToLower(cand))
		longer := len(name)
		if len(cand) > longer {
			longer = len(cand)
		}
		if longer == 0 || d*2 > longer {
			continue
		}
		matches = append(matches, scored{name: cand, dist: d})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// editDistance is the Levenshtein distance between a and b, computed
// with a rolling single row.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			insert := row[j-1] + 1
			remove := row[j] + 1
			replace := prev
			if ra[i-1] != rb[j-1] {
				replace++
			}
			prev = row[j]
			row[j] = min3(insert, remove, replace)
		}
	}
	return row[len(rb)]
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
