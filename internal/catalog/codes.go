package catalog

import (
	"sort"
	"strings"
)

// MaxCodeDistance bounds SimilarCodes: one typo plus one transposition.
const MaxCodeDistance = 2

// SimilarCodes returns catalog codes within MaxCodeDistance edits of code
// (case-insensitive, adjacent swaps count as one edit), nearest first.
// The code itself is not a suggestion; a case-only difference is.
func (idx *Index) SimilarCodes(code string, limit int) []string {
	code = strings.TrimSpace(code)
	want := strings.ToUpper(code)
	if want == "" || idx.Len() == 0 || limit <= 0 {
		return nil
	}
	type cand struct {
		code string
		dist int
	}
	var out []cand
	for _, e := range idx.entries {
		d := editDistance(want, strings.ToUpper(e.Code))
		if d <= MaxCodeDistance && e.Code != code {
			out = append(out, cand{e.Code, d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dist != out[j].dist {
			return out[i].dist < out[j].dist
		}
		return out[i].code < out[j].code
	})
	if len(out) > limit {
		out = out[:limit]
	}
	codes := make([]string, len(out))
	for i, c := range out {
		codes[i] = c.code
	}
	return codes
}

// editDistance is Damerau-Levenshtein (optimal string alignment) over runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			// вставка / удаление / замена
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			// транспозиция соседних символов
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(rb)]
}
