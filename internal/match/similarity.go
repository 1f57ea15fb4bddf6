package match

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// All scores are 0..100 and come from go-fuzzywuzzy. Inputs go through
// process first so every scorer sees the same lowercased, punctuation-free text.

// forceASCII off: the library would otherwise drop Cyrillic and accented letters.
const forceASCII = false

func scored(a, b string, score func(a, b string) int) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}
	return score(a, b)
}

// Ratio is the edit-distance similarity of a and b.
func Ratio(a, b string) int {
	return scored(a, b, fuzzy.Ratio)
}

// PartialRatio scores the shorter string against its best-aligned window in the longer one.
func PartialRatio(a, b string) int {
	return scored(a, b, fuzzy.PartialRatio)
}

// TokenSortRatio compares a and b after sorting their words.
func TokenSortRatio(a, b string) int {
	return scored(a, b, func(a, b string) int { return fuzzy.TokenSortRatio(a, b, forceASCII) })
}

// TokenSetRatio compares the shared words of a and b against each side's full word set,
// so extra words on one side cost little.
func TokenSetRatio(a, b string) int {
	return scored(a, b, func(a, b string) int { return fuzzy.TokenSetRatio(a, b, forceASCII) })
}

// PartialTokenSetRatio is TokenSetRatio with substring alignment; any shared word scores 100.
func PartialTokenSetRatio(a, b string) int {
	return scored(a, b, func(a, b string) int { return fuzzy.PartialTokenSetRatio(a, b, forceASCII) })
}

// WRatio is the weighted blend used by the matcher: plain ratio for similar
// lengths, token-order-insensitive variants discounted to 95%, and partial
// (substring) variants scaled down as the length gap grows.
func WRatio(a, b string) int {
	return scored(a, b, func(a, b string) int { return fuzzy.UWRatio(a, b) })
}
