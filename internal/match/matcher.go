package match

import (
	"sort"

	"order-intake/internal/catalog"
)

const (
	DefaultThreshold = 90
	DefaultLimit     = 5
)

// Scorer rates a normalized reference against an entry's search text, 0..100.
type Scorer func(reference, searchText string) int

// Match is a catalog entry with the confidence it was found with.
type Match struct {
	Entry      catalog.Entry `json:"entry"`
	Confidence int           `json:"confidence"`
}

// Matcher resolves free-text references against a catalog.Index in two
// tiers: a unique exact name wins outright with confidence 100, otherwise
// every entry is scored and those at or above the threshold are ranked.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	threshold int
	limit     int
	scorer    Scorer
}

type Option func(*Matcher)

func WithThreshold(t int) Option { return func(m *Matcher) { m.threshold = t } }

func WithLimit(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithScorer replaces WRatio as the approximate-tier scorer.
func WithScorer(s Scorer) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

func New(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold, limit: DefaultLimit, scorer: WRatio}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Matcher) Threshold() int { return m.threshold }

// FindMatches is New(WithThreshold(threshold)).FindMatches.
func FindMatches(reference string, idx *catalog.Index, threshold int) []Match {
	return New(WithThreshold(threshold)).FindMatches(reference, idx)
}

// FindMatches returns up to limit candidates, confidence descending (ties by
// code). The result is empty when nothing clears the threshold.
func (m *Matcher) FindMatches(reference string, idx *catalog.Index) []Match {
	norm := Normalize(reference)
	if norm == "" || idx.Len() == 0 {
		return nil
	}

	// 1) точное совпадение имени; несколько одинаковых имён это неоднозначность, идём в fuzzy
	if exact := idx.LookupName(norm); len(exact) == 1 {
		return []Match{{Entry: exact[0], Confidence: 100}}
	}

	// 2) fuzzy по search text
	var out []Match
	for i := 0; i < idx.Len(); i++ {
		e := idx.At(i)
		if s := m.scorer(norm, e.SearchText); s >= m.threshold {
			out = append(out, Match{Entry: e, Confidence: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Entry.Code < out[j].Entry.Code
	})
	if len(out) > m.limit {
		out = out[:m.limit]
	}
	return out
}
