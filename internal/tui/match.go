package tui

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// rank returns the indices of labels matching query, best match first. An
// empty query keeps every label in its original order.
func rank(query string, labels []string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]int, len(labels))
		for i := range labels {
			out[i] = i
		}
		return out
	}

	type hit struct{ idx, score int }
	var hits []hit
	for i, l := range labels {
		if s, ok := score(q, strings.ToLower(l)); ok {
			hits = append(hits, hit{i, s})
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(a.score, b.score) })

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.idx
	}
	return out
}

// score is 0 for a prefix match, 1 for a substring match and 2+distance for a
// word that starts with something close to q.
func score(q, label string) (int, bool) {
	if strings.HasPrefix(label, q) {
		return 0, true
	}
	if strings.Contains(label, q) {
		return 1, true
	}
	qLen := utf8.RuneCountInString(q)
	if qLen < 3 {
		return 0, false
	}
	tolerance := qLen / 3
	best := -1
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if r := []rune(w); len(r) > qLen {
			w = string(r[:qLen])
		}
		d := levenshtein.ComputeDistance(q, w)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 || best > tolerance {
		return 0, false
	}
	return 2 + best, true
}
