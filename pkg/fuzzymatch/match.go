// Package fuzzymatch ranks timetable labels against a user query by
// subsequence matching, so "api1" finds "1bc_API_1" without the exact
// spelling.
package fuzzymatch

import (
	"sort"
	"strings"
)

// Match is one label that contains the query as a subsequence.
type Match struct {
	Text  string
	Score int
	Index int // position in the input slice
}

// Matcher scores labels against queries. The zero value matches
// case-insensitively, which is what label lookups want.
type Matcher struct {
	CaseSensitive bool
}

// Rank returns every label containing the query as a subsequence, best
// score first. Ties keep input order. An empty query matches everything
// with score zero.
func (m *Matcher) Rank(query string, labels []string) []Match {
	if query == "" {
		all := make([]Match, len(labels))
		for i, l := range labels {
			all[i] = Match{Text: l, Index: i}
		}
		return all
	}

	var matches []Match
	for i, l := range labels {
		if score, ok := m.score(query, l); ok {
			matches = append(matches, Match{Text: l, Score: score, Index: i})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Best returns the highest-ranked label for the query.
func (m *Matcher) Best(query string, labels []string) (string, bool) {
	ranked := m.Rank(query, labels)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Text, true
}

// score walks the label looking for the query runes in order. Matches at
// the start, right after a separator, or adjacent to the previous match
// score higher; shorter labels get a small bonus so "1bc_API_1" beats
// "1bc_API_10" on the query "api1".
func (m *Matcher) score(query, label string) (int, bool) {
	q := []rune(query)
	l := []rune(label)
	if !m.CaseSensitive {
		q = []rune(strings.ToLower(query))
		l = []rune(strings.ToLower(label))
	}

	qi := 0
	prev := -2
	score := 0
	for i, r := range l {
		if qi >= len(q) || r != q[qi] {
			continue
		}
		switch {
		case i == 0:
			score += 100
		case isSeparator(l[i-1]):
			score += 60
		case i == prev+1:
			score += 50
		default:
			score += 20
		}
		prev = i
		qi++
	}
	if qi < len(q) {
		return 0, false
	}
	return score + 100 - len(l), true
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}
