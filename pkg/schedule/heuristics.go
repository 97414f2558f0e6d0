package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	timeRe  = regexp.MustCompile(`\b(\d{1,2})\s*:\s*([0-5]\d)\b`)
	roomRe  = regexp.MustCompile(`(?i)\b[a-z]{1,2}\d{2,3}[a-z]?\b`)
	titleRe = regexp.MustCompile(`[@#]?[A-Za-z0-9]{3,}[-A-Za-z0-9]*`)

	// Day and corner-header labels never qualify as titles.
	labelTokenRe = regexp.MustCompile(`^(?i:Pon|Uto|Str|Stv|Štv|Pia|Hod|Zac)$`)
)

// normalizeText collapses whitespace runs (NBSP included) into single spaces.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// pickTitle derives a title from free-form cell or segment text: the longest
// title-shaped token that is not a day or header label. Ties keep the first
// occurrence. Returns "" when no token qualifies.
func pickTitle(text string) string {
	var candidates []string
	for _, tok := range titleRe.FindAllString(text, -1) {
		if !labelTokenRe.MatchString(tok) {
			candidates = append(candidates, tok)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	return candidates[0]
}

// pickRoom returns the first room-shaped token in the text, or "".
func pickRoom(text string) string {
	return roomRe.FindString(text)
}

// parseTimeToken decodes the submatches of one timeRe match into minutes
// since midnight.
func parseTimeToken(m []string) int {
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min
}
