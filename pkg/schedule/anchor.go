package schedule

import (
	"math"
	"sort"
	"unicode/utf8"
)

// anchorScanLimit caps how many leading lines are scanned for time tokens.
const anchorScanLimit = 80

// TimeAnchor ties a character column to a minute of day. A sorted anchor
// sequence defines a piecewise-linear column-to-time mapping.
type TimeAnchor struct {
	Col int
	Min int
}

// TimeMapper maps character columns to minutes of day by clamped linear
// interpolation over its anchors. The anchor list is immutable once built.
type TimeMapper struct {
	anchors  []TimeAnchor
	startCol int
}

// StartCol is the column of the first anchor, where the event grid begins.
func (tm *TimeMapper) StartCol() int { return tm.startCol }

// Anchors returns the anchor sequence, sorted by column.
func (tm *TimeMapper) Anchors() []TimeAnchor { return tm.anchors }

// Minute maps a column to a minute of day, clamping outside the anchor range.
func (tm *TimeMapper) Minute(col int) int {
	a := tm.anchors
	if col <= a[0].Col {
		return a[0].Min
	}
	if col >= a[len(a)-1].Col {
		return a[len(a)-1].Min
	}
	for i := 0; i < len(a)-1; i++ {
		lo, hi := a[i], a[i+1]
		if col >= lo.Col && col <= hi.Col {
			span := hi.Col - lo.Col
			if span < 1 {
				span = 1
			}
			t := float64(col-lo.Col) / float64(span)
			return int(math.Round(float64(lo.Min) + t*float64(hi.Min-lo.Min)))
		}
	}
	return a[0].Min
}

// buildTimeMapper scans the leading lines for HH:MM tokens and clusters
// nearby ones into column anchors. Tokens whose columns differ by at most 2
// fold into the same anchor: the column is averaged, the minute keeps the
// minimum seen (the left edge of a start-end pair anchors the boundary).
// With fewer than 2 anchors found, two synthetic ones spanning 07:00-20:00
// over the observed line width are used instead.
func buildTimeMapper(lines []string) *TimeMapper {
	limit := len(lines)
	if limit > anchorScanLimit {
		limit = anchorScanLimit
	}

	var found []TimeAnchor
	for i := 0; i < limit; i++ {
		line := lines[i]
		locs := timeRe.FindAllStringSubmatchIndex(line, -1)
		for _, loc := range locs {
			col := utf8.RuneCountInString(line[:loc[0]])
			min := parseTimeToken([]string{
				line[loc[0]:loc[1]],
				line[loc[2]:loc[3]],
				line[loc[4]:loc[5]],
			})
			found = append(found, TimeAnchor{Col: col, Min: min})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Col != found[j].Col {
			return found[i].Col < found[j].Col
		}
		return found[i].Min < found[j].Min
	})

	var anchors []TimeAnchor
	for _, m := range found {
		if len(anchors) == 0 || abs(m.Col-anchors[len(anchors)-1].Col) > 2 {
			anchors = append(anchors, m)
			continue
		}
		last := &anchors[len(anchors)-1]
		last.Col = int(math.Round(float64(last.Col+m.Col) / 2))
		if m.Min < last.Min {
			last.Min = m.Min
		}
	}

	if len(anchors) < 2 {
		width := 60
		for i := 0; i < limit; i++ {
			if n := utf8.RuneCountInString(lines[i]); n > width {
				width = n
			}
		}
		anchors = []TimeAnchor{
			{Col: 0, Min: 7 * 60},
			{Col: width, Min: 20 * 60},
		}
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Col < anchors[j].Col })

	return &TimeMapper{anchors: anchors, startCol: anchors[0].Col}
}
