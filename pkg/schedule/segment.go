package schedule

// minSegmentWidth is the narrowest ink run accepted as an event cell;
// anything thinner is stray characters, not an event.
const minSegmentWidth = 3

// Segment is a half-open [From, To) column range holding one inferred event.
type Segment struct {
	From int
	To   int
}

// findSegments detects contiguous runs of alphanumeric density across the
// columns of a padded line block, starting at fromCol. Gaps of one or two
// columns are bridged so that in-cell spacing does not split an event. The
// look-ahead is asymmetric (c+1 and c+2 only), matching the legacy pages
// this was tuned on.
func findSegments(paddedLines [][]rune, fromCol int) []Segment {
	if len(paddedLines) == 0 {
		return nil
	}
	width := len(paddedLines[0])
	if fromCol < 0 {
		fromCol = 0
	}

	active := make([]int, width)
	for _, line := range paddedLines {
		for c := fromCol; c < width; c++ {
			if isAlnum(line[c]) {
				active[c]++
			}
		}
	}

	for c := fromCol + 1; c < width-1; c++ {
		if active[c] == 0 && active[c-1] > 0 && active[c+1] > 0 {
			active[c] = 1
		}
		if active[c] == 0 && active[c-1] > 0 && c+2 < width && active[c+2] > 0 {
			active[c] = 1
		}
	}

	var segs []Segment
	inRun := false
	start := fromCol
	for c := fromCol; c < width; c++ {
		if !inRun && active[c] > 0 {
			inRun = true
			start = c
		}
		if inRun && (active[c] == 0 || c == width-1) {
			end := c
			if active[c] > 0 {
				end = c + 1
			}
			if end-start >= minSegmentWidth {
				segs = append(segs, Segment{From: start, To: end})
			}
			inRun = false
		}
	}
	return segs
}

func isAlnum(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
