package schedule

import (
	"log/slog"
	"regexp"
	"strings"
)

var dayLineRe = regexp.MustCompile(`^\s*(Pon|Uto|Str|Stv|Štv|Pia)\b`)

// extractFromText parses a monospaced timetable dump. Day-label lines open
// blocks that run until the next day line; within a block, time boundaries
// come from the anchor mapper and event extents from the segment finder.
// This is the fallback strategy for pages predating table markup.
func extractFromText(text, sourceURL string) []Slot {
	lines := strings.Split(text, "\n")
	if len(lines) < 5 {
		return nil
	}

	mapper := buildTimeMapper(lines)

	var dayIdx []int
	for i, line := range lines {
		if dayLineRe.MatchString(line) {
			dayIdx = append(dayIdx, i)
		}
	}

	var slots []Slot
	for di, start := range dayIdx {
		end := len(lines)
		if di+1 < len(dayIdx) {
			end = dayIdx[di+1]
		}

		m := dayLineRe.FindStringSubmatch(lines[start])
		day, ok := ParseDay(m[1])
		if !ok {
			continue
		}

		block := padToSameLength(lines[start:end])
		segments := findSegments(block, mapper.StartCol())
		slog.Debug("text-grid block", "day", day, "lines", end-start, "segments", len(segments))

		for _, seg := range segments {
			startMin := mapper.Minute(seg.From)
			endMin := mapper.Minute(seg.To)
			if startMin >= endMin {
				continue
			}

			inside := sliceBlockText(block, seg.From, seg.To)
			title := pickTitle(inside)
			if title == "" {
				continue
			}

			slots = append(slots, Slot{
				Day:       day,
				StartMin:  startMin,
				EndMin:    endMin,
				Title:     title,
				Room:      pickRoom(inside),
				SourceURL: sourceURL,
			})
		}
	}
	return slots
}

// padToSameLength space-fills every line of a block to the width of the
// longest one, as rune slices so column indexes line up with anchor columns.
func padToSameLength(lines []string) [][]rune {
	width := 0
	runes := make([][]rune, len(lines))
	for i, line := range lines {
		runes[i] = []rune(line)
		if len(runes[i]) > width {
			width = len(runes[i])
		}
	}
	for i := range runes {
		for len(runes[i]) < width {
			runes[i] = append(runes[i], ' ')
		}
	}
	return runes
}

// sliceBlockText concatenates the trimmed, non-empty column slices of every
// line inside a segment.
func sliceBlockText(block [][]rune, from, to int) string {
	var parts []string
	for _, line := range block {
		slice := strings.TrimRight(string(line[from:to]), " ")
		if strings.TrimSpace(slice) != "" {
			parts = append(parts, slice)
		}
	}
	return strings.Join(parts, "\n")
}
