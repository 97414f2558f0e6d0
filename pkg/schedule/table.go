package schedule

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fallbackAnchorCount is the number of hourly anchors synthesized when a
// header row carries no decodable time tokens (07:00 through 20:00).
const fallbackAnchorCount = 14

// extractFromTable decodes one structured table into slots. The header rows
// above the first day-labelled row yield the per-column minute boundaries;
// the remaining rows are walked with a colspan-aware column cursor under the
// most recently seen day label.
func extractFromTable(table *goquery.Selection, sourceURL string) []Slot {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	firstDayIdx := -1
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		first := row.Children().First()
		if _, ok := ParseDay(normalizeText(first.Text())); ok {
			firstDayIdx = i
			return false
		}
		return true
	})

	headerEnd := firstDayIdx
	if headerEnd <= 0 {
		headerEnd = 2
		if rows.Length() < headerEnd {
			headerEnd = rows.Length()
		}
	}
	boundaries := buildBoundaries(rows.Slice(0, headerEnd))
	slog.Debug("table boundaries", "count", len(boundaries), "firstDayIdx", firstDayIdx)
	if len(boundaries) < 2 {
		return nil
	}

	startAt := firstDayIdx
	if startAt < 0 {
		startAt = 1
	}

	var slots []Slot
	haveDay := false
	var currentDay Day

	rows.Each(func(ri int, row *goquery.Selection) {
		if ri < startAt {
			return
		}
		cells := row.Children()
		if cells.Length() == 0 {
			return
		}

		ci := 0
		if day, ok := ParseDay(normalizeText(cells.First().Text())); ok {
			currentDay = day
			haveDay = true
			ci = 1
		}
		if !haveDay {
			return
		}

		colCursor := 0
		for ; ci < cells.Length(); ci++ {
			cell := cells.Eq(ci)
			span := cellSpan(cell)

			lines := cellLines(cell)
			if len(lines) > 0 {
				startMin := boundaries[0]
				if colCursor < len(boundaries) {
					startMin = boundaries[colCursor]
				}
				endIdx := colCursor + span
				if endIdx > len(boundaries)-1 {
					endIdx = len(boundaries) - 1
				}
				endMin := boundaries[endIdx]

				raw := strings.Join(lines, " ")
				title := lines[0]
				if title == "" {
					title = pickTitle(raw)
				}

				room := ""
				for _, ln := range lines[1:] {
					if r := pickRoom(ln); r != "" {
						room = r
						break
					}
				}
				if room == "" {
					room = pickRoom(raw)
				}

				if title != "" && startMin < endMin {
					slots = append(slots, Slot{
						Day:       currentDay,
						StartMin:  startMin,
						EndMin:    endMin,
						Title:     title,
						Room:      room,
						SourceURL: sourceURL,
					})
				}
			}

			colCursor += span
		}
	})

	return slots
}

// buildBoundaries selects the header row richest in HH:MM tokens and turns
// it into a minute-of-day boundary per logical column, plus one closing
// boundary an hour past the last anchor. A header without any time token
// falls back to fourteen hourly anchors starting at 07:00.
func buildBoundaries(headerRows *goquery.Selection) []int {
	var bestRow *goquery.Selection
	bestCount := 0
	headerRows.Each(func(_ int, row *goquery.Selection) {
		count := 0
		row.Children().Each(func(i int, cell *goquery.Selection) {
			if i == 0 {
				return // corner label ("Hod"/"Zac")
			}
			count += len(timeRe.FindAllString(cellText(cell), -1))
		})
		if count > bestCount {
			bestCount = count
			bestRow = row
		}
	})

	if bestRow == nil {
		return hourlyBoundaries(7*60, fallbackAnchorCount)
	}

	cols := 0
	var anchors []int
	bestRow.Children().Each(func(i int, cell *goquery.Selection) {
		if i == 0 {
			return
		}
		cols += cellSpan(cell)
		// A cell may show a start-end pair; the later time anchors the
		// boundary.
		matches := timeRe.FindAllStringSubmatch(cellText(cell), -1)
		if len(matches) > 0 {
			anchors = append(anchors, parseTimeToken(matches[len(matches)-1]))
		}
	})
	if cols == 0 {
		cols = fallbackAnchorCount
	}

	if len(anchors) < 2 {
		return hourlyBoundaries(7*60, cols)
	}
	for len(anchors) < cols {
		anchors = append(anchors, anchors[len(anchors)-1]+60)
	}
	if len(anchors) > cols {
		anchors = anchors[:cols]
	}

	return append(anchors, anchors[len(anchors)-1]+60)
}

func hourlyBoundaries(startMin, count int) []int {
	boundaries := make([]int, count+1)
	for i := range boundaries {
		boundaries[i] = startMin + i*60
	}
	return boundaries
}

func cellSpan(cell *goquery.Selection) int {
	span, err := strconv.Atoi(cell.AttrOr("colspan", "1"))
	if err != nil || span < 1 {
		return 1
	}
	return span
}

// cellLines splits a cell into trimmed non-empty lines, treating <br> as the
// only line break that matters.
func cellLines(cell *goquery.Selection) []string {
	var lines []string
	for _, part := range strings.Split(cellText(cell), "\n") {
		part = strings.TrimSpace(strings.ReplaceAll(part, " ", " "))
		if part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}

// cellText renders a cell as plain text with explicit <br> breaks kept as
// newlines.
func cellText(cell *goquery.Selection) string {
	cell.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	return cell.Text()
}
