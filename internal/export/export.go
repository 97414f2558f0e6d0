// Package export renders merged schedules as flat records, JSON, or an
// aligned weekly text table.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/vmicha/rozvrh/pkg/schedule"
)

// Record is one merged row flattened for persistence or test fixtures.
type Record struct {
	Day    string   `json:"day"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Title  string   `json:"title"`
	Room   string   `json:"room,omitempty"`
	Groups []string `json:"groups"`
}

// Records flattens merged rows into export records.
func Records(rows []schedule.MergedRow) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record{
			Day:    r.Day.String(),
			Start:  schedule.FormatHM(r.StartMin),
			End:    schedule.FormatHM(r.EndMin),
			Title:  r.Title,
			Room:   r.Room,
			Groups: r.Groups,
		})
	}
	return out
}

// WriteJSON writes the rows as an indented JSON record array.
func WriteJSON(w io.Writer, rows []schedule.MergedRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(rows)); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}

// WriteTable writes an aligned weekly rendering grouped by day. Elective
// titles keep their marker and are tinted when colors are enabled.
func WriteTable(w io.Writer, rows []schedule.MergedRow, colored bool) error {
	dayColor := color.New(color.FgHiMagenta, color.Bold)
	electiveColor := color.New(color.FgYellow)
	if !colored {
		dayColor.DisableColor()
		electiveColor.DisableColor()
	}

	titleWidth, roomWidth := 0, 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r.Title); n > titleWidth {
			titleWidth = n
		}
		if n := runewidth.StringWidth(r.Room); n > roomWidth {
			roomWidth = n
		}
	}

	var currentDay schedule.Day = -1
	for _, r := range rows {
		if r.Day != currentDay {
			currentDay = r.Day
			if _, err := dayColor.Fprintf(w, "%s\n", r.Day); err != nil {
				return err
			}
		}

		title := runewidth.FillRight(r.Title, titleWidth)
		if colored && schedule.IsElectiveTitle(r.Title) {
			title = electiveColor.Sprint(title)
		}
		line := fmt.Sprintf("  %s-%s  %s  %s  %s\n",
			schedule.FormatHM(r.StartMin),
			schedule.FormatHM(r.EndMin),
			title,
			runewidth.FillRight(r.Room, roomWidth),
			strings.Join(r.Groups, ", "),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
