package schedule

import (
	"sort"
	"strings"
)

// Merge folds already-tagged rows into a deduplicated schedule: rows with
// equal identity keys collapse into one MergedRow whose Groups holds every
// distinct source label in first-seen order. Merge is idempotent and
// associative, so re-merging a result with more input is equivalent to
// merging everything at once.
func Merge(rows []MergedRow) []MergedRow {
	byKey := make(map[string]*MergedRow, len(rows))
	var order []string

	for _, r := range rows {
		key := r.Key()
		existing, ok := byKey[key]
		if !ok {
			clone := MergedRow{Slot: r.Slot, Groups: append([]string(nil), r.Groups...)}
			byKey[key] = &clone
			order = append(order, key)
			continue
		}
		for _, g := range r.Groups {
			if !containsLabel(existing.Groups, g) {
				existing.Groups = append(existing.Groups, g)
			}
		}
	}

	out := make([]MergedRow, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sortRows(out)
	return out
}

// MergeTagged merges freshly parsed slots, resolving each slot's source
// label through labelOf.
func MergeTagged(slots []Slot, labelOf func(Slot) string) []MergedRow {
	rows := make([]MergedRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, MergedRow{Slot: s, Groups: []string{labelOf(s)}})
	}
	return Merge(rows)
}

// sortRows orders rows by day, then start time, then title.
func sortRows(rows []MergedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartMin != b.StartMin {
			return a.StartMin < b.StartMin
		}
		return strings.Compare(a.Title, b.Title) < 0
	})
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
