package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/vmicha/rozvrh/pkg/schedule"
)

func sampleRows() []schedule.MergedRow {
	return []schedule.MergedRow{
		{
			Slot:   schedule.Slot{Day: schedule.Monday, StartMin: 420, EndMin: 480, Title: "ALG201", Room: "t05a"},
			Groups: []string{"1bc_API_1", "1bc_API_2"},
		},
		{
			Slot:   schedule.Slot{Day: schedule.Monday, StartMin: 540, EndMin: 600, Title: "@SJAZ01"},
			Groups: []string{"1bc_API_1"},
		},
		{
			Slot:   schedule.Slot{Day: schedule.Tuesday, StartMin: 480, EndMin: 540, Title: "FYZ101", Room: "b201"},
			Groups: []string{"1bc_API_2"},
		},
	}
}

func TestRecords(t *testing.T) {
	got := Records(sampleRows())

	want := []Record{
		{Day: "Pon", Start: "07:00", End: "08:00", Title: "ALG201", Room: "t05a", Groups: []string{"1bc_API_1", "1bc_API_2"}},
		{Day: "Pon", Start: "09:00", End: "10:00", Title: "@SJAZ01", Groups: []string{"1bc_API_1"}},
		{Day: "Uto", Start: "08:00", End: "09:00", Title: "FYZ101", Room: "b201", Groups: []string{"1bc_API_2"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v; want %v", got, want)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRows()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded []Record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if !reflect.DeepEqual(decoded, Records(sampleRows())) {
		t.Errorf("decoded = %v; want %v", decoded, Records(sampleRows()))
	}
}

func TestWriteJSONOmitsEmptyRoom(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRows()[1:2]); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), `"room"`) {
		t.Errorf("output has an empty room field:\n%s", buf.String())
	}
}

func TestWriteTablePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleRows(), false); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines; want 5:\n%s", len(lines), out)
	}
	if lines[0] != "Pon" {
		t.Errorf("first line = %q; want day header %q", lines[0], "Pon")
	}
	if lines[3] != "Uto" {
		t.Errorf("fourth line = %q; want day header %q", lines[3], "Uto")
	}
	if !strings.Contains(lines[1], "07:00-08:00") || !strings.Contains(lines[1], "ALG201") {
		t.Errorf("slot line = %q", lines[1])
	}
	if !strings.Contains(lines[1], "1bc_API_1, 1bc_API_2") {
		t.Errorf("slot line misses group list: %q", lines[1])
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleRows(), false); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Both Monday slot lines share the same group-list column.
	groupCol1 := strings.Index(lines[1], "1bc_API_1")
	groupCol2 := strings.Index(lines[2], "1bc_API_1")
	if groupCol1 != groupCol2 {
		t.Errorf("group columns differ: %d vs %d\n%q\n%q", groupCol1, groupCol2, lines[1], lines[2])
	}
}
