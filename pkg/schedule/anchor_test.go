package schedule

import (
	"reflect"
	"testing"
)

func TestBuildTimeMapperClustersNearbyColumns(t *testing.T) {
	lines := []string{
		"07:00  08:00",
		"07:05",
	}
	tm := buildTimeMapper(lines)

	want := []TimeAnchor{{Col: 0, Min: 420}, {Col: 7, Min: 480}}
	if !reflect.DeepEqual(tm.Anchors(), want) {
		t.Errorf("Anchors = %v; want %v", tm.Anchors(), want)
	}
	if tm.StartCol() != 0 {
		t.Errorf("StartCol = %d; want 0", tm.StartCol())
	}
}

func TestTimeMapperInterpolatesAndClamps(t *testing.T) {
	lines := []string{
		"07:00  08:00",
		"",
		"",
		"",
	}
	tm := buildTimeMapper(lines)

	cases := []struct {
		col  int
		want int
	}{
		{-5, 420}, // clamp left
		{0, 420},
		{3, 446}, // 420 + 3/7 * 60, rounded
		{7, 480},
		{100, 480}, // clamp right
	}
	for _, c := range cases {
		if got := tm.Minute(c.col); got != c.want {
			t.Errorf("Minute(%d) = %d; want %d", c.col, got, c.want)
		}
	}
}

func TestBuildTimeMapperSyntheticFallback(t *testing.T) {
	// No decodable time tokens at all: two synthetic anchors spanning
	// 07:00-20:00 over the observed width (minimum 60 columns).
	tm := buildTimeMapper([]string{"abc", "def"})

	want := []TimeAnchor{{Col: 0, Min: 420}, {Col: 60, Min: 1200}}
	if !reflect.DeepEqual(tm.Anchors(), want) {
		t.Errorf("Anchors = %v; want %v", tm.Anchors(), want)
	}
	if got := tm.Minute(30); got != 810 {
		t.Errorf("Minute(30) = %d; want 810", got)
	}
}

func TestBuildTimeMapperMinMinuteWinsInCluster(t *testing.T) {
	// A start-end pair printed in the same column keeps the earlier time.
	lines := []string{
		"08:00                  18:00",
		"07:00",
		"",
		"",
	}
	tm := buildTimeMapper(lines)
	if tm.Anchors()[0].Min != 420 {
		t.Errorf("cluster minute = %d; want 420", tm.Anchors()[0].Min)
	}
}

func TestBuildTimeMapperScanLimit(t *testing.T) {
	// Tokens beyond the scan limit never become anchors.
	lines := make([]string, anchorScanLimit+2)
	lines[anchorScanLimit+1] = "07:00   09:00"
	tm := buildTimeMapper(lines)

	want := []TimeAnchor{{Col: 0, Min: 420}, {Col: 60, Min: 1200}}
	if !reflect.DeepEqual(tm.Anchors(), want) {
		t.Errorf("Anchors = %v; want synthetic %v", tm.Anchors(), want)
	}
}
