package schedule

import "testing"

func TestPickTitleLongestToken(t *testing.T) {
	got := pickTitle("07:00 ALG201 t05a")
	if got != "ALG201" {
		t.Errorf("pickTitle = %q; want %q", got, "ALG201")
	}
}

func TestPickTitleSkipsLabels(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Pon Hod Zac", ""},
		{"Pon MAT101", "MAT101"},
		{"Štv FYZ102", "FYZ102"},
		{"ab cd", ""},
	}
	for _, c := range cases {
		if got := pickTitle(c.text); got != c.want {
			t.Errorf("pickTitle(%q) = %q; want %q", c.text, got, c.want)
		}
	}
}

func TestPickTitleKeepsElectiveMarker(t *testing.T) {
	if got := pickTitle("x @VOLEJBAL y"); got != "@VOLEJBAL" {
		t.Errorf("pickTitle = %q; want %q", got, "@VOLEJBAL")
	}
}

func TestPickTitleTieKeepsFirst(t *testing.T) {
	if got := pickTitle("AAA111 BBB222"); got != "AAA111" {
		t.Errorf("pickTitle = %q; want first of equal-length tokens %q", got, "AAA111")
	}
}

func TestPickRoom(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"PROG-101 c101", "c101"},
		{"AB123", "AB123"},
		{"t05a something", "t05a"},
		{"no room here", ""},
		{"ALG201", ""}, // three leading letters, not a room shape
	}
	for _, c := range cases {
		if got := pickRoom(c.text); got != c.want {
			t.Errorf("pickRoom(%q) = %q; want %q", c.text, got, c.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	got := normalizeText(" Pon  \t x ")
	if got != "Pon x" {
		t.Errorf("normalizeText = %q; want %q", got, "Pon x")
	}
}
