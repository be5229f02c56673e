package duration

import "testing"

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"hours decimal", "1.5 h", 90},
		{"hours word", "2 hours", 120},
		{"hours abbreviated", "1hr", 60},
		{"hours glued", "2h", 120},
		{"hours decimal glued", "1.5h", 90},
		{"hour marker inside word ignored", "march 5", 5},
		{"hours fraction rounds", "0.25 hours", 15},
		{"hours rounds to nearest", "1.33 hours", 80},
		{"minutes", "45 min", 45},
		{"minutes word", "30 minutes", 30},
		{"minutes short", "20m", 20},
		{"bare number", "25", 25},
		{"number with prose", "around 40 per session", 40},
		{"empty", "", 20},
		{"no digits", "banana", 20},
		{"zero minutes", "0 min", 20},
		{"zero hours", "0 hours", 20},
		{"whitespace only", "   ", 20},
		{"hour marker without number", "an hour", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMinutes(tt.text); got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseMinutesAlwaysPositive(t *testing.T) {
	inputs := []string{"", "-5 min", "0", "inf hours", "NaN h", "...", "-1.5 hours"}
	for _, in := range inputs {
		if got := ParseMinutes(in); got <= 0 {
			t.Errorf("ParseMinutes(%q) = %d, want > 0", in, got)
		}
	}
}
