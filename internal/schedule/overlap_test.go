package schedule_test

import (
	"testing"

	"github.com/sihul/sihul-backend/internal/schedule"
)

func TestOverlaps(t *testing.T) {
	// Reference window: 08:00-12:00.
	cases := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{"well before", "05:00:00", "07:00:00", false},
		{"ends at reference start", "06:00:00", "08:00:00", false},
		{"straddles reference start", "07:00:00", "09:00:00", true},
		{"starts at reference start", "08:00:00", "10:00:00", true},
		{"fully inside", "09:00:00", "11:00:00", true},
		{"ends at reference end", "10:00:00", "12:00:00", true},
		{"straddles reference end", "11:00:00", "13:00:00", true},
		{"starts at reference end", "12:00:00", "14:00:00", false},
		{"well after", "13:00:00", "15:00:00", false},
		{"identical window", "08:00:00", "12:00:00", true},
		{"contains reference", "07:00:00", "13:00:00", true},
		{"same start, longer", "08:00:00", "13:00:00", true},
		{"same end, earlier start", "07:00:00", "12:00:00", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := schedule.Overlaps("08:00:00", "12:00:00", c.start, c.end); got != c.expected {
				t.Errorf("Overlaps(08:00,12:00, %s,%s) = %v, want %v", c.start, c.end, got, c.expected)
			}
		})
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	pairs := [][4]string{
		{"08:00:00", "09:00:00", "09:00:00", "10:00:00"},
		{"08:00:00", "10:00:00", "09:00:00", "11:00:00"},
		{"08:00:00", "12:00:00", "09:00:00", "10:00:00"},
		{"08:00:00", "10:00:00", "08:00:00", "10:00:00"},
		{"06:00:00", "07:00:00", "09:00:00", "10:00:00"},
	}
	for _, p := range pairs {
		ab := schedule.Overlaps(p[0], p[1], p[2], p[3])
		ba := schedule.Overlaps(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("Overlaps not symmetric for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestOverlapsIdentity(t *testing.T) {
	if !schedule.Overlaps("07:30:00", "09:15:00", "07:30:00", "09:15:00") {
		t.Error("an interval must overlap itself")
	}
}

func TestOverlapsMinuteFormat(t *testing.T) {
	// "HH:MM" and "HH:MM:SS" must be interchangeable.
	if !schedule.Overlaps("08:00", "10:00", "09:00:00", "11:00:00") {
		t.Error("expected overlap across time formats")
	}
}
