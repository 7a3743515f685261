package schedule

import "time"

// minuteOfDay converts a time-of-day string ("HH:MM:SS" or "HH:MM") into
// minutes since midnight.  Seconds are ignored; class schedules are kept at
// minute granularity.  Malformed input maps to 0 so the comparison stays
// total.
func minuteOfDay(s string) int {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		if t, err = time.Parse("15:04", s); err != nil {
			return 0
		}
	}
	return t.Hour()*60 + t.Minute()
}

// Overlaps reports whether the closed-open windows [startA, endA) and
// [startB, endB) on the same day share any instant.  Touching endpoints
// (one class ending exactly when the next begins) do not overlap.
//
// The three-clause form is kept from the original rule set: A starts inside
// B, A ends inside B, or A fully contains B.  For well-formed windows
// (start < end) this is equivalent to !(endA <= startB || startA >= endB).
func Overlaps(startA, endA, startB, endB string) bool {
	s1, f1 := minuteOfDay(startA), minuteOfDay(endA)
	s2, f2 := minuteOfDay(startB), minuteOfDay(endB)
	return (s1 >= s2 && s1 < f2) ||
		(f1 > s2 && f1 <= f2) ||
		(s1 < s2 && f1 > f2)
}
