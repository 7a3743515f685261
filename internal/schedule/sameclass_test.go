package schedule_test

import (
	"testing"

	"github.com/sihul/sihul-backend/internal/schedule"
)

func TestSameClass(t *testing.T) {
	base := schedule.Entry{
		GroupID:   1,
		SubjectID: 10,
		TeacherID: u64p(7),
		RoomID:    3,
		Day:       "Lunes",
		StartsAt:  "08:00:00",
		EndsAt:    "10:00:00",
	}

	t.Run("reflexive", func(t *testing.T) {
		if !schedule.SameClass(&base, &base) {
			t.Error("an entry must be the same class as itself")
		}
	})

	t.Run("group excluded from identity", func(t *testing.T) {
		other := base
		other.GroupID = 2
		if !schedule.SameClass(&base, &other) {
			t.Error("a different group attending the identical class is still the same class")
		}
	})

	t.Run("different subject", func(t *testing.T) {
		other := base
		other.SubjectID = 11
		if schedule.SameClass(&base, &other) {
			t.Error("different subjects must not match")
		}
	})

	t.Run("different teacher", func(t *testing.T) {
		other := base
		other.TeacherID = u64p(8)
		if schedule.SameClass(&base, &other) {
			t.Error("different teachers must not match")
		}
	})

	t.Run("assigned vs unassigned teacher", func(t *testing.T) {
		other := base
		other.TeacherID = nil
		if schedule.SameClass(&base, &other) {
			t.Error("assigned and unassigned teacher must not match")
		}
	})

	t.Run("both teachers unassigned", func(t *testing.T) {
		a, b := base, base
		a.TeacherID, b.TeacherID = nil, nil
		if !schedule.SameClass(&a, &b) {
			t.Error("two unassigned teachers count as equal")
		}
	})

	t.Run("different window", func(t *testing.T) {
		other := base
		other.StartsAt = "09:00:00"
		if schedule.SameClass(&base, &other) {
			t.Error("a shifted window is a different class")
		}
	})
}

func TestAggregateHeadcount(t *testing.T) {
	entries := []schedule.Entry{
		{Headcount: u32p(20)},
		{Headcount: nil}, // unknown counts as zero
		{Headcount: u32p(15)},
	}
	if got := schedule.AggregateHeadcount(entries); got != 35 {
		t.Errorf("AggregateHeadcount = %d, want 35", got)
	}
	if got := schedule.AggregateHeadcount(nil); got != 0 {
		t.Errorf("AggregateHeadcount(nil) = %d, want 0", got)
	}
}
