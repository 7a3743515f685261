package schedule

// SameClass reports whether two entries denote the same class: identical
// subject, teacher and time window.  Group is deliberately excluded — that
// is exactly what separates "one class shared by several groups" from two
// different classes colliding.  Room and day are not compared either;
// callers scope their candidate sets to one room and day first.
func SameClass(a, b *Entry) bool {
	return a.SubjectID == b.SubjectID &&
		sameTeacher(a.TeacherID, b.TeacherID) &&
		minuteOfDay(a.StartsAt) == minuteOfDay(b.StartsAt) &&
		minuteOfDay(a.EndsAt) == minuteOfDay(b.EndsAt)
}

// sameTeacher treats two unassigned slots as equal.
func sameTeacher(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
