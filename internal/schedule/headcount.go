package schedule

// AggregateHeadcount sums the enrolled headcount across entries.  A nil
// headcount counts as zero, and an empty slice sums to zero.
func AggregateHeadcount(entries []Entry) uint32 {
	var total uint32
	for i := range entries {
		if entries[i].Headcount != nil {
			total += *entries[i].Headcount
		}
	}
	return total
}

func headcountOf(e *Entry) uint32 {
	if e.Headcount == nil {
		return 0
	}
	return *e.Headcount
}
