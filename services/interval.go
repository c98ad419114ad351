package services

import "time"

// RangesOverlap reports whether the closed calendar-day ranges
// [candidateStart, candidateEnd] and [queryStart, queryEnd] share at least
// one day. Both bounds are inclusive: a booking ending on day D leaves the
// apartment free from D+1, and a price period starting on D already prices D.
// Covers full containment either way as well as partial overlap.
func RangesOverlap(queryStart, queryEnd, candidateStart, candidateEnd time.Time) bool {
	return !candidateStart.After(queryEnd) && !candidateEnd.Before(queryStart)
}

// DateOnly strips the time-of-day component; all range math in this package
// works at calendar-day precision.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
