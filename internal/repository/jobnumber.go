package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// jobNumberPrefix is the fixed leading segment of every job number.
const jobNumberPrefix = "DC"

// dayPrefix returns the date-scoped prefix for job numbers minted at t,
// e.g. "DC-20260104-". The date is always taken in UTC so that numbers
// roll over at the same instant regardless of server timezone.
func dayPrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", jobNumberPrefix, t.UTC().Format("20060102"))
}

// formatJobNumber builds the full job number for a day prefix and a
// sequence value, zero-padding the sequence to three digits. The fixed
// width keeps lexicographic and numeric ordering identical, which is what
// lets the allocator find the day's highest number with ORDER BY DESC.
func formatJobNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// nextSequence parses the trailing sequence of the highest existing job
// number and returns the next value. An empty last number (no cards yet
// today) starts the day at 1. A malformed trailing segment also restarts
// at 1 rather than failing the submission.
func nextSequence(last string) int {
	if last == "" {
		return 1
	}
	idx := strings.LastIndex(last, "-")
	if idx < 0 || idx == len(last)-1 {
		return 1
	}
	n, err := strconv.Atoi(last[idx+1:])
	if err != nil || n < 1 {
		return 1
	}
	return n + 1
}
