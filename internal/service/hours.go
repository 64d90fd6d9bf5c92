// Package service holds the job-card submission orchestrator and the
// derived-field arithmetic it relies on.
package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadTime is returned when an arrival or departure time is not a
// valid HH:MM wall-clock value.
var ErrBadTime = errors.New("invalid HH:MM time")

// ComputeHours derives the worked duration in hours from wall-clock
// HH:MM arrival and departure times. Shifts crossing midnight wrap: the
// duration is taken modulo 24 hours, so 23:30 to 00:15 is 0.75 hours.
// Equal times yield zero. The result is rounded to two decimals.
func ComputeHours(arrival, departure string) (float64, error) {
	a, err := parseClock(arrival)
	if err != nil {
		return 0, fmt.Errorf("arrival_time: %w", err)
	}
	d, err := parseClock(departure)
	if err != nil {
		return 0, fmt.Errorf("departure_time: %w", err)
	}
	minutes := (d - a + 24*60) % (24 * 60)
	hours := float64(minutes) / 60.0
	return math.Round(hours*100) / 100, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return hh*60 + mm, nil
}
