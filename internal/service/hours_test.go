package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHours(t *testing.T) {
	cases := []struct {
		name      string
		arrival   string
		departure string
		want      float64
	}{
		{"same day", "08:00", "16:30", 8.5},
		{"short visit", "09:15", "09:45", 0.5},
		{"crosses midnight", "23:30", "00:15", 0.75},
		{"overnight shift", "22:00", "06:00", 8},
		{"equal times", "10:00", "10:00", 0},
		{"rounded to two decimals", "08:00", "08:20", 0.33},
		{"whitespace tolerated", " 08:00 ", "12:00", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeHours(tc.arrival, tc.departure)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeHoursRejectsBadInput(t *testing.T) {
	cases := []struct {
		name      string
		arrival   string
		departure string
	}{
		{"missing colon", "0800", "16:00"},
		{"empty arrival", "", "16:00"},
		{"hour out of range", "24:00", "16:00"},
		{"minute out of range", "08:60", "16:00"},
		{"not a number", "ab:cd", "16:00"},
		{"bad departure", "08:00", "16:5x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeHours(tc.arrival, tc.departure)
			assert.ErrorIs(t, err, ErrBadTime)
		})
	}
}
