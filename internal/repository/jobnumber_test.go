package repository

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayPrefixUsesUTCDate(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC the same day.
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 1, 4, 23, 30, 0, 0, loc)
	assert.Equal(t, "DC-20260104-", dayPrefix(at))

	// 01:30 in UTC+2 is still the previous UTC day.
	at = time.Date(2026, 1, 5, 1, 30, 0, 0, loc)
	assert.Equal(t, "DC-20260104-", dayPrefix(at))
}

func TestFormatJobNumber(t *testing.T) {
	prefix := "DC-20260104-"
	assert.Equal(t, "DC-20260104-001", formatJobNumber(prefix, 1))
	assert.Equal(t, "DC-20260104-042", formatJobNumber(prefix, 42))
	assert.Equal(t, "DC-20260104-999", formatJobNumber(prefix, 999))
	// Sequences past three digits widen rather than wrap.
	assert.Equal(t, "DC-20260104-1000", formatJobNumber(prefix, 1000))
}

func TestNextSequence(t *testing.T) {
	cases := []struct {
		name string
		last string
		want int
	}{
		{"first of the day", "", 1},
		{"increments", "DC-20260104-001", 2},
		{"double digits", "DC-20260104-041", 42},
		{"past padding width", "DC-20260104-999", 1000},
		{"malformed suffix restarts", "DC-20260104-abc", 1},
		{"trailing dash restarts", "DC-20260104-", 1},
		{"no dash restarts", "garbage", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextSequence(tc.last))
		})
	}
}

func TestAllocationSequenceIsDenseAndDistinct(t *testing.T) {
	// Simulate a day of 200 sequential allocations the way tryCreate
	// derives them: each call reads the previous highest number.
	prefix := dayPrefix(time.Now())
	seen := make(map[string]bool, 200)
	last := ""
	for i := 0; i < 200; i++ {
		n := formatJobNumber(prefix, nextSequence(last))
		assert.False(t, seen[n], "duplicate job number %s", n)
		seen[n] = true
		last = n
	}
	assert.True(t, seen[formatJobNumber(prefix, 1)])
	assert.True(t, seen[formatJobNumber(prefix, 200)])
	assert.Len(t, seen, 200)
}

// memTable stands in for the job_cards table: reads of the day's last
// number are unsynchronized snapshots, inserts enforce the unique key.
// This mirrors how CreateWithNumber behaves across database sessions,
// where the retry loop absorbs duplicate-key conflicts.
type memTable struct {
	mu   sync.Mutex
	used map[string]bool
	last string
}

func (m *memTable) readLast() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *memTable) insert(n string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.used[n] {
		return false // duplicate key
	}
	m.used[n] = true
	if n > m.last {
		m.last = n
	}
	return true
}

func (m *memTable) allocate(prefix string) string {
	for {
		n := formatJobNumber(prefix, nextSequence(m.readLast()))
		if m.insert(n) {
			return n
		}
	}
}

func TestConcurrentAllocationsAreDistinct(t *testing.T) {
	prefix := dayPrefix(time.Now())
	table := &memTable{used: make(map[string]bool)}

	const workers = 200
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- table.allocate(prefix)
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, workers)
	for n := range results {
		assert.False(t, seen[n], "duplicate job number %s", n)
		assert.True(t, strings.HasPrefix(n, prefix), "job number %s lacks day prefix", n)
		seen[n] = true
	}
	require.Len(t, seen, workers)
}
