package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		ts       time.Time
		expected string
	}{
		{"thirty seconds", now.Add(-30 * time.Second), "Just now"},
		{"fifty nine seconds", now.Add(-59 * time.Second), "Just now"},
		{"five minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"fifty nine minutes", now.Add(-59 * time.Minute), "59m ago"},
		{"two hours", now.Add(-2 * time.Hour), "2h ago"},
		{"twenty three hours", now.Add(-23 * time.Hour), "23h ago"},
		{"three days", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"six days", now.Add(-6 * 24 * time.Hour), "6d ago"},
		{"ten days", now.Add(-10 * 24 * time.Hour), "03/05/24"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatRelativeTime(now, tc.ts))
		})
	}
}

func TestFormatRelativeTimeDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	ts := now.Add(-90 * time.Minute)

	first := FormatRelativeTime(now, ts)
	second := FormatRelativeTime(now, ts)

	assert.Equal(t, first, second)
	assert.Equal(t, "1h ago", first)
}
