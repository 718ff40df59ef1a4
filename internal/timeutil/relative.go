package timeutil

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a message timestamp the way the conversation
// list shows it. Deterministic in (now, ts).
func FormatRelativeTime(now, ts time.Time) string {
	elapsed := now.Sub(ts)

	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return ts.Format("01/02/06")
	}
}
