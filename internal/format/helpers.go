package format

import (
	"fmt"
	"strings"
	"time"
)

// Check returns "✅" for done and "⬜" otherwise.
func Check(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}

// Bar renders a ten-cell progress bar for current out of total.
func Bar(current, total int) string {
	if total <= 0 {
		return strings.Repeat("░", 10)
	}
	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}
	filled := current * 10 / total
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// Progress renders "[3/18] ███░░░░░░░ 16%".
func Progress(current, total int) string {
	pct := 0
	if total > 0 {
		pct = current * 100 / total
	}
	return fmt.Sprintf("[%d/%d] %s %d%%", current, total, Bar(current, total), pct)
}

// Timestamp formats t in local time as "2006-01-02 15:04:05"; the zero time
// renders as "-".
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
