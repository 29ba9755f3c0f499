package app

import "fmt"

// formatBytes renders a byte count in the largest unit that keeps the value
// above 1, with one decimal place.
func formatBytes(b uint64) string {
	const (
		kb = 1 << 10
		mb = kb << 10
		gb = mb << 10
		tb = gb << 10
	)
	v := float64(b)
	switch {
	case v >= tb:
		return fmt.Sprintf("%.1f TB", v/tb)
	case v >= gb:
		return fmt.Sprintf("%.1f GB", v/gb)
	case v >= mb:
		return fmt.Sprintf("%.1f MB", v/mb)
	case v >= kb:
		return fmt.Sprintf("%.1f KB", v/kb)
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatRate renders a per-second byte rate.
func formatRate(bps uint64) string {
	return formatBytes(bps) + "/s"
}

// percentOf returns part/total as a percentage, 0 when total is 0.
func percentOf(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func truncateWithEllipsis(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
