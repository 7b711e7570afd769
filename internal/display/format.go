package display

import (
	"fmt"
	"strings"
)

// FormatBytes returns a human-readable size (B, KB, MB, GB).
func FormatBytes(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/(1024*1024*1024))
	}
}

// FormatBitrate returns a human-readable bitrate for a bits/sec value
// (e.g. "843.00 Kbps", "5.22 Mbps").
func FormatBitrate(bps float64) string {
	switch {
	case bps < 1000:
		return fmt.Sprintf("%.2f bps", bps)
	case bps < 1_000_000:
		return fmt.Sprintf("%.2f Kbps", bps/1000)
	default:
		return fmt.Sprintf("%.2f Mbps", bps/1_000_000)
	}
}

// FormatDuration renders a duration in seconds as "HH:MM:SS", with a day
// prefix once the duration exceeds 24 hours (e.g. "1d 02:15:09").
// Non-positive durations render as "00:00:00".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00:00"
	}
	total := int64(seconds)
	days := total / 86400
	rem := total % 86400
	h := rem / 3600
	m := (rem % 3600) / 60
	s := rem % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseDuration is the inverse of [FormatDuration]: it converts
// "HH:MM:SS" (optionally "Nd HH:MM:SS") back to seconds. Malformed input
// yields 0, matching the tolerance of report reconstruction.
func ParseDuration(formatted string) float64 {
	var days int64
	rest := formatted
	if i := strings.Index(rest, "d "); i > 0 {
		if _, err := fmt.Sscanf(rest[:i], "%d", &days); err != nil {
			return 0
		}
		rest = rest[i+2:]
	}
	var h, m, s int64
	if n, err := fmt.Sscanf(rest, "%d:%d:%d", &h, &m, &s); n != 3 || err != nil {
		return 0
	}
	return float64(days*86400 + h*3600 + m*60 + s)
}
