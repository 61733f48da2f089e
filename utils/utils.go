// Package utils holds the helpers of the lowpoly command line tool.
package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the layout of the default output file names.
const TimestampLayout = "2006-01-02-15-04-05"

// FormatTime formats time.Duration output to a human readable value.
// Durations below one minute keep two decimals.
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	var (
		days    = int64(d / (24 * time.Hour))
		hours   = int64(d/time.Hour) % 24
		minutes = int64(d/time.Minute) % 60
		seconds = int64(d/time.Second) % 60
	)
	switch {
	case days > 0:
		return fmt.Sprintf("%dd:%dh:%dm:%ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh:%dm:%ds", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%dm:%ds", minutes, seconds)
	}
}

// TimestampName returns the file name t formats to with the given extension.
func TimestampName(t time.Time, ext string) string {
	return t.Format(TimestampLayout) + "." + strings.TrimPrefix(ext, ".")
}

// ReplaceExt swaps the extension of path.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(ext, ".")
}
