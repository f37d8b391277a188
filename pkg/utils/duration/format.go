// ABOUTME: Reading time estimation and human-readable duration formatting
// ABOUTME: Used for the metadata header of rendered articles and markdown exports

package duration

import (
	"fmt"
	"strings"
	"time"
)

// WordsPerMinute is the average adult silent reading speed
const WordsPerMinute = 230

// ReadingTime estimates how long text takes to read, rounded up to a whole
// minute. Empty text takes zero time.
func ReadingTime(text string) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return time.Duration(minutes) * time.Minute
}

// HumanReadable formats d as "1 hour 5 minutes". Durations under a minute
// round up to "1 minute"; zero yields "".
func HumanReadable(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	totalMinutes := int((d + time.Minute - 1) / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	parts := []string{}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour", hours))
		if hours > 1 {
			parts[len(parts)-1] += "s"
		}
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute", minutes))
		if minutes > 1 {
			parts[len(parts)-1] += "s"
		}
	}

	return strings.Join(parts, " ")
}
