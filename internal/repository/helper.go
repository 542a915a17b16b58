package repository

import (
	"fmt"
	"time"
)

// timestampLayout is fixed-width so stored timestamps compare correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in UTC using timestampLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
