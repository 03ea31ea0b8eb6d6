package repository

import (
	"time"
)

// timeLayout is the storage format for updated_at.
const timeLayout = time.RFC3339Nano

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

// parseStoredTime parses an updated_at value. Unparseable values yield the zero time.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
