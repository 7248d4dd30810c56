package model

import "time"

// TimestampLayout is the format of Record.CreatedAt (yyyy-MM-dd HH:mm:ss).
const TimestampLayout = "2006-01-02 15:04:05"

// Record is the domain model for a todo entry.
// ID and CreatedAt are fixed at creation; the rest may change.
type Record struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	CreatedAt string `json:"created_at"`
	Completed bool   `json:"completed"`
}

// FormatTimestamp renders t the way CreatedAt is stored.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
