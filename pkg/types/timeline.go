package types

import "time"

// TimelineEntry is one status-change event on an order's audit trail.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Timeline is the append-only status history of an order. Entries are only
// ever appended; prior entries are never rewritten.
type Timeline []TimelineEntry
