package domain

import "time"

// ActivityEntry is one admin/back-office action recorded in the bounded
// in-memory activity log. Entries are never persisted; the log keeps the
// most recent N and drops the oldest past capacity.
type ActivityEntry struct {
	ID        uint64    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
