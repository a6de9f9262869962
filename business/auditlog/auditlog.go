package auditlog

import (
	"sync"
	"time"

	"jammshop/domain"
)

const DefaultCapacity = 10000

// Log is a fixed-capacity in-memory activity log. Appends past capacity
// overwrite the oldest entry. Safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	buf    []domain.ActivityEntry
	head   int
	size   int
	nextID uint64
}

// NewLog builds a log holding at most capacity entries; non-positive
// capacities fall back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		buf: make([]domain.ActivityEntry, capacity),
	}
}

// Record appends one entry, evicting the oldest when full.
func (l *Log) Record(actor, action, target, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	entry := domain.ActivityEntry{
		ID:        l.nextID,
		Actor:     actor,
		Action:    action,
		Target:    target,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	pos := (l.head + l.size) % len(l.buf)
	l.buf[pos] = entry

	if l.size < len(l.buf) {
		l.size++
	} else {
		l.head = (l.head + 1) % len(l.buf)
	}
}

// Recent returns up to limit entries, newest first. limit <= 0 returns
// everything retained.
func (l *Log) Recent(limit int) []domain.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > l.size {
		limit = l.size
	}

	out := make([]domain.ActivityEntry, 0, limit)
	for i := 0; i < limit; i++ {
		pos := (l.head + l.size - 1 - i) % len(l.buf)
		out = append(out, l.buf[pos])
	}

	return out
}

// Len reports how many entries are currently retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}
