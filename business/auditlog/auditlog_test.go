package auditlog

import (
	"fmt"
	"sync"
	"testing"
)

func TestLogRecordAndRecent(t *testing.T) {
	l := NewLog(5)

	l.Record("admin", "pricing_rule.create", "rule:1", "weekend promo")
	l.Record("admin", "pricing_rule.update", "rule:1", "weekend promo")

	entries := l.Recent(0)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}

	// newest first
	if entries[0].Action != "pricing_rule.update" {
		t.Errorf("first action = %s, want pricing_rule.update", entries[0].Action)
	}
	if entries[1].Action != "pricing_rule.create" {
		t.Errorf("second action = %s, want pricing_rule.create", entries[1].Action)
	}
}

func TestLogEvictsOldestPastCapacity(t *testing.T) {
	l := NewLog(3)

	for i := 1; i <= 5; i++ {
		l.Record("admin", fmt.Sprintf("action-%d", i), "", "")
	}

	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}

	entries := l.Recent(0)
	if entries[0].Action != "action-5" {
		t.Errorf("newest = %s, want action-5", entries[0].Action)
	}
	if entries[2].Action != "action-3" {
		t.Errorf("oldest retained = %s, want action-3", entries[2].Action)
	}
}

func TestLogRecentLimit(t *testing.T) {
	l := NewLog(10)
	for i := 0; i < 6; i++ {
		l.Record("admin", fmt.Sprintf("action-%d", i), "", "")
	}

	entries := l.Recent(2)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Action != "action-5" {
		t.Errorf("newest = %s, want action-5", entries[0].Action)
	}
}

func TestLogDefaultCapacity(t *testing.T) {
	l := NewLog(0)
	if cap(l.buf) != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", cap(l.buf), DefaultCapacity)
	}
}

func TestLogConcurrentRecord(t *testing.T) {
	l := NewLog(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Record("worker", "action", "", "")
			}
		}()
	}
	wg.Wait()

	if l.Len() != 100 {
		t.Errorf("len = %d, want capacity 100", l.Len())
	}
}
