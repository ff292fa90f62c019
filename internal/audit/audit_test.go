package audit

import (
	"testing"
	"time"
)

func TestLogger_LogAndEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	// Log some events
	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Type: EventCreate, Run: "gapnet-baseline", Details: "config=gapnet.json"},
		{Timestamp: now.Add(time.Second), Type: EventStart, Run: "gapnet-baseline"},
		{Timestamp: now.Add(2 * time.Second), Type: EventCheckpoint, Run: "gapnet-baseline", Epoch: 20, Details: "ensemble-1.pth.tar"},
		{Timestamp: now.Add(3 * time.Second), Type: EventComplete, Run: "gapnet-baseline"},
	}

	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	// Read them back
	result, err := logger.Events("gapnet-baseline")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != len(events) {
		t.Fatalf("got %d events, want %d", len(result), len(events))
	}

	for i, e := range result {
		if e.Type != events[i].Type {
			t.Errorf("event %d: type = %q, want %q", i, e.Type, events[i].Type)
		}
		if e.Run != events[i].Run {
			t.Errorf("event %d: run = %q, want %q", i, e.Run, events[i].Run)
		}
		if e.Epoch != events[i].Epoch {
			t.Errorf("event %d: epoch = %d, want %d", i, e.Epoch, events[i].Epoch)
		}
		if e.Details != events[i].Details {
			t.Errorf("event %d: details = %q, want %q", i, e.Details, events[i].Details)
		}
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	result, err := logger.Events("nonexistent")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_LogEvent(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogEvent(EventCreate, "my-run", "config=demo.json"); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	events, err := logger.Events("my-run")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Type != EventCreate {
		t.Errorf("type = %q, want %q", e.Type, EventCreate)
	}
	if e.Run != "my-run" {
		t.Errorf("run = %q, want %q", e.Run, "my-run")
	}
	if e.Details != "config=demo.json" {
		t.Errorf("details = %q, want %q", e.Details, "config=demo.json")
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set automatically")
	}
}

func TestLogger_LogCheckpoint(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogCheckpoint("my-run", 40, "ensemble-2.pth.tar"); err != nil {
		t.Fatalf("LogCheckpoint failed: %v", err)
	}

	events, err := logger.Events("my-run")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Epoch != 40 {
		t.Errorf("epoch = %d, want 40", events[0].Epoch)
	}
}

func TestLogger_Remove(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	logger.LogEvent(EventCreate, "removable", "")

	if err := logger.Remove("removable"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	events, err := logger.Events("removable")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after remove, want 0", len(events))
	}
}

func TestLogger_RemoveNonexistent(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	// Should not error
	if err := logger.Remove("nonexistent"); err != nil {
		t.Errorf("Remove should not error for nonexistent: %v", err)
	}
}

func TestLogger_EventOrder(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	base := time.Now()
	for i := 0; i < 5; i++ {
		logger.Log(Event{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Type:      EventCheckpoint,
			Run:       "order-test",
			Epoch:     (i + 1) * 20,
		})
	}

	events, _ := logger.Events("order-test")
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}

	// Events should be in chronological order (append-only)
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("event %d timestamp before event %d", i, i-1)
		}
	}
}
