// Package audit provides structured event logging for training run
// lifecycle events. Events are stored as JSON Lines (JSONL) files, one
// per run.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate     EventType = "create"
	EventStart      EventType = "start"
	EventCheckpoint EventType = "checkpoint"
	EventComplete   EventType = "complete"
	EventAbort      EventType = "abort"
	EventStale      EventType = "stale"
	EventError      EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Run       string    `json:"run"`
	Epoch     int       `json:"epoch,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads audit events for training runs.
// Events are stored in {runsDir}/{run}/events.jsonl.
type Logger struct {
	runsDir string
}

// NewLogger creates a new audit logger over a runs directory.
func NewLogger(runsDir string) *Logger {
	return &Logger{runsDir: runsDir}
}

// eventPath returns the path to the JSONL event log for a run.
func (l *Logger) eventPath(run string) string {
	return filepath.Join(l.runsDir, run, "events.jsonl")
}

// Log appends an event to the run's audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path := l.eventPath(event.Run)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, run, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Run:       run,
		Details:   details,
	})
}

// LogCheckpoint records that the trainer wrote a checkpoint at epoch.
func (l *Logger) LogCheckpoint(run string, epoch int, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      EventCheckpoint,
		Run:       run,
		Epoch:     epoch,
		Details:   details,
	})
}

// Events reads all events for a run in chronological order.
func (l *Logger) Events(run string) ([]Event, error) {
	path := l.eventPath(run)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Remove deletes the audit log for a run.
func (l *Logger) Remove(run string) error {
	path := l.eventPath(run)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
