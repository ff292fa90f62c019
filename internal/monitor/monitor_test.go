package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cellvision/trainctl/internal/audit"
	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/workspace"
)

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func createRun(t *testing.T, ws *workspace.Workspace, name string) *workspace.Run {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"name": "demo"}`), 0644); err != nil {
		t.Fatal(err)
	}
	run, err := ws.CreateRun(name, configPath)
	if err != nil {
		t.Fatal(err)
	}
	return run
}

func TestMonitor_New(t *testing.T) {
	m := New(30*time.Second, newWorkspace(t))
	if m.interval != 30*time.Second {
		t.Errorf("interval = %v, want %v", m.interval, 30*time.Second)
	}
	if m.staleAfter != health.DefaultStaleAfter {
		t.Errorf("staleAfter = %v, want %v", m.staleAfter, health.DefaultStaleAfter)
	}
	if m.markStale {
		t.Error("markStale should default to false")
	}
	if m.auditLog != nil {
		t.Error("auditLog should default to nil")
	}
}

func TestMonitor_Options(t *testing.T) {
	ws := newWorkspace(t)
	auditLogger := audit.NewLogger(ws.RunsDir())

	m := New(60*time.Second, ws,
		WithStaleAfter(time.Minute),
		WithMarkStale(true),
		WithAuditLogger(auditLogger),
	)

	if m.staleAfter != time.Minute {
		t.Errorf("staleAfter = %v, want %v", m.staleAfter, time.Minute)
	}
	if !m.markStale {
		t.Error("markStale should be true")
	}
	if m.auditLog == nil {
		t.Error("auditLog should be set")
	}
}

func TestMonitor_CheckAllEmpty(t *testing.T) {
	m := New(time.Second, newWorkspace(t))

	results := m.checkAll(context.Background())
	if len(results) != 0 {
		t.Errorf("got %d results, want 0 for empty workspace", len(results))
	}
}

func TestMonitor_CheckAllHealthy(t *testing.T) {
	ws := newWorkspace(t)
	createRun(t, ws, "fresh")

	auditLogger := audit.NewLogger(ws.RunsDir())
	m := New(time.Second, ws, WithAuditLogger(auditLogger))

	results := m.checkAll(context.Background())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Run != "fresh" {
		t.Errorf("run = %q, want %q", results[0].Run, "fresh")
	}
	if results[0].Status != health.StatusCreated {
		t.Errorf("status = %q, want %q", results[0].Status, health.StatusCreated)
	}

	// a run that never went stale produces no extra audit events beyond
	// what creation wrote
	events, err := auditLogger.Events("fresh")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	for _, e := range events {
		if e.Type == audit.EventStale {
			t.Error("unexpected stale event for healthy run")
		}
	}
}

func TestMonitor_DetectsStaleRun(t *testing.T) {
	ws := newWorkspace(t)
	run := createRun(t, ws, "dead")
	if err := run.MarkStarted(1<<30, 90); err != nil {
		t.Fatal(err)
	}

	auditLogger := audit.NewLogger(ws.RunsDir())
	m := New(time.Second, ws, WithAuditLogger(auditLogger), WithMarkStale(true))

	results := m.checkAll(context.Background())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Status != health.StatusStale {
		t.Fatalf("status = %q, want %q", results[0].Status, health.StatusStale)
	}

	events, err := auditLogger.Events("dead")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	var stale int
	for _, e := range events {
		if e.Type == audit.EventStale {
			stale++
		}
	}
	if stale != 1 {
		t.Errorf("got %d stale events, want 1", stale)
	}

	// markStale records the run as failed
	reloaded, err := ws.LoadRun("dead")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Metadata.Status != workspace.StatusFailed {
		t.Errorf("metadata status = %q, want %q", reloaded.Metadata.Status, workspace.StatusFailed)
	}
}

func TestMonitor_StaleEventNotRepeated(t *testing.T) {
	ws := newWorkspace(t)
	run := createRun(t, ws, "dead")
	if err := run.MarkStarted(1<<30, 90); err != nil {
		t.Fatal(err)
	}

	auditLogger := audit.NewLogger(ws.RunsDir())
	m := New(time.Second, ws, WithAuditLogger(auditLogger))

	ctx := context.Background()
	m.checkAll(ctx)
	m.checkAll(ctx)
	m.checkAll(ctx)

	events, _ := auditLogger.Events("dead")
	var stale int
	for _, e := range events {
		if e.Type == audit.EventStale {
			stale++
		}
	}
	if stale != 1 {
		t.Errorf("got %d stale events after repeated checks, want 1", stale)
	}
}

func TestMonitor_RunCancellation(t *testing.T) {
	m := New(100*time.Millisecond, newWorkspace(t))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	// Let it run briefly then cancel
	time.Sleep(250 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after context cancellation")
	}
}
