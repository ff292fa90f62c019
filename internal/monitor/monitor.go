// Package monitor provides background health monitoring for training runs.
package monitor

import (
	"context"
	"time"

	"github.com/cellvision/trainctl/internal/audit"
	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/logging"
	"github.com/cellvision/trainctl/internal/workspace"
)

// CheckResult holds the result of a single run health check.
type CheckResult struct {
	Run    string
	Status health.Status
	Health *health.CheckResult
}

// Monitor periodically checks the health of all runs in a workspace.
type Monitor struct {
	interval   time.Duration
	ws         *workspace.Workspace
	staleAfter time.Duration
	markStale  bool
	auditLog   *audit.Logger
	lastStatus map[string]health.Status
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithStaleAfter sets the staleness window for running trainers.
func WithStaleAfter(d time.Duration) Option {
	return func(m *Monitor) {
		m.staleAfter = d
	}
}

// WithMarkStale makes the monitor record stale runs as failed in their
// metadata instead of only reporting them.
func WithMarkStale(enabled bool) Option {
	return func(m *Monitor) {
		m.markStale = enabled
	}
}

// WithAuditLogger sets the audit logger for recording health events.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(m *Monitor) {
		m.auditLog = logger
	}
}

// New creates a new Monitor over a workspace.
func New(interval time.Duration, ws *workspace.Workspace, opts ...Option) *Monitor {
	m := &Monitor{
		interval:   interval,
		ws:         ws,
		staleAfter: health.DefaultStaleAfter,
		lastStatus: make(map[string]health.Status),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the monitoring loop. It blocks until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	logging.Debug("starting run monitor", "interval", m.interval, "staleAfter", m.staleAfter)

	// Run an immediate check, then loop on interval.
	m.checkAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("run monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			m.checkAll(ctx)
		}
	}
}

// checkAll performs health checks on all runs in the workspace.
func (m *Monitor) checkAll(ctx context.Context) []CheckResult {
	runs, err := m.ws.ListRuns()
	if err != nil {
		logging.Warn("monitor failed to list runs", "error", err)
		return nil
	}

	var results []CheckResult
	for _, run := range runs {
		if ctx.Err() != nil {
			break
		}

		check := health.Check(run, m.staleAfter)
		result := CheckResult{
			Run:    run.Name(),
			Status: check.Status,
			Health: check,
		}
		results = append(results, result)

		// Only act on status transitions so repeated checks of a stale
		// run do not flood the audit log.
		if m.lastStatus[run.Name()] == check.Status {
			continue
		}
		m.lastStatus[run.Name()] = check.Status

		if check.Status != health.StatusStale {
			continue
		}

		logging.Warn("run went stale", "run", run.Name(), "lastActivity", check.LastActivity)
		if m.auditLog != nil {
			_ = m.auditLog.LogEvent(audit.EventStale, run.Name(), "no trainer activity")
		}

		if m.markStale {
			if err := run.MarkFinished(workspace.StatusFailed); err != nil {
				logging.Warn("failed to mark stale run", "run", run.Name(), "error", err)
				if m.auditLog != nil {
					_ = m.auditLog.LogEvent(audit.EventError, run.Name(), "mark stale failed: "+err.Error())
				}
			}
		}
	}

	return results
}
