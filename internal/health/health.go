package health

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cellvision/trainctl/internal/workspace"
)

// Status represents the derived health status of a training run.
type Status string

const (
	StatusCreated   Status = "created"
	StatusRunning   Status = "running"
	StatusStale     Status = "stale"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
	StatusFailed    Status = "failed"

	// DefaultStaleAfter is how long a running trainer may go without
	// touching its run directory before the run is reported stale.
	DefaultStaleAfter = 15 * time.Minute
)

// CheckResult contains the results of a run health check.
type CheckResult struct {
	Status       Status
	Checkpoints  int
	LastActivity time.Time
	Age          string
}

// ProcessAlive reports whether a process with the given PID exists.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// lastActivity returns the newest modification time among the files the
// trainer writes while working.
func lastActivity(run *workspace.Run) time.Time {
	var newest time.Time
	consider := func(path string) {
		info, err := os.Stat(path)
		if err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	consider(run.EventsFile())
	consider(run.MetadataFile())
	for _, dir := range []string{run.StatisticsDir(), run.CheckpointsDir(), run.ResultsDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			consider(filepath.Join(dir, entry.Name()))
		}
	}
	return newest
}

// Check derives the health status of a run. Terminal statuses come
// straight from the metadata; a nominally running trainer is reported
// stale when its process is gone or it has not touched the run
// directory within staleAfter.
func Check(run *workspace.Run, staleAfter time.Duration) *CheckResult {
	result := &CheckResult{}

	checkpoints, err := run.Checkpoints()
	if err == nil {
		result.Checkpoints = len(checkpoints)
	}
	result.LastActivity = lastActivity(run)
	if !result.LastActivity.IsZero() {
		result.Age = formatDuration(time.Since(result.LastActivity))
	}

	switch run.Metadata.Status {
	case workspace.StatusCompleted:
		result.Status = StatusCompleted
	case workspace.StatusAborted:
		result.Status = StatusAborted
	case workspace.StatusFailed:
		result.Status = StatusFailed
	case workspace.StatusRunning:
		result.Status = StatusRunning
		if !ProcessAlive(run.Metadata.PID) {
			result.Status = StatusStale
		} else if !result.LastActivity.IsZero() && time.Since(result.LastActivity) > staleAfter {
			result.Status = StatusStale
		}
	default:
		result.Status = StatusCreated
	}

	return result
}

// GetSummary returns only the derived status of a run.
func GetSummary(run *workspace.Run) Status {
	return Check(run, DefaultStaleAfter).Status
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}
