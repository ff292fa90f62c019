// Package health derives the liveness of training runs.
//
// A run's metadata records what the trainer last reported; this package
// cross-checks that record against the filesystem. Terminal statuses
// (completed, aborted, failed) pass through unchanged. A nominally
// running trainer is reported stale when its process no longer exists
// or when nothing in the run directory has been touched within the
// staleness window.
//
// # Health Status
//
// Run health is represented by Status:
//
//	StatusCreated   - Run directory exists, trainer never started
//	StatusRunning   - Trainer process alive and recently active
//	StatusStale     - Trainer gone or silent past the staleness window
//	StatusCompleted - Trainer finished all epochs
//	StatusAborted   - Trainer stopped on user request
//	StatusFailed    - Trainer exited with an error
//
// # Check Functions
//
//	result := health.Check(run, staleAfter)
//	// result.Status, .Checkpoints, .LastActivity, .Age
//
//	status := health.GetSummary(run)
//	// Uses DefaultStaleAfter
package health
