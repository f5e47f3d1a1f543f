package constants

// RunStatus is the canonical status for a reconciliation run.
type RunStatus string

// Stable values (logged and returned by the HTTP surface).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusOK      RunStatus = "OK"      // completed, artifact produced
	RunStatusFailed  RunStatus = "FAILED"  // terminal failure, no output
)
