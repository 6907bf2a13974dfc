package runlog

import "time"

// Run is one recorded command invocation.
type Run struct {
	ID               string
	Command          string
	InputDir         string
	Workers          int
	ThreadsPerWorker int
	Found            int
	Succeeded        int
	Skipped          int
	Failed           int
	StartedAt        time.Time
	FinishedAt       time.Time
}

// ItemFailure records one failed work item within a run.
type ItemFailure struct {
	RunID  string
	Source string
	Detail string
}

// Duration reports the wall-clock time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
