package batch

// Plan describes how a batch apportions host CPUs: how many external
// invocations run concurrently and how many threads each invocation may use
// internally. Workers * ThreadsPerWorker stays at or below the logical CPU
// count unless explicit overrides say otherwise.
type Plan struct {
	Workers          int
	ThreadsPerWorker int
}

// DerivePlan computes a concurrency plan from the logical CPU count.
// Overrides greater than zero take precedence over derived defaults; both
// results are always at least 1.
func DerivePlan(logicalCPUs, workersOverride, threadsOverride int) Plan {
	if logicalCPUs < 1 {
		logicalCPUs = 1
	}

	threads := threadsOverride
	if threads < 1 {
		threads = defaultThreadsPerWorker(logicalCPUs)
	}

	workers := workersOverride
	if workers < 1 {
		workers = logicalCPUs / threads
		if workers < 1 {
			workers = 1
		}
	}

	return Plan{Workers: workers, ThreadsPerWorker: threads}
}

func defaultThreadsPerWorker(logicalCPUs int) int {
	switch {
	case logicalCPUs >= 32:
		return 4
	case logicalCPUs >= 16:
		return 3
	case logicalCPUs >= 8:
		return 2
	default:
		return 1
	}
}
