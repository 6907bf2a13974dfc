package masking

import (
	"path/filepath"
	"strings"
	"time"
)

// MaskSuffix replaces the source extension when deriving mask output paths.
// Other tooling depends on this naming convention; treat it as a contract.
const MaskSuffix = ".mask.png"

// MaskPath derives the companion mask path for a source image: same
// directory, extension replaced by the mask suffix.
func MaskPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + MaskSuffix
}

// IsMask reports whether path is itself a mask output, so discovery never
// feeds previous outputs back into the batch.
func IsMask(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), MaskSuffix)
}

// ItemState tracks the lifecycle of one work item. An item is discovered,
// then either skipped because its mask exists or dispatched to the external
// tool, ending completed or failed. There are no retries.
type ItemState string

const (
	StateSkipped   ItemState = "skipped"
	StateCompleted ItemState = "completed"
	StateFailed    ItemState = "failed"
)

// ItemResult records the outcome of one work item.
type ItemResult struct {
	Source   string
	MaskPath string
	State    ItemState
	Err      error
	Duration time.Duration
}

// Summary aggregates a batch run. Succeeded+Skipped+Failed can fall short
// of Found when the batch is cancelled mid-dispatch.
type Summary struct {
	Found     int
	Succeeded int
	Skipped   int
	Failed    int
}
