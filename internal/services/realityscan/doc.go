// Package realityscan mediates access to the RealityScan CLI used for
// photogrammetry reconstruction.
//
// It owns the headless argument list, normalizes command invocation, and
// exposes a testable executor seam so the model builder can run without the
// real binary. RealityScan behavior mid-run is opaque and potentially
// non-idempotent, so invocations are single-attempt with no retry.
package realityscan
