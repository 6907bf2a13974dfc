// Package reconstruct derives a model build job from a capture directory
// and drives one synchronous RealityScan invocation for it.
//
// All artifact paths derive deterministically from the directory's base
// name, so re-running a build after a crash overwrites the same outputs
// instead of accumulating new ones.
package reconstruct
