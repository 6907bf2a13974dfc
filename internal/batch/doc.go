// Package batch provides the bounded-parallel dispatch primitives used by
// the mask pipeline: a concurrency plan derived from available CPU
// parallelism and a semaphore-gated worker pool with a fan-in barrier.
//
// The CPU count is an explicit input rather than ambient state so tests can
// exercise the derivation table without faking the host.
package batch
