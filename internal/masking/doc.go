// Package masking implements the bounded-parallel mask batch: discover
// source images under a directory, derive each image's companion mask path,
// and dispatch one external masking invocation per image across a worker
// pool, skipping images whose mask already exists.
//
// The skip-if-exists check is the resumability contract: re-running a batch
// after partial completion redoes no finished work and never touches
// existing outputs. Failures are isolated per item and reported in the
// aggregate summary rather than aborting the batch.
package masking
