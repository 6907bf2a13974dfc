// Package runlog persists a journal of batch runs in SQLite so operators
// can review what was processed on a machine and when.
//
// The journal is advisory: commands record runs best-effort and never
// fail a batch because the journal was unavailable.
package runlog
