// Package queue demonstrates the producer/worker-pool pattern: jobs flow
// through a buffered channel broker to a fixed set of workers, each job
// runs under a hard time limit, and outcomes are persisted to SQLite so a
// run leaves an inspectable trail.
//
// This is an in-process teaching queue, not task-queue infrastructure;
// there is no persistence of pending jobs, no retry and no distribution.
package queue
