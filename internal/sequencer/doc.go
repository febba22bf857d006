// Package sequencer drives an ordered catalog of demonstration units to
// completion, one at a time, timing each and tolerating individual failures.
//
// The sequencer deliberately runs units sequentially, never concurrently:
// the pedagogical value of the demos depends on reading each unit's output
// and timing in isolation before the next one starts. Concurrency inside a
// unit's action is the unit's own business.
//
// A unit's failure (returned error or panic) is recovered locally, recorded
// in its RunResult and displayed; it never stops the run. Every unit
// produces exactly one RunResult, and results are ordered by catalog
// position, not completion order.
package sequencer
