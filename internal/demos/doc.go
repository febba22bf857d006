// Package demos holds the catalog of demonstration units run by the
// sequencer. Each unit is an independent leaf contrasting a synchronous
// pattern with its concurrent counterpart: blocking vs interleaved sleeps,
// sequential vs concurrent HTTP fetches and file reads, offloading blocking
// work, and future resolution on a cooperative single-threaded executor.
//
// Units never talk to each other. Sleeps are expressed in multiples of
// Params.BaseDelay so interactive runs pace themselves for a human reader
// while tests shrink the scale to milliseconds.
package demos
