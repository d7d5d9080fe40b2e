// Package calculator is the split engine: it turns an amount and a split
// strategy into a per-member share table, validates drafts before they are
// persisted, and reconciles name-keyed persisted expenses with the ID-keyed
// member roster.
//
// Everything here is pure. Functions take values and return new values; no
// I/O happens and nothing is cached between calls.
package calculator
