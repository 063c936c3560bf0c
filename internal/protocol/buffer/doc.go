// Package buffer owns the codec's stream buffers.
//
// Ownership boundary:
// - input accumulation, read cursor, rollback
// - output staging, backpatch, snapshot
//
// Neither type is safe for concurrent use; a handler owns one of each.
package buffer
