// Package session owns stream pumping for the frame codec.
//
// Ownership boundary:
// - reading fragments from an io.Reader into a handler
// - draining decoded results to a callback
// - end-of-stream and fatal-result disposition
//
// The owner of the underlying connection decides what to do with the
// returned error; a non-nil error means the stream must not be reused.
package session
