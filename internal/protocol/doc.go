// Package protocol owns the frame codec.
//
// Ownership boundary:
// - Handler: input append, frame decode with rollback, frame encode with backpatch
// - decode result variants and error kinds
//
// Sub-packages hold the wire primitives:
// - buffer: stream buffers
// - tlv: primitive type function tables
// - schema: packet schemas and registries
// - frame: header contract and raw frame IO
// - session: stream pumping
package protocol
