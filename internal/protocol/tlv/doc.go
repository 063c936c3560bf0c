// Package tlv owns the primitive type function tables.
//
// Ownership boundary:
// - builtin primitive read/write functions
// - per-direction tables and extension registration
// - value coercion for the write direction
package tlv
