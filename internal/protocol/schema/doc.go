// Package schema owns packet schema declarations and their registries.
//
// Ownership boundary:
// - packet/field/argument declarations
// - static binding of declarations to a type table
// - per-direction registries keyed by name and by id
// - schema file loading
package schema
