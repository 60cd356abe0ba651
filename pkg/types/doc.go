// Package types defines the entity records, table interfaces, and standard
// errors for the shipmgr storage layer.
//
// Records are plain structs with a fixed field set. Partial updates use the
// matching *Patch struct, whose nil fields mean "leave unchanged".
package types
