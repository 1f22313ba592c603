// Package storage persists task lists in durable key-value slots.
//
// A slot holds the whole list as one JSON document and every save
// overwrites it completely. FileSlots keeps one file per key:
//
//	~/.tasklist/tasks.json
//
// # Loading
//
// Data read back from a slot is validated against an embedded JSON Schema
// (draft 2020-12) before it is decoded. Empty, unparseable, or
// schema-violating data is reported as ErrCorrupt so callers can fall back
// to an empty list. A missing slot is not an error for a Backend: it loads
// as an empty list.
//
// # Backends
//
//   - SlotBackend: load/save through any Slots implementation
//   - NopBackend: for environments without durable storage; loads empty,
//     discards saves
//
// # File Format
//
// When writing slots, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - An empty list is written as [] (never null)
//
// Any list Encode accepts decodes back unchanged: ids may be empty and
// createdAt may be any int64. Titles must be valid UTF-8; encoding/json
// replaces invalid bytes with U+FFFD, so callers reject such input first.
package storage
