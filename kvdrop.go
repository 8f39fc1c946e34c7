// Package kvdrop turns heterogeneous drop payloads (structured JSON, form
// markup, plain text) into an ordered list of editable key-value records
// that can be persisted and exported as a named dataset.
//
// This package contains domain types, interfaces and the pure parsing logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, etree/).
package kvdrop
