// Package audit implements the event model, sinks, and buffered dispatcher
// behind the root package's audit surface.
//
// # Architecture boundaries
//
// This package owns event buffering and sink fan-out. Which decisions get
// audited, and with which fields, is decided by the root package.
//
// # What this package must NOT do
//
//   - Import navguard or token (no import cycles).
//   - Perform navigation, redirects, or any guard logic.
//   - Block a caller when DropIfFull is set.
package audit
