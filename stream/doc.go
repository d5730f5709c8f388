// Package stream provides the seekable stream helpers used by containers.
//
// View exposes a window of a base stream as if it were a stream of its own.
// Positions are relative to the window start and reads never cross its end,
// which is how a nested container is parsed in place without copying. A view
// never owns its base and closing it is a no-op.
//
// Memory is a growable in-memory read/write stream for host-local data.
//
// Streams may declare whether the bytes they carry must be endian
// independent by implementing EndianDeclarer. Streams that do not declare
// anything are treated as endian independent.
package stream
