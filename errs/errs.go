// Package errs defines the sentinel errors returned by tagdata packages.
//
// Callers should compare with errors.Is, since most call sites wrap these
// errors with the key or position that triggered them.
package errs

import "errors"

// Container errors
var (
	ErrKeyNotFound      = errors.New("tagdata: key not found")
	ErrDuplicateKey     = errors.New("tagdata: duplicate key")
	ErrInvalidFormat    = errors.New("tagdata: invalid container format")
	ErrInvalidKeyFormat = errors.New("tagdata: invalid key format")
	ErrEntryTooLarge    = errors.New("tagdata: entry too large")
	ErrWriterReleased   = errors.New("tagdata: writer already released")
	ErrReaderClosed     = errors.New("tagdata: reader already closed")
)

// Codec errors
var (
	ErrEndOfStream     = errors.New("tagdata: unexpected end of stream")
	ErrUnsupportedType = errors.New("tagdata: unsupported value type")
	ErrInvalidLength   = errors.New("tagdata: invalid length")
	ErrNegativeSeek    = errors.New("tagdata: seek to negative position")
	ErrWriteOutOfRange = errors.New("tagdata: write past end of bounded stream")
)

// File errors
var (
	ErrInvalidHeaderSize  = errors.New("tagdata: invalid header size")
	ErrInvalidMagic       = errors.New("tagdata: magic number mismatch")
	ErrInvalidVersion     = errors.New("tagdata: unsupported file version")
	ErrChecksumMismatch   = errors.New("tagdata: checksum mismatch")
	ErrInvalidCompression = errors.New("tagdata: invalid compression type")
)
