// Package endian selects the byte order used to encode container data.
//
// A container written for an endian-independent medium (files, network
// payloads) always uses little-endian byte order so it can be read back on
// any host. A container written for a transient, host-local medium uses the
// native byte order of the machine.
//
//	engine := endian.ForMedium(true)   // little-endian
//	engine := endian.ForMedium(false)  // host byte order
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so the
// same value can either decode in place or append to a growing buffer.
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// ForMedium returns the engine used for a medium.
//
// Parameters:
//   - endianIndependent: true when the encoded bytes may be read on a different host
//
// Returns:
//   - EndianEngine: little-endian for endian-independent media, the native engine otherwise
func ForMedium(endianIndependent bool) EndianEngine {
	if endianIndependent {
		return binary.LittleEndian
	}

	return GetNativeEngine()
}
