// Package endian provides byte order utilities for the alx binary layouts.
//
// Every on-disc structure of the game (AKLZ headers, segment tables, node
// tables, enemy records and action lists) is big-endian, so most callers use
// GetBigEndianEngine. Snapshot headers are written little-endian.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so the
// same value can both patch fixed-width slices in place and append to a
// growing buffer:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(offset))
//	id := endian.Int32(engine, data[0:4])
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Int16 reads a signed 16-bit value from the first two bytes of b.
func Int16(engine EndianEngine, b []byte) int16 {
	return int16(engine.Uint16(b)) //nolint:gosec
}

// Int32 reads a signed 32-bit value from the first four bytes of b.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b)) //nolint:gosec
}

// PutInt16 writes a signed 16-bit value into the first two bytes of b.
func PutInt16(engine EndianEngine, b []byte, v int16) {
	engine.PutUint16(b, uint16(v)) //nolint:gosec
}

// PutInt32 writes a signed 32-bit value into the first four bytes of b.
func PutInt32(engine EndianEngine, b []byte, v int32) {
	engine.PutUint32(b, uint32(v)) //nolint:gosec
}

// AppendInt16 appends a signed 16-bit value to b.
func AppendInt16(engine EndianEngine, b []byte, v int16) []byte {
	return engine.AppendUint16(b, uint16(v)) //nolint:gosec
}

// AppendInt32 appends a signed 32-bit value to b.
func AppendInt32(engine EndianEngine, b []byte, v int32) []byte {
	return engine.AppendUint32(b, uint32(v)) //nolint:gosec
}
