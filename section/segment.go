package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
)

// SegmentHeader is the 8-byte header of a multi-segment container.
//
//	Bytes | Field | Type
//	------|-------|------------------------
//	0-3   | Magic | 00 00 FF FF
//	4-5   | Count | int16, number of segments
//	6-7   | Check | int16, always -1
type SegmentHeader struct {
	Count int16
	Check int16
}

// NewSegmentHeader creates a header for count segments.
func NewSegmentHeader(count int16) SegmentHeader {
	return SegmentHeader{Count: count, Check: SegmentCheckValue}
}

// IsSegmented reports whether data starts with the multi-segment magic.
func IsSegmented(data []byte) bool {
	return len(data) >= len(segmentMagic) && bytes.Equal(data[:len(segmentMagic)], segmentMagic[:])
}

// ParseSegmentHeader parses and validates a segment header.
func ParseSegmentHeader(data []byte, engine endian.EndianEngine) (SegmentHeader, error) {
	if len(data) < SegmentHeaderSize {
		return SegmentHeader{}, fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrCorruptHeader, SegmentHeaderSize, len(data))
	}
	if !IsSegmented(data) {
		return SegmentHeader{}, fmt.Errorf("%w: bad magic % x", errs.ErrCorruptHeader, data[:4])
	}

	h := SegmentHeader{
		Count: endian.Int16(engine, data[4:6]),
		Check: endian.Int16(engine, data[6:8]),
	}
	if h.Check != SegmentCheckValue {
		return SegmentHeader{}, fmt.Errorf("%w: check value %d", errs.ErrCorruptHeader, h.Check)
	}
	if h.Count < 0 {
		return SegmentHeader{}, fmt.Errorf("%w: negative segment count %d", errs.ErrCorruptHeader, h.Count)
	}

	return h, nil
}

// TableSize returns the header plus descriptor table size in bytes.
func (h SegmentHeader) TableSize() int {
	return SegmentHeaderSize + int(h.Count)*SegmentDescriptorSize
}

// WriteToSlice writes the header into the first 8 bytes of b.
func (h SegmentHeader) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < SegmentHeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrCorruptHeader, SegmentHeaderSize, len(b))
	}
	copy(b[0:4], segmentMagic[:])
	endian.PutInt16(engine, b[4:6], h.Count)
	endian.PutInt16(engine, b[6:8], h.Check)

	return nil
}

// Bytes returns the serialized header.
func (h SegmentHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, SegmentHeaderSize)
	_ = h.WriteToSlice(b, engine)

	return b
}

// SegmentDescriptor locates one segment inside a multi-segment container.
//
//	Bytes | Field    | Type
//	------|----------|------------------------------
//	0-19  | Name     | null-padded ASCII
//	20-23 | Offset   | int32, from container start
//	24-27 | Size     | int32
//	28-31 | Reserved | int32, written as 0
type SegmentDescriptor struct {
	Name     string
	Offset   int32
	Size     int32
	Reserved int32
}

// ParseSegmentDescriptor parses one 32-byte descriptor.
func ParseSegmentDescriptor(data []byte, engine endian.EndianEngine) (SegmentDescriptor, error) {
	if len(data) < SegmentDescriptorSize {
		return SegmentDescriptor{}, fmt.Errorf("%w: descriptor needs %d bytes, have %d", errs.ErrCorruptHeader, SegmentDescriptorSize, len(data))
	}

	return SegmentDescriptor{
		Name:     cString(data[:SegmentNameSize]),
		Offset:   endian.Int32(engine, data[20:24]),
		Size:     endian.Int32(engine, data[24:28]),
		Reserved: endian.Int32(engine, data[28:32]),
	}, nil
}

// End returns the offset one past the last byte of the segment.
func (d SegmentDescriptor) End() int64 {
	return int64(d.Offset) + int64(d.Size)
}

// WriteToSlice writes the descriptor into the first 32 bytes of b.
// Unused name bytes are zeroed.
func (d SegmentDescriptor) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < SegmentDescriptorSize {
		return fmt.Errorf("%w: descriptor needs %d bytes, have %d", errs.ErrCorruptHeader, SegmentDescriptorSize, len(b))
	}
	if len(d.Name) > SegmentNameSize {
		return fmt.Errorf("%w: %q is %d bytes", errs.ErrSegmentNameTooLong, d.Name, len(d.Name))
	}

	clear(b[:SegmentNameSize])
	copy(b[:SegmentNameSize], d.Name)
	endian.PutInt32(engine, b[20:24], d.Offset)
	endian.PutInt32(engine, b[24:28], d.Size)
	endian.PutInt32(engine, b[28:32], d.Reserved)

	return nil
}

// cString returns b up to its first NUL byte.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}
