package container

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
	"github.com/arloliu/alx/internal/collision"
	"github.com/arloliu/alx/internal/pool"
	"github.com/arloliu/alx/section"
)

// Segment is one named sub-file of a multi-segment container.
type Segment struct {
	// Name is the caller-facing name, e.g. "ecinit001.enp".
	Name string
	Data []byte
}

// ParseSegments returns the raw segments of a multi-segment container with
// external names. Segments whose range exceeds the container are dropped.
// The returned Data slices alias data.
func ParseSegments(data []byte, opts ...Option) ([]Segment, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	descs, err := p.readSegmentTable(data)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(descs))
	for _, d := range descs {
		if d.Offset < 0 || d.Size < 0 || d.End() > int64(len(data)) {
			p.cfg.logger.Warn("segment out of bounds", "segment", d.Name, "offset", d.Offset, "size", d.Size)
			continue
		}
		segments = append(segments, Segment{Name: d.Name, Data: data[d.Offset:d.End()]})
	}

	return segments, nil
}

// Bake assembles segments into a multi-segment container.
//
// Segments are laid out contiguously after the descriptor table in input
// order. Names are converted to their internal extension before being
// stored.
func Bake(segments []Segment, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(segments) > cfg.maxSegments {
		return nil, fmt.Errorf("%w: %d segments, limit %d", errs.ErrTooManySegments, len(segments), cfg.maxSegments)
	}

	tracker := collision.NewTracker()
	descs := make([]section.SegmentDescriptor, len(segments))
	offset := int64(section.SegmentHeaderSize + len(segments)*section.SegmentDescriptorSize)
	for i, seg := range segments {
		name := InternalName(seg.Name, cfg.internalExt, cfg.externalExt)
		if err := tracker.Track(name); err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i, seg.Name, err)
		}
		if len(name) > section.SegmentNameSize {
			return nil, fmt.Errorf("%w: %q is %d bytes, limit %d", errs.ErrSegmentNameTooLong, name, len(name), section.SegmentNameSize)
		}
		if offset+int64(len(seg.Data)) > math.MaxInt32 {
			return nil, fmt.Errorf("segment %q ends past the 32-bit offset range", seg.Name)
		}

		descs[i] = section.SegmentDescriptor{Name: name, Offset: int32(offset), Size: int32(len(seg.Data))}
		offset += int64(len(seg.Data))
	}

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.Grow(int(offset))
	header := section.NewSegmentHeader(int16(len(segments))) //nolint:gosec
	if err := header.WriteToSlice(buf.Reserve(section.SegmentHeaderSize), cfg.engine); err != nil {
		return nil, err
	}
	for _, d := range descs {
		if err := d.WriteToSlice(buf.Reserve(section.SegmentDescriptorSize), cfg.engine); err != nil {
			return nil, err
		}
	}
	for _, seg := range segments {
		_, _ = buf.Write(seg.Data)
	}

	cfg.logger.Debug("container baked", "segments", len(segments), "size", buf.Len())

	return buf.Detach(), nil
}

// PatchRecord overwrites the 136-byte record at offset with rec. data is
// modified in place; the action tail following the record is untouched.
func PatchRecord(data []byte, offset int, rec *section.EnemyRecord) error {
	if offset < 0 || offset+section.EnemyRecordSize > len(data) {
		return fmt.Errorf("%w: record at %d needs %d bytes, container has %d",
			errs.ErrOffsetOutOfRange, offset, section.EnemyRecordSize, len(data))
	}

	return rec.WriteToSlice(data[offset:], endian.GetBigEndianEngine())
}

// ExtractRaw returns the raw bytes of each record, from its offset to the
// next greater record offset or the end of data. The spans include the
// action tails. Records are returned in input order; spans alias data.
func ExtractRaw(data []byte, records []Record) ([][]byte, error) {
	offsets := make([]int, 0, len(records))
	for _, r := range records {
		offsets = append(offsets, r.Offset)
	}
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	spans := make([][]byte, len(records))
	for i, r := range records {
		if r.Offset < 0 || r.Offset >= len(data) {
			return nil, fmt.Errorf("%w: record %d at %d, container has %d bytes",
				errs.ErrOffsetOutOfRange, r.Identity, r.Offset, len(data))
		}

		end := len(data)
		if j, _ := slices.BinarySearch(offsets, r.Offset); j+1 < len(offsets) {
			end = offsets[j+1]
		}
		spans[i] = data[r.Offset:end]
	}

	return spans, nil
}

// RawRecord is one record of a segment rebuilt by BuildSegment. Data holds
// the 136-byte record followed by its action tail.
type RawRecord struct {
	Identity int32
	Data     []byte
}

// BuildSegment writes a dynamic-header record container: an 84-slot node
// table padded with (-1, -1) entries, then extra verbatim, then the records
// in order.
func BuildSegment(records []RawRecord, extra []byte) ([]byte, error) {
	if len(records) > section.MaxENPNodes {
		return nil, fmt.Errorf("%w: %d records, table holds %d", errs.ErrTooManyRecords, len(records), section.MaxENPNodes)
	}

	engine := endian.GetBigEndianEngine()
	buf := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(buf)

	offset := section.MaxENPNodes*section.NodeEntrySize + len(extra)
	for _, r := range records {
		if len(r.Data) < section.EnemyRecordSize {
			return nil, fmt.Errorf("%w: record %d has %d bytes", errs.ErrTruncatedRecord, r.Identity, len(r.Data))
		}
		buf.B = section.NodeEntry{Identity: r.Identity, Offset: int32(offset)}.Append(buf.B, engine) //nolint:gosec
		offset += len(r.Data)
	}
	for range section.MaxENPNodes - len(records) {
		buf.B = section.NodeEntry{Identity: -1, Offset: -1}.Append(buf.B, engine)
	}

	_, _ = buf.Write(extra)
	for _, r := range records {
		_, _ = buf.Write(r.Data)
	}

	return buf.Detach(), nil
}
