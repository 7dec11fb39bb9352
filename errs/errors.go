// Package errs defines the sentinel errors shared by the alx packages.
//
// Callers compare against these values with errors.Is; producers wrap them
// with fmt.Errorf("...: %w", err) to attach file names, offsets and sizes.
package errs

import "errors"

// Structural errors. These abort processing of the file that raised them.
var (
	// ErrCorruptHeader is returned when a multi-segment container has a bad check value
	// or its descriptor table runs past the end of the data.
	ErrCorruptHeader = errors.New("corrupt container header")

	// ErrSizeMismatch is returned when an AKLZ stream decodes to a length other than the declared one.
	ErrSizeMismatch = errors.New("decompressed size mismatch")

	// ErrTooManySegments is returned when a bake request exceeds the configured segment limit.
	ErrTooManySegments = errors.New("too many segments")

	// ErrSegmentNameTooLong is returned when a segment name does not fit the 20-byte descriptor field.
	ErrSegmentNameTooLong = errors.New("segment name too long")

	// ErrDuplicateSegment is returned when the same segment name is baked twice.
	ErrDuplicateSegment = errors.New("duplicate segment name")

	// ErrInvalidSegmentName is returned for an empty segment name.
	ErrInvalidSegmentName = errors.New("invalid segment name")

	// ErrTooManyRecords is returned when a rebuilt segment needs more node slots than a table holds.
	ErrTooManyRecords = errors.New("too many records")
)

// Record-level errors. Parsers skip the affected record or file and keep going.
var (
	// ErrTruncatedRecord is returned when a record or table entry runs past the end of the buffer.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrUnknownIdentity is returned when no record identity can be derived from a file name.
	ErrUnknownIdentity = errors.New("unknown record identity")

	// ErrOffsetOutOfRange is returned when a record patch targets bytes outside the container.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Snapshot and storage errors.
var (
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	ErrNotFound         = errors.New("object not found")
)
