package compress

import (
	"fmt"

	"github.com/arloliu/alx/errs"
	"github.com/arloliu/alx/format"
)

// Compressor compresses a complete payload in one call.
//
// Memory management:
//   - Returned slice is owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Example:
//
//	codec := compress.NewAKLZCompressor()
//	raw, err := codec.Decompress(fileBytes)
//	if err != nil {
//	    return fmt.Errorf("decompress %s: %w", name, err)
//	}
//
// Thread Safety: every Decompressor in this package is safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original payload. It returns an error if the
	// input is corrupted or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// SizedDecompressor is implemented by codecs that can decode straight into
// a buffer of a known length. Snapshot payloads carry their raw size, so
// their readers prefer this path.
type SizedDecompressor interface {
	// DecompressSized decodes data, which must expand to exactly size bytes.
	// Other lengths are reported as errs.ErrSizeMismatch.
	DecompressSized(data []byte, size int) ([]byte, error)
}

// DecompressSized decodes data with d and checks that the result is size
// bytes long.
func DecompressSized(d Decompressor, data []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", errs.ErrSizeMismatch, size)
	}
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	out, err := d.Decompress(data)
	if err != nil {
		return nil, err
	}

	return checkSize(out, size)
}

func checkSize(out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrSizeMismatch, len(out), size)
	}

	return out, nil
}

// CompressionStats describes one compression call. The loader and the
// snapshot writer report it in their logs.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// NewCompressionStats builds stats for a single payload.
func NewCompressionStats(algo format.CompressionType, original, compressed int) CompressionStats {
	return CompressionStats{
		Algorithm:      algo,
		OriginalSize:   int64(original),
		CompressedSize: int64(compressed),
	}
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. AKLZ can exceed 1.0
// on incompressible input because every eight items cost an extra flag byte.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionAKLZ: NewAKLZCompressor(),
}

// GetCodec returns the shared codec for a compression type. The codecs are
// stateless and safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
