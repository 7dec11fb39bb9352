package compress

// NoOpCompressor stores snapshot payloads as is. It is also the fallback
// when another codec cannot shrink a payload.
//
// Both methods return the argument itself, not a copy.
type NoOpCompressor struct{}

var (
	_ Codec             = (*NoOpCompressor)(nil)
	_ SizedDecompressor = (*NoOpCompressor)(nil)
)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressSized returns data if it is size bytes long.
func (c NoOpCompressor) DecompressSized(data []byte, size int) ([]byte, error) {
	return checkSize(data, size)
}
