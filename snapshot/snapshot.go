package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/arloliu/alx/catalog"
	"github.com/arloliu/alx/compress"
	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/errs"
	"github.com/arloliu/alx/format"
	"github.com/arloliu/alx/internal/hash"
	"github.com/arloliu/alx/internal/options"
	"github.com/arloliu/alx/internal/pool"
	"github.com/arloliu/alx/store"
	"github.com/fxamacker/cbor/v2"
)

// Version is the snapshot format version written by Encode.
const Version = 1

// HeaderSize is the size of the fixed snapshot header.
const HeaderSize = 24

var magic = [4]byte{'A', 'L', 'X', 'S'}

// Snapshot is a reconciled catalog together with the files it was read from.
type Snapshot struct {
	Catalog *catalog.Catalog `cbor:"catalog"`
	// Sources lists the files read to build the catalog.
	Sources []string `cbor:"sources,omitempty"`
	// Skipped counts the records that could not be read.
	Skipped int `cbor:"skipped,omitempty"`
}

// Header is the fixed little-endian header in front of the payload.
//
//	Bytes | Field
//	------|---------------------------------------------
//	0-3   | Magic "ALXS"
//	4     | Version
//	5     | Compression (format.CompressionType)
//	6-7   | Reserved, 0
//	8-15  | Checksum, xxHash64 of the uncompressed payload
//	16-19 | RawSize, uncompressed payload size
//	20-23 | Size, stored payload size
type Header struct {
	Version     uint8
	Compression format.CompressionType
	Checksum    uint64
	RawSize     uint32
	Size        uint32
}

// ParseHeader parses and checks the header of a snapshot.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidSnapshot, len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic % x", errs.ErrInvalidSnapshot, data[:4])
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		Version:     data[4],
		Compression: format.CompressionType(data[5]),
		Checksum:    engine.Uint64(data[8:16]),
		RawSize:     engine.Uint32(data[16:20]),
		Size:        engine.Uint32(data[20:24]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, h.Version)
	}

	return h, nil
}

func (h Header) appendTo(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = append(b, magic[:]...)
	b = append(b, h.Version, byte(h.Compression), 0, 0)
	b = engine.AppendUint64(b, h.Checksum)
	b = engine.AppendUint32(b, h.RawSize)

	return engine.AppendUint32(b, h.Size)
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

type config struct {
	compression format.CompressionType
	logger      *slog.Logger
}

// Option configures Encode and Write.
type Option = options.Option[*config]

// WithCompression sets the payload codec. AKLZ is reserved for game data
// and rejected.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if ct == format.CompressionAKLZ {
			return fmt.Errorf("snapshot compression %s is not supported", ct)
		}
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithLogger sets the logger that receives size statistics.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// Encode serializes s. The payload is deterministic CBOR, so equal
// snapshots encode to equal bytes.
func Encode(s *Snapshot, opts ...Option) ([]byte, error) {
	cfg := &config{compression: format.CompressionZstd, logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	raw, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	ct := cfg.compression
	if len(payload) == 0 && len(raw) > 0 {
		// LZ4 reports incompressible input as an empty block.
		ct, payload = format.CompressionNone, raw
	}

	stats := compress.NewCompressionStats(ct, len(raw), len(payload))
	cfg.logger.Debug("snapshot encoded",
		"compression", ct.String(),
		"raw_size", stats.OriginalSize,
		"size", stats.CompressedSize,
		"ratio", stats.CompressionRatio(),
	)

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.B = Header{
		Version:     Version,
		Compression: ct,
		Checksum:    hash.Sum(raw),
		RawSize:     uint32(len(raw)),     //nolint:gosec
		Size:        uint32(len(payload)), //nolint:gosec
	}.appendTo(buf.B)
	_, _ = buf.Write(payload)

	return buf.Detach(), nil
}

// Decode parses a snapshot written by Encode.
func Decode(data []byte) (*Snapshot, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if int64(len(data)-HeaderSize) != int64(h.Size) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidSnapshot, len(data)-HeaderSize, h.Size)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil || h.Compression == format.CompressionAKLZ {
		return nil, fmt.Errorf("%w: compression %s", errs.ErrInvalidSnapshot, h.Compression)
	}

	raw, err := compress.DecompressSized(codec, data[HeaderSize:], int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	if sum := hash.Sum(raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	var s Snapshot
	if err := decMode.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	if s.Catalog == nil {
		s.Catalog = &catalog.Catalog{}
	}

	return &s, nil
}

// Write encodes s and stores it as name.
func Write(ctx context.Context, sink store.Sink, name string, s *Snapshot, opts ...Option) error {
	data, err := Encode(s, opts...)
	if err != nil {
		return err
	}

	return sink.WriteFile(ctx, name, data)
}

// Read loads and decodes the snapshot stored as name.
func Read(ctx context.Context, src store.Source, name string) (*Snapshot, error) {
	data, err := src.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}

	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return s, nil
}
