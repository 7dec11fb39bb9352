// Package compress provides the codecs used by alx.
//
// # AKLZ
//
// AKLZ is the LZ77-family format the game uses for most files on disc. It
// is the only codec that touches game data:
//
//	codec := compress.NewAKLZCompressor()
//	packed, _ := codec.Compress(raw)      // header + greedy encoding
//	raw, err := codec.Decompress(packed)  // exact-length decode
//
// Blob layout:
//
//	Bytes  | Field
//	-------|------------------------------------------------
//	0-11   | Magic 41 4B 4C 5A 7E 3F 51 64 3D CC CC CD
//	12-15  | Decompressed length, big-endian uint32
//	16-    | Flag byte, then up to 8 items, repeated
//
// A flag bit of 1 (LSB first) marks a literal byte. A bit of 0 marks a
// two-byte reference b1 b2 into the 4096-byte window:
//
//	slot   = b1 | (b2 & 0xF0) << 4
//	length = (b2 & 0x0F) + 3
//
// The first output byte is written to slot 0xFEE. Decompress passes input
// without the magic through unchanged, so callers may feed it both packed
// and raw files.
//
// # Snapshot codecs
//
// None, Zstd, S2 and LZ4 compress catalog snapshots (see package snapshot).
// They are general-purpose and never written to disc images.
//
// # Thread Safety
//
// All codec implementations are stateless values and can be shared across goroutines.
// Zstd and LZ4 keep pooled encoder state internally.
package compress
