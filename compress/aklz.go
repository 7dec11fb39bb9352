package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/arloliu/alx/errs"
)

const (
	// AKLZHeaderSize is the size of the magic plus the declared length.
	AKLZHeaderSize = 16

	aklzMagicSize = 12
	matchLenMask  = 0x0F
)

var aklzMagic = [aklzMagicSize]byte{
	0x41, 0x4B, 0x4C, 0x5A, // "AKLZ"
	0x7E, 0x3F, 0x51, 0x64,
	0x3D, 0xCC, 0xCC, 0xCD,
}

// AKLZCompressor implements the AKLZ sliding-window format found on the
// game disc.
//
// A blob is the 12-byte magic, the big-endian decompressed length and a
// stream of flag-prefixed groups. Each flag byte governs up to eight items,
// least significant bit first: a set bit is a literal byte, a clear bit a
// two-byte back-reference into a 4096-byte window.
//
// Compress is deterministic: the same input always produces the same bytes.
// AKLZCompressor is stateless and safe for concurrent use.
type AKLZCompressor struct{}

var _ Codec = (*AKLZCompressor)(nil)

// NewAKLZCompressor creates a new AKLZ codec.
func NewAKLZCompressor() AKLZCompressor {
	return AKLZCompressor{}
}

// IsAKLZ reports whether data starts with a complete AKLZ header.
func IsAKLZ(data []byte) bool {
	return len(data) >= AKLZHeaderSize && bytes.Equal(data[:aklzMagicSize], aklzMagic[:])
}

// AKLZDecompressedLen returns the length declared in an AKLZ header.
func AKLZDecompressedLen(data []byte) (int, bool) {
	if !IsAKLZ(data) {
		return 0, false
	}

	return int(binary.BigEndian.Uint32(data[aklzMagicSize:AKLZHeaderSize])), true
}

// Decompress decodes an AKLZ blob.
//
// Input without the AKLZ magic is returned as an unchanged copy. A match
// running past the declared length is truncated to fit. If the stream ends
// before the declared length is produced, the result wraps errs.ErrSizeMismatch.
func (c AKLZCompressor) Decompress(data []byte) ([]byte, error) {
	want, ok := AKLZDecompressedLen(data)
	if !ok {
		return bytes.Clone(data), nil
	}

	// A two-byte reference expands to at most 18 bytes.
	capHint := want
	if limit := (len(data) - AKLZHeaderSize) * 9; capHint > limit {
		capHint = limit
	}

	out := make([]byte, 0, capHint)
	win := newWindow()
	pos := AKLZHeaderSize

	for pos < len(data) && len(out) < want {
		flag := data[pos]
		pos++

		for bit := 0; bit < 8; bit++ {
			if pos >= len(data) || len(out) >= want {
				break
			}

			if flag&(1<<bit) != 0 {
				b := data[pos]
				pos++
				out = append(out, b)
				win.put(b)

				continue
			}

			if pos+1 >= len(data) {
				pos = len(data)
				break
			}

			b1, b2 := int(data[pos]), int(data[pos+1])
			pos += 2

			src := b1 | (b2&^matchLenMask)<<4
			n := (b2 & matchLenMask) + minMatchLen
			if rem := want - len(out); n > rem {
				n = rem
			}
			out = win.copyMatch(out, src, n)
		}
	}

	if len(out) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrSizeMismatch, len(out), want)
	}

	return out, nil
}

// Compress encodes data as an AKLZ blob using greedy longest-match parsing.
//
// At each position the encoder emits a literal when fewer than three bytes
// remain or fewer than three bytes of history exist. Otherwise it looks for
// the longest earlier span, at most 18 bytes, that ends at or before the
// current position and lies within the last 4096 bytes. Among equally long
// spans the lowest position wins. Matches shorter than three bytes are
// emitted as literals.
func (c AKLZCompressor) Compress(data []byte) ([]byte, error) {
	n := len(data)
	out := make([]byte, 0, AKLZHeaderSize+n+n/8+1)
	out = append(out, aklzMagic[:]...)
	out = binary.BigEndian.AppendUint32(out, uint32(n)) //nolint:gosec

	m := newMatcher(data)
	flagPos := -1
	bit := 8
	cursor := 0

	for cursor < n {
		if bit == 8 {
			flagPos = len(out)
			out = append(out, 0)
			bit = 0
		}

		pos, length := m.longest(cursor)
		if length < minMatchLen {
			out[flagPos] |= 1 << bit
			out = append(out, data[cursor])
			m.advance(cursor, 1)
			cursor++
		} else {
			slot := physical(pos)
			out = append(out, byte(slot), byte((slot>>4)&0xF0)|byte(length-minMatchLen))
			m.advance(cursor, length)
			cursor += length
		}
		bit++
	}

	return out, nil
}

// matcher indexes every consumed position of the input by its three-byte
// prefix. Position lists are ascending, so walking a list from the window's
// lower bound visits candidates in the same order as a linear scan.
type matcher struct {
	data  []byte
	heads map[uint32][]int
}

func newMatcher(data []byte) *matcher {
	return &matcher{
		data:  data,
		heads: make(map[uint32][]int),
	}
}

func (m *matcher) key(pos int) uint32 {
	return uint32(m.data[pos])<<16 | uint32(m.data[pos+1])<<8 | uint32(m.data[pos+2])
}

// advance records positions [from, from+count) as history.
func (m *matcher) advance(from, count int) {
	for p := from; p < from+count; p++ {
		if p+minMatchLen > len(m.data) {
			return
		}
		k := m.key(p)
		m.heads[k] = append(m.heads[k], p)
	}
}

// longest returns the lowest logical position holding the longest match for
// the bytes at cursor. A candidate span never extends to or past cursor.
func (m *matcher) longest(cursor int) (int, int) {
	n := len(m.data)
	if n-cursor < minMatchLen || cursor < minMatchLen {
		return 0, 0
	}

	limit := min(maxMatchLen, n-cursor)
	lo := max(0, cursor-windowSize)

	chain := m.heads[m.key(cursor)]
	start := sort.SearchInts(chain, lo)

	bestPos, bestLen := 0, 0
	for _, p := range chain[start:] {
		if p > cursor-minMatchLen {
			break
		}

		maxLen := min(limit, cursor-p)
		l := minMatchLen
		for l < maxLen && m.data[p+l] == m.data[cursor+l] {
			l++
		}

		if l > bestLen {
			bestPos, bestLen = p, l
			if bestLen == limit {
				break
			}
		}
	}

	return bestPos, bestLen
}
