package compress

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/arloliu/alx/errs"
	"github.com/stretchr/testify/require"
)

func aklzHeader(n uint32) []byte {
	h := append([]byte{}, aklzMagic[:]...)
	return binary.BigEndian.AppendUint32(h, n)
}

func TestAKLZ_KnownStreams(t *testing.T) {
	codec := NewAKLZCompressor()

	tests := []struct {
		name   string
		input  string
		stream []byte
	}{
		{
			name:   "empty",
			input:  "",
			stream: nil,
		},
		{
			name:   "literals only",
			input:  "ab",
			stream: []byte{0x03, 'a', 'b'},
		},
		{
			name:   "single back reference",
			input:  "abcabc",
			stream: []byte{0x07, 'a', 'b', 'c', 0xEE, 0xF0},
		},
		{
			name:   "lowest position wins ties",
			input:  "abcdabcdabcd",
			stream: []byte{0x0F, 'a', 'b', 'c', 'd', 0xEE, 0xF1, 0xEE, 0xF1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := append(aklzHeader(uint32(len(tt.input))), tt.stream...)

			got, err := codec.Compress([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, want, got)

			decoded, err := codec.Decompress(got)
			require.NoError(t, err)
			require.Equal(t, tt.input, string(decoded))
		})
	}
}

func TestAKLZ_RoundTrip(t *testing.T) {
	codec := NewAKLZCompressor()
	rng := rand.New(rand.NewSource(7))

	random := make([]byte, 20000)
	rng.Read(random)

	lowEntropy := make([]byte, 30000)
	for i := range lowEntropy {
		lowEntropy[i] = byte(rng.Intn(4))
	}

	inputs := map[string][]byte{
		"one byte":       {0x42},
		"two bytes":      {0x42, 0x43},
		"three bytes":    {0x42, 0x43, 0x44},
		"zeros":          make([]byte, 10000),
		"random":         random,
		"low entropy":    lowEntropy,
		"text":           bytes.Repeat([]byte("enemy parameter table / action list / "), 400),
		"window edge":    append(bytes.Repeat([]byte{0xAA}, windowSize), []byte("tail-tail-tail")...),
		"period 4097":    periodic(4097, 3*4097, rng),
		"period 4095":    periodic(4095, 3*4095, rng),
		"long repeat 18": bytes.Repeat([]byte("0123456789abcdefgh"), 300),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			packed, err := codec.Compress(input)
			require.NoError(t, err)

			n, ok := AKLZDecompressedLen(packed)
			require.True(t, ok)
			require.Equal(t, len(input), n)

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, input, unpacked)

			again, err := codec.Compress(input)
			require.NoError(t, err)
			require.Equal(t, packed, again, "output must be deterministic")
		})
	}
}

func periodic(period, size int, rng *rand.Rand) []byte {
	unit := make([]byte, period)
	rng.Read(unit)
	out := make([]byte, 0, size)
	for len(out) < size {
		out = append(out, unit...)
	}

	return out[:size]
}

func TestAKLZ_PassThrough(t *testing.T) {
	codec := NewAKLZCompressor()

	inputs := [][]byte{
		nil,
		{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x01},
		[]byte("plain container bytes without magic"),
		aklzMagic[:],                    // magic without length
		append(aklzMagic[:11:11], 0xCE), // wrong last magic byte
	}

	for _, in := range inputs {
		require.False(t, IsAKLZ(in))

		out, err := codec.Decompress(in)
		require.NoError(t, err)
		require.Equal(t, len(in), len(out))
		require.True(t, bytes.Equal(in, out))
	}
}

func TestAKLZ_Header(t *testing.T) {
	codec := NewAKLZCompressor()

	packed, err := codec.Compress(bytes.Repeat([]byte{1, 2, 3}, 100))
	require.NoError(t, err)

	require.Equal(t, []byte{0x41, 0x4B, 0x4C, 0x5A, 0x7E, 0x3F, 0x51, 0x64, 0x3D, 0xCC, 0xCC, 0xCD}, packed[:12])
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x2C}, packed[12:16])
}

func TestAKLZ_SizeMismatch(t *testing.T) {
	codec := NewAKLZCompressor()

	t.Run("stream too short", func(t *testing.T) {
		blob := append(aklzHeader(10), 0x07, 'a', 'b', 'c', 0xEE, 0xF0)
		_, err := codec.Decompress(blob)
		require.ErrorIs(t, err, errs.ErrSizeMismatch)
	})

	t.Run("dangling reference byte", func(t *testing.T) {
		blob := append(aklzHeader(6), 0x07, 'a', 'b', 'c', 0xEE)
		_, err := codec.Decompress(blob)
		require.ErrorIs(t, err, errs.ErrSizeMismatch)
	})

	t.Run("header only with nonzero length", func(t *testing.T) {
		_, err := codec.Decompress(aklzHeader(1))
		require.ErrorIs(t, err, errs.ErrSizeMismatch)
	})
}

func TestAKLZ_MatchTruncatedToDeclaredLength(t *testing.T) {
	codec := NewAKLZCompressor()

	blob := append(aklzHeader(5), 0x07, 'a', 'b', 'c', 0xEE, 0xF0)
	out, err := codec.Decompress(blob)
	require.NoError(t, err)
	require.Equal(t, "abcab", string(out))
}

func TestAKLZ_ReadsZeroFilledWindow(t *testing.T) {
	codec := NewAKLZCompressor()

	// Reference to slot 0x000 before anything was written there.
	blob := append(aklzHeader(4), 0x00, 0x00, 0x01)
	out, err := codec.Decompress(blob)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, out)
}

// TestAKLZ_NoForwardReferences walks the encoded stream and checks every
// back-reference resolves to bytes already produced.
func TestAKLZ_NoForwardReferences(t *testing.T) {
	codec := NewAKLZCompressor()
	rng := rand.New(rand.NewSource(11))

	input := make([]byte, 12000)
	for i := range input {
		input[i] = byte(rng.Intn(3))
	}

	packed, err := codec.Compress(input)
	require.NoError(t, err)

	stream := packed[AKLZHeaderSize:]
	cursor, pos := 0, 0
	for pos < len(stream) {
		flag := stream[pos]
		pos++
		for bit := 0; bit < 8 && pos < len(stream); bit++ {
			if flag&(1<<bit) != 0 {
				pos++
				cursor++

				continue
			}

			slot := int(stream[pos]) | int(stream[pos+1]&0xF0)<<4
			length := int(stream[pos+1]&0x0F) + minMatchLen
			pos += 2

			back := (physical(cursor) - slot) & windowMask
			if back == 0 {
				back = windowSize
			}
			p := cursor - back

			require.GreaterOrEqual(t, p, 0, "reference before start of output at %d", cursor)
			require.LessOrEqual(t, p+length, cursor, "reference overlaps unwritten bytes at %d", cursor)
			require.Equal(t, input[p:p+length], input[cursor:cursor+length])
			cursor += length
		}
	}
	require.Equal(t, len(input), cursor)
}

// naiveLongest scans every window position in ascending order.
func naiveLongest(data []byte, cursor int) (int, int) {
	n := len(data)
	if n-cursor < minMatchLen || cursor < minMatchLen {
		return 0, 0
	}
	limit := min(maxMatchLen, n-cursor)
	bestPos, bestLen := 0, 0
	for p := max(0, cursor-windowSize); p <= cursor-minMatchLen; p++ {
		maxLen := min(limit, cursor-p)
		l := 0
		for l < maxLen && data[p+l] == data[cursor+l] {
			l++
		}
		if l >= minMatchLen && l > bestLen {
			bestPos, bestLen = p, l
			if bestLen == limit {
				break
			}
		}
	}

	return bestPos, bestLen
}

func TestAKLZ_MatcherAgreesWithLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(23))

	for _, alphabet := range []int{2, 5, 256} {
		data := make([]byte, 9000)
		for i := range data {
			data[i] = byte(rng.Intn(alphabet))
		}

		m := newMatcher(data)
		cursor := 0
		for cursor < len(data) {
			gotPos, gotLen := m.longest(cursor)
			wantPos, wantLen := naiveLongest(data, cursor)
			if wantLen < minMatchLen {
				require.Less(t, gotLen, minMatchLen, "cursor %d", cursor)
			} else {
				require.Equal(t, wantLen, gotLen, "cursor %d", cursor)
				require.Equal(t, wantPos, gotPos, "cursor %d", cursor)
			}

			step := 1
			if gotLen >= minMatchLen {
				step = gotLen
			}
			m.advance(cursor, step)
			cursor += step
		}
	}
}

func TestWindow_CopyMatchOverlap(t *testing.T) {
	w := newWindow()
	w.put('x')

	// A run-length style copy reads the byte it just wrote.
	out := w.copyMatch(nil, windowStart, 5)
	require.Equal(t, "xxxxx", string(out))
	require.Equal(t, physical(6), w.pos)
}

func BenchmarkAKLZ_Compress(b *testing.B) {
	data := bytes.Repeat([]byte("level will vigor agile quick attack defense "), 2000)
	codec := NewAKLZCompressor()

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		_, _ = codec.Compress(data)
	}
}

func BenchmarkAKLZ_Decompress(b *testing.B) {
	data := bytes.Repeat([]byte("level will vigor agile quick attack defense "), 2000)
	codec := NewAKLZCompressor()
	packed, _ := codec.Compress(data)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		_, _ = codec.Decompress(packed)
	}
}
