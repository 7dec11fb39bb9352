package compress

// Sliding window geometry shared by the AKLZ encoder and decoder.
const (
	windowSize  = 0x1000
	windowMask  = windowSize - 1
	minMatchLen = 3
	maxMatchLen = minMatchLen + 0x0F
	// windowStart is the physical slot that receives the first output byte.
	windowStart = windowSize - maxMatchLen
)

// window is the 4096-byte circular history buffer of the AKLZ format.
//
// The decoder writes every produced byte into it and resolves matches
// against physical slots. The encoder never materializes the buffer; it
// works on logical positions into its input and uses physical to translate
// a logical position into the slot a decoder will have written it to.
type window struct {
	buf [windowSize]byte
	pos int
}

func newWindow() *window {
	return &window{pos: windowStart}
}

// physical maps a 0-based logical output position to its window slot.
func physical(logical int) int {
	return (logical + windowStart) & windowMask
}

func (w *window) put(b byte) {
	w.buf[w.pos] = b
	w.pos = (w.pos + 1) & windowMask
}

// copyMatch appends n bytes starting at physical slot src to dst, feeding
// each byte back into the window as it goes.
func (w *window) copyMatch(dst []byte, src, n int) []byte {
	for i := range n {
		b := w.buf[(src+i)&windowMask]
		dst = append(dst, b)
		w.put(b)
	}

	return dst
}
