// Package pool keeps reusable buffers for assembling containers, segments
// and snapshots.
package pool

import (
	"slices"
	"sync"
)

// Buffer sizes. A rebuilt segment holds at most 84 records with their action
// tails; a container or snapshot holds many segments.
const (
	SegmentBufferDefaultSize   = 8 << 10   // 8KiB
	SegmentBufferMaxRetained   = 256 << 10 // 256KiB
	ContainerBufferDefaultSize = 256 << 10 // 256KiB
	ContainerBufferMaxRetained = 16 << 20  // 16MiB
)

// ByteBuffer is an append-only byte slice. Callers append to B directly or
// through Write and Reserve, then take the result with Detach.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the
// buffer is modified or returned to its pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Detach returns a copy of the buffered bytes that outlives the buffer.
func (bb *ByteBuffer) Detach() []byte {
	return slices.Clone(bb.B)
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow makes room for n more bytes.
func (bb *ByteBuffer) Grow(n int) {
	bb.B = slices.Grow(bb.B, n)
}

// Reserve appends n zero bytes and returns them for the caller to fill in.
// Fixed-width headers and table entries are written this way.
func (bb *ByteBuffer) Reserve(n int) []byte {
	start := len(bb.B)
	bb.B = slices.Grow(bb.B, n)[:start+n]
	region := bb.B[start:]
	clear(region)

	return region
}

// Write appends p. It never fails.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.B = append(bb.B, p...)
	return len(p), nil
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew beyond maxRetained
// are left to the garbage collector so one oversized container does not pin
// its memory.
type ByteBufferPool struct {
	pool        sync.Pool
	maxRetained int
}

// NewByteBufferPool creates a pool of buffers starting at defaultSize bytes.
// A maxRetained of zero retains every buffer.
func NewByteBufferPool(defaultSize, maxRetained int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxRetained: maxRetained,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. bb must not be used afterwards.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.maxRetained > 0 && cap(bb.B) > p.maxRetained) {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	segmentPool   = NewByteBufferPool(SegmentBufferDefaultSize, SegmentBufferMaxRetained)
	containerPool = NewByteBufferPool(ContainerBufferDefaultSize, ContainerBufferMaxRetained)
)

// GetSegmentBuffer returns a buffer for one rebuilt record segment.
func GetSegmentBuffer() *ByteBuffer { return segmentPool.Get() }

// PutSegmentBuffer releases a buffer from GetSegmentBuffer.
func PutSegmentBuffer(bb *ByteBuffer) { segmentPool.Put(bb) }

// GetContainerBuffer returns a buffer for a multi-segment container or a
// snapshot.
func GetContainerBuffer() *ByteBuffer { return containerPool.Get() }

// PutContainerBuffer releases a buffer from GetContainerBuffer.
func PutContainerBuffer(bb *ByteBuffer) { containerPool.Put(bb) }
