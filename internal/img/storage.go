package img

import (
	"sync"
	"sync/atomic"
)

// dataBlock is the reference-counted data segment shared by every view
// derived from an image. The count is atomic so that views held by different
// goroutines can be released without external locking; sample data itself is
// not synchronized here.
type dataBlock struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // for safe deallocation
}

// newDataBlock allocates a zero-initialized block with refCount = 1.
func newDataBlock(size int) *dataBlock {
	b := &dataBlock{
		data: make([]byte, size),
	}
	b.refCount.Store(1)
	return b
}

// wrapDataBlock adopts externally allocated bytes with refCount = 1.
func wrapDataBlock(data []byte) *dataBlock {
	if data == nil {
		data = []byte{}
	}
	b := &dataBlock{data: data}
	b.refCount.Store(1)
	return b
}

// addRef increments the reference count (view creation).
func (b *dataBlock) addRef() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops the data when it reaches
// zero.
func (b *dataBlock) release() {
	if b.refCount.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

// isUnique reports whether exactly one view references the block, which is
// what permits in-place storage reuse.
func (b *dataBlock) isUnique() bool {
	return b.refCount.Load() == 1
}

// shareCount returns the number of views referencing the block.
func (b *dataBlock) shareCount() int {
	return int(b.refCount.Load())
}
