// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "sync"

// Buffer is an owned, contiguous memory region carrying either plain
// payload bytes or, when Components is non-empty, a fully-filled
// composite of logical sub-buffers packed back to back inside Data
// (spec.md §3's "fully-filled composite", §9's "FullyFilledBuffer
// downcast" redesign note: callers pattern-match on Components instead
// of a runtime type test).
type Buffer struct {
	Data         []byte
	Size         uint32
	DataType     DataType
	IsCompressed bool

	// Components holds the size of each logical sub-buffer packed into
	// Data, in order, when this Buffer is a fully-filled composite.
	// len(Components) == 0 means Data is a single logical unit.
	Components []uint32

	recycle func(*Buffer)
}

// IsComposite reports whether this Buffer packs multiple logical
// sub-buffers (spec.md §3, §4.4).
func (b *Buffer) IsComposite() bool {
	return b != nil && len(b.Components) > 0
}

// Recycle returns the buffer to its pool. It is safe to call on a nil
// Buffer (no-op), matching the "BufferResponse with size==0 carries no
// attached buffer" invariant where callers recycle unconditionally.
func (b *Buffer) Recycle() {
	if b == nil || b.recycle == nil {
		return
	}
	fn := b.recycle
	b.recycle = nil
	fn(b)
}

// Allocator supplies buffers for incoming BufferResponse messages. It is
// an external collaborator (spec.md §1, §6): this package only consumes
// the interface, never implements pool internals itself beyond the
// simple default below.
//
// AllocatePooled returns (nil, false) — not an error — when the target
// channel is gone or no credit remains; this replaces the original
// null-as-signal with an explicit option-like return (spec.md §9).
type Allocator interface {
	AllocatePooled(ch ChannelID) (buf *Buffer, ok bool)
	AllocateUnpooled(size uint32, dt DataType) *Buffer
}

// defaultAllocator is a sync.Pool-backed Allocator used when Options
// doesn't supply one. It never refuses a pooled allocation (it has no
// notion of "channel gone" or credit), so it is meant for tests and
// single-process wiring rather than a production shuffle service, which
// is expected to supply its own channel- and credit-aware Allocator
// (spec.md §1 treats the pool as an external collaborator).
type defaultAllocator struct {
	pool sync.Pool
}

// NewDefaultAllocator returns an Allocator whose pooled buffers are
// backed by a sync.Pool of byteSize-capacity slices.
func NewDefaultAllocator(byteSize int) Allocator {
	a := &defaultAllocator{}
	a.pool.New = func() any {
		return make([]byte, byteSize)
	}
	return a
}

func (a *defaultAllocator) AllocatePooled(ChannelID) (*Buffer, bool) {
	data := a.pool.Get().([]byte)
	buf := &Buffer{Data: data}
	buf.recycle = func(b *Buffer) {
		a.pool.Put(b.Data) //nolint:staticcheck // intentional reuse, size fixed at construction
	}
	return buf, true
}

func (a *defaultAllocator) AllocateUnpooled(size uint32, dt DataType) *Buffer {
	return &Buffer{Data: make([]byte, size), Size: size, DataType: dt}
}
