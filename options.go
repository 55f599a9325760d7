// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "time"

// Options configures a Decoder, Encoder, or Connection.
//
// Unlike the framing layer this package descends from, the wire format
// here is pinned by protocol: always big-endian, always a length-prefixed
// stream (spec §3/§4.2 — "no endianness ambiguity"). There is therefore no
// byte-order or transport-boundary option; what remains configurable is
// resource limits, buffer allocation, and the I/O retry policy.
type Options struct {
	// ReadLimit caps the maximum allowed frame payload size in bytes.
	// Zero means the protocol maximum (2^31-1-9).
	ReadLimit int64

	// Allocator supplies buffers for incoming BufferResponse messages.
	// Defaults to a sync.Pool-backed pooled allocator plus a plain
	// unpooled allocator for event-kind data types.
	Allocator Allocator

	// EventCodec is the codec for TaskEventRequest event bytes. Defaults
	// to a codec that treats the bytes as already-opaque and returns them
	// unchanged (callers needing structure can use eventcodec.New() or
	// their own). The Decoder stores it but does not call it: a decoded
	// TaskEventRequest carries the raw EventBytes, and
	// TaskEventRequest.DecodeEvent takes its codec as an argument.
	EventCodec EventCodec

	// RetryDelay controls how Decode/Encode handle iox.ErrWouldBlock from
	// the underlying transport:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	RetryDelay time.Duration
}

var defaultOptions = Options{
	ReadLimit:  0,
	Allocator:  nil, // resolved to globalFallbackAllocator lazily, see attachIncomingBuffer
	EventCodec: passthroughEventCodec{},
	RetryDelay: -1, // default: nonblock
}

// Option configures Options.
type Option func(*Options)

// WithReadLimit caps the maximum allowed frame payload size in bytes.
func WithReadLimit(limit int64) Option {
	return func(o *Options) { o.ReadLimit = limit }
}

// WithAllocator supplies the buffer allocator used to satisfy incoming
// BufferResponse messages.
func WithAllocator(a Allocator) Option {
	return func(o *Options) { o.Allocator = a }
}

// WithEventCodec sets Options.EventCodec. Decoding does not apply it to
// TaskEventRequest event bytes; see Options.EventCodec.
func WithEventCodec(c EventCodec) Option {
	return func(o *Options) { o.EventCodec = c }
}

// WithRetryDelay sets the retry/wait policy used when the underlying
// transport returns iox.ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on iox.ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior (return iox.ErrWouldBlock immediately).
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}
