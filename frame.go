// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import (
	"bytes"
	"io"
)

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decoder reads one shuffle wire frame at a time from an underlying
// stream: ⟨length:4, magic:4, msg_id:1, body:length-9⟩, all big-endian
// (spec.md §3). It buffers a frame's entire body before dispatching to
// the message catalog, trading strict field-by-field zero-copy resume
// for a simple, fully-resumable two-phase state machine across
// iox.ErrWouldBlock (spec.md §4.2, §4.4).
type Decoder struct {
	io rawIO
	dc decodeContext

	readLimit int64

	header    [frameHeaderWireLen]byte
	headerOff int

	msgID   MsgID
	body    []byte
	bodyOff int

	haveHeader bool
}

// NewDecoder returns a Decoder reading frames from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := resolveOptions(opts)
	return &Decoder{
		io:        rawIO{rd: r, retryDelay: o.RetryDelay},
		dc:        decodeContext{allocator: o.Allocator, eventCodec: o.EventCodec},
		readLimit: o.ReadLimit,
	}
}

// Decode reads and returns the next message. A call that returns
// ErrWouldBlock (possible unless the Decoder was built with WithBlock or
// a non-negative WithRetryDelay) may be retried; the partially-read frame
// resumes from where it left off. ErrStreamCorruption (bad magic or
// length), ErrUnknownMessage and ErrTooLong are fatal: the stream can no
// longer be framed correctly and the connection must be torn down
// (spec.md §7). An error from the message's own body decoder (for
// example ErrDecodeFailure) is returned after the whole frame has been
// consumed, so the next Decode starts at the following frame.
func (d *Decoder) Decode() (Message, error) {
	if !d.haveHeader {
		if err := d.io.readFull(d.header[:], &d.headerOff); err != nil {
			return nil, err
		}
		length := getUint32(d.header[0:4])
		magic := getUint32(d.header[4:8])
		if magic != frameMagic {
			return nil, ErrStreamCorruption
		}
		if length < frameHeaderWireLen || length > frameMaxLength {
			return nil, ErrStreamCorruption
		}
		msgID := MsgID(d.header[8])
		if int(msgID) >= numMsgKinds || catalog[msgID] == nil {
			return nil, ErrUnknownMessage
		}
		bodyLen := int64(length - frameHeaderWireLen)
		if d.readLimit > 0 && bodyLen > d.readLimit {
			return nil, ErrTooLong
		}
		d.msgID = msgID
		d.body = make([]byte, bodyLen)
		d.bodyOff = 0
		d.haveHeader = true
	}

	if err := d.io.readFull(d.body, &d.bodyOff); err != nil {
		return nil, err
	}

	msg, err := catalog[d.msgID](d.body, &d.dc)
	d.resetFrame()
	return msg, err
}

func (d *Decoder) resetFrame() {
	d.headerOff = 0
	d.haveHeader = false
	d.body = nil
	d.bodyOff = 0
}

// Encoder writes shuffle wire frames to an underlying stream.
type Encoder struct {
	io rawIO
}

// NewEncoder returns an Encoder writing frames to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := resolveOptions(opts)
	return &Encoder{io: rawIO{wr: w, retryDelay: o.RetryDelay}}
}

// Encode serializes msg as one complete frame and writes it to the
// underlying stream. If msg owns an attached Buffer (BufferResponse), it
// is recycled exactly once before Encode returns, whether or not the
// write succeeded (spec.md §3's buffer-lifecycle invariant).
func (e *Encoder) Encode(msg Message) error {
	if bo, ok := msg.(bufferOwner); ok {
		defer bo.ownedBuffer().Recycle()
	}

	var body bytes.Buffer
	if _, err := msg.WriteTo(&body); err != nil {
		return err
	}

	total := frameHeaderWireLen + body.Len()
	if uint32(total) > frameMaxLength {
		return ErrTooLong
	}

	frame := make([]byte, total)
	putUint32(frame[0:4], uint32(total))
	putUint32(frame[4:8], frameMagic)
	frame[8] = byte(msg.ID())
	copy(frame[frameHeaderWireLen:], body.Bytes())

	off := 0
	return e.io.writeFull(frame, &off)
}
