// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// Relay forwards whole frames from a source stream to a destination
// stream without decoding their bodies into Message values: it validates
// only the frame prefix (magic, length, msg_id) and reproduces the exact
// bytes downstream. This is the multiplexing proxy/fan-out case implied
// by spec.md §1's "single long-lived connection" — relaying channels
// between an intermediate hop and a final consumer without paying for a
// full decode/re-encode round trip.
//
// Semantics, adapted from this package's framing lineage:
//   - One call to ForwardOnce relays at most one frame.
//   - Two-phase state machine per frame: (1) read the frame (header then
//     body) into an internal buffer, non-blocking; (2) write that same
//     buffer as one frame to dst, non-blocking.
//   - Returns (n, nil) once a whole frame has been forwarded.
//   - Returns (n>0, ErrWouldBlock|ErrMore) when the current phase made
//     partial progress; the caller must retry ForwardOnce on the same
//     Relay to complete the in-flight frame.
//   - A frame whose body exceeds the internal buffer's capacity yields
//     io.ErrShortBuffer; construct a new Relay with a larger WithReadLimit
//     to accommodate it.
type Relay struct {
	rd rawIO
	wr rawIO

	readLimit int64

	// frame is the reusable buffer holding one in-flight frame: the
	// 9-byte prefix followed by its body, sized to readLimit (or a 64KiB
	// default) plus the prefix so steady-state forwarding never
	// reallocates.
	frame []byte

	headerOff int
	need      int // body length for the in-flight frame
	got       int // body bytes read so far
	writeOff  int
	state     uint8 // 0: parse header, 1: read body, 2: write frame
}

// NewRelay constructs a Relay forwarding frames read from src to dst.
func NewRelay(dst io.Writer, src io.Reader, opts ...Option) *Relay {
	o := resolveOptions(opts)
	capHint := o.ReadLimit
	if capHint <= 0 {
		capHint = 64 * 1024
	}
	return &Relay{
		rd:        rawIO{rd: src, retryDelay: o.RetryDelay},
		wr:        rawIO{wr: dst, retryDelay: o.RetryDelay},
		readLimit: o.ReadLimit,
		frame:     make([]byte, frameHeaderWireLen+int(capHint)),
	}
}

// ForwardOnce relays at most one frame. See Relay docs for semantics. n
// reflects progress in the current phase: body bytes read during the
// read phase, or total frame bytes written during the write phase.
func (r *Relay) ForwardOnce() (n int, err error) {
	if r.state == 0 {
		if err := r.rd.readFull(r.frame[0:frameHeaderWireLen], &r.headerOff); err != nil {
			if err == io.EOF && r.headerOff == 0 {
				return 0, io.EOF
			}
			return 0, err
		}

		length := getUint32(r.frame[0:4])
		magic := getUint32(r.frame[4:8])
		if magic != frameMagic {
			return 0, ErrStreamCorruption
		}
		if length < frameHeaderWireLen || length > frameMaxLength {
			return 0, ErrStreamCorruption
		}
		msgID := MsgID(r.frame[8])
		if int(msgID) >= numMsgKinds || catalog[msgID] == nil {
			return 0, ErrUnknownMessage
		}

		bodyLen := int(length - frameHeaderWireLen)
		if r.readLimit > 0 && int64(bodyLen) > r.readLimit {
			return 0, ErrTooLong
		}
		if bodyLen > len(r.frame)-frameHeaderWireLen {
			return 0, io.ErrShortBuffer
		}

		r.need = bodyLen
		r.got = 0
		r.state = 1
	}

	if r.state == 1 {
		for r.got < r.need {
			rn, re := r.rd.readOnce(r.frame[frameHeaderWireLen+r.got : frameHeaderWireLen+r.need])
			r.got += rn
			if re != nil {
				switch re {
				case ErrWouldBlock, ErrMore:
					return rn, re
				case io.EOF:
					return r.got, io.ErrUnexpectedEOF
				default:
					return rn, re
				}
			}
		}
		r.writeOff = 0
		r.state = 2
	}

	total := frameHeaderWireLen + r.need
	wn, we := 0, error(nil)
	if r.state == 2 {
		wn, we = r.wr.writeOnce(r.frame[r.writeOff:total])
		r.writeOff += wn
		if we != nil {
			if we == ErrWouldBlock || we == ErrMore {
				return wn, we
			}
			return wn, we
		}
		if r.writeOff < total {
			return wn, ErrMore
		}

		r.headerOff, r.need, r.got, r.writeOff = 0, 0, 0, 0
		r.state = 0
		return total, nil
	}

	return 0, nil
}
