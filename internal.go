// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import (
	"io"
	"runtime"
	"time"
)

// rawIO wraps an io.Reader/io.Writer pair with the non-blocking retry
// contract shared by Decoder, Encoder, and Relay: iox.ErrWouldBlock is a
// control-flow signal, not a failure, and retryDelay governs whether the
// call returns it at once (negative), yields and retries (zero), or
// sleeps and retries (positive).
type rawIO struct {
	rd io.Reader
	wr io.Writer

	retryDelay time.Duration
}

func (io_ *rawIO) waitOnceOnWouldBlock() bool {
	// returns whether the caller should retry
	if io_.retryDelay < 0 {
		return false
	}
	if io_.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(io_.retryDelay)
	return true
}

// readOnce reads into p, retrying on iox.ErrWouldBlock per retryDelay.
// Guards against broken Readers that violate the io.Reader contract by
// returning (0, nil) on a non-empty buffer, which would otherwise spin
// the caller's state machine indefinitely.
func (io_ *rawIO) readOnce(p []byte) (n int, err error) {
	if io_.rd == nil {
		return 0, ErrInvalidArgument
	}
	for {
		n, err = io_.rd.Read(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !io_.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

// writeOnce writes p, retrying on iox.ErrWouldBlock per retryDelay.
func (io_ *rawIO) writeOnce(p []byte) (n int, err error) {
	if io_.wr == nil {
		return 0, ErrInvalidArgument
	}
	for {
		n, err = io_.wr.Write(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrShortWrite
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !io_.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

// readFull repeatedly calls readOnce until buf is completely filled. An
// EOF with nothing yet read for this field (*off == 0) is a clean stream
// boundary and passes through as io.EOF; an EOF after partial progress is
// a truncated field and becomes io.ErrUnexpectedEOF. It is the resumable
// primitive every frame field (header, partial-size array, payload) reads
// through; partial progress across ErrWouldBlock/ErrMore is preserved by
// the caller re-invoking readFull with the same buf and a resumed offset.
func (io_ *rawIO) readFull(buf []byte, off *int) error {
	for *off < len(buf) {
		n, err := io_.readOnce(buf[*off:])
		*off += n
		if err != nil {
			if err == io.EOF {
				if *off == len(buf) {
					return nil
				}
				if *off == 0 {
					return io.EOF
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// writeFull repeatedly calls writeOnce until buf is completely written.
func (io_ *rawIO) writeFull(buf []byte, off *int) error {
	for *off < len(buf) {
		n, err := io_.writeOnce(buf[*off:])
		*off += n
		if err != nil {
			return err
		}
	}
	return nil
}
