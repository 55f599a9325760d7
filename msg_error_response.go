// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import (
	"encoding/binary"
	"io"
)

// ErrorResponse (msg_id=1, producer -> consumer) carries either a
// per-channel failure (ReceiverID set) or a fatal connection error
// (ReceiverID absent). A fatal error tears down the connection after
// delivering Cause to every local channel; a per-channel error is
// delivered only to the named channel (spec.md §4.3.2).
//
// The body's cause representation is redefined per spec.md §9's design
// note: instead of a language-native serialized-object form (which has no
// cross-language peer here), it is ⟨error_class, message, stack⟩, each a
// length-prefixed UTF-8 string.
type ErrorResponse struct {
	// HasReceiverID reports whether this is a per-channel (true) or
	// connection-fatal (false) error.
	HasReceiverID bool
	ReceiverID    ChannelID
	Cause         ErrorCause
}

// ErrorCause is the cross-language replacement for a serialized throwable.
type ErrorCause struct {
	ErrorClass string
	Message    string
	Stack      string
}

func (ErrorResponse) ID() MsgID { return MsgErrorResponse }

func (m ErrorResponse) WriteTo(w io.Writer) (int64, error) {
	size := 1
	if m.HasReceiverID {
		size += receiverIDWireLen
	}
	size += 2 + len(m.Cause.ErrorClass)
	size += 2 + len(m.Cause.Message)
	size += 4 + len(m.Cause.Stack)

	buf := make([]byte, size)
	off := 0
	if m.HasReceiverID {
		buf[off] = 1
	}
	off++
	if m.HasReceiverID {
		putChannelID(buf[off:off+receiverIDWireLen], m.ReceiverID)
		off += receiverIDWireLen
	}
	off += putUTF8_16(buf[off:], m.Cause.ErrorClass)
	off += putUTF8_16(buf[off:], m.Cause.Message)
	putUTF8_32(buf[off:], m.Cause.Stack)

	n, err := w.Write(buf)
	return int64(n), err
}

func putUTF8_16(buf []byte, s string) int {
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(s)))
	copy(buf[2:], s)
	return 2 + len(s)
}

func putUTF8_32(buf []byte, s string) int {
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(s)))
	copy(buf[4:], s)
	return 4 + len(s)
}

func getUTF8_16(data []byte, kind MsgID) (string, int, error) {
	if err := needAtLeast(data, 2, kind); err != nil {
		return "", 0, err
	}
	l := int(binary.BigEndian.Uint16(data[0:2]))
	if err := needAtLeast(data, 2+l, kind); err != nil {
		return "", 0, err
	}
	return string(data[2 : 2+l]), 2 + l, nil
}

func getUTF8_32(data []byte, kind MsgID) (string, int, error) {
	if err := needAtLeast(data, 4, kind); err != nil {
		return "", 0, err
	}
	l := int(binary.BigEndian.Uint32(data[0:4]))
	if err := needAtLeast(data, 4+l, kind); err != nil {
		return "", 0, err
	}
	return string(data[4 : 4+l]), 4 + l, nil
}

func decodeErrorResponse(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 1, MsgErrorResponse); err != nil {
		return nil, err
	}
	hasReceiver := data[0] != 0
	off := 1

	var receiverID ChannelID
	if hasReceiver {
		if err := needAtLeast(data, off+receiverIDWireLen, MsgErrorResponse); err != nil {
			return nil, err
		}
		receiverID = getChannelID(data[off:])
		off += receiverIDWireLen
	}

	errorClass, n, err := getUTF8_16(data[off:], MsgErrorResponse)
	if err != nil {
		return nil, err
	}
	off += n

	message, n, err := getUTF8_16(data[off:], MsgErrorResponse)
	if err != nil {
		return nil, err
	}
	off += n

	stack, _, err := getUTF8_32(data[off:], MsgErrorResponse)
	if err != nil {
		return nil, err
	}

	return ErrorResponse{
		HasReceiverID: hasReceiver,
		ReceiverID:    receiverID,
		Cause: ErrorCause{
			ErrorClass: errorClass,
			Message:    message,
			Stack:      stack,
		},
	}, nil
}
