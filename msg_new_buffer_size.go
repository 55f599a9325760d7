// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// NewBufferSize (msg_id=10, consumer -> producer): ⟨buffer_size:4,
// receiver_id⟩, buffer_size > 0. Requests that subsequent buffers for
// this channel be produced at the given size, for network debloating
// (spec.md §4.3.11); it takes effect starting with the next new pooled
// buffer the producer allocates (spec.md §4.5 "Resize").
type NewBufferSize struct {
	BufferSize uint32
	ReceiverID ChannelID
}

func (NewBufferSize) ID() MsgID { return MsgNewBufferSize }

func (m NewBufferSize) WriteTo(w io.Writer) (int64, error) {
	var buf [4 + receiverIDWireLen]byte
	putUint32(buf[0:4], m.BufferSize)
	putChannelID(buf[4:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeNewBufferSize(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 4+receiverIDWireLen, MsgNewBufferSize); err != nil {
		return nil, err
	}
	size := getUint32(data[0:4])
	if size == 0 {
		return nil, wrapContractViolation("NewBufferSize: buffer_size must be positive")
	}
	return NewBufferSize{BufferSize: size, ReceiverID: getChannelID(data[4:])}, nil
}
