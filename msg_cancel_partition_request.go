// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// CancelPartitionRequest (msg_id=4, consumer -> producer): ⟨receiver_id⟩.
// The producer must stop sending for that channel and release any
// producer-side state tied to it; this is unilateral and any further
// frames for the channel from the consumer are ignored (spec.md §4.3.5,
// §4.5 "Cancellation").
type CancelPartitionRequest struct {
	ReceiverID ChannelID
}

func (CancelPartitionRequest) ID() MsgID { return MsgCancelPartitionRequest }

func (m CancelPartitionRequest) WriteTo(w io.Writer) (int64, error) {
	var buf [receiverIDWireLen]byte
	putChannelID(buf[:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeCancelPartitionRequest(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, receiverIDWireLen, MsgCancelPartitionRequest); err != nil {
		return nil, err
	}
	return CancelPartitionRequest{ReceiverID: getChannelID(data)}, nil
}
