// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// AckAllUserRecordsProcessed (msg_id=8, consumer -> producer):
// ⟨receiver_id⟩. Signals that the consumer has processed all preceding
// user records for this channel, letting the producer advance an
// end-of-stream protocol (spec.md §4.3.9, §4.5 "End of stream").
type AckAllUserRecordsProcessed struct {
	ReceiverID ChannelID
}

func (AckAllUserRecordsProcessed) ID() MsgID { return MsgAckAllUserRecordsProcessed }

func (m AckAllUserRecordsProcessed) WriteTo(w io.Writer) (int64, error) {
	var buf [receiverIDWireLen]byte
	putChannelID(buf[:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeAckAllUserRecordsProcessed(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, receiverIDWireLen, MsgAckAllUserRecordsProcessed); err != nil {
		return nil, err
	}
	return AckAllUserRecordsProcessed{ReceiverID: getChannelID(data)}, nil
}
