// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// ResumeConsumption (msg_id=7, consumer -> producer): ⟨receiver_id⟩.
// Signals that a consumer paused after an unaligned checkpoint barrier is
// now ready to resume (spec.md §4.3.8, §4.5 "Checkpoint pause").
type ResumeConsumption struct {
	ReceiverID ChannelID
}

func (ResumeConsumption) ID() MsgID { return MsgResumeConsumption }

func (m ResumeConsumption) WriteTo(w io.Writer) (int64, error) {
	var buf [receiverIDWireLen]byte
	putChannelID(buf[:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeResumeConsumption(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, receiverIDWireLen, MsgResumeConsumption); err != nil {
		return nil, err
	}
	return ResumeConsumption{ReceiverID: getChannelID(data)}, nil
}
