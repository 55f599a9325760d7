// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// AddCredit (msg_id=6, consumer -> producer): ⟨credit:4, receiver_id⟩,
// credit > 0. Increments the producer's credit for the channel by credit
// (spec.md §4.3.7, §4.5 "Credit semantics").
type AddCredit struct {
	Credit     uint32
	ReceiverID ChannelID
}

func (AddCredit) ID() MsgID { return MsgAddCredit }

func (m AddCredit) WriteTo(w io.Writer) (int64, error) {
	var buf [4 + receiverIDWireLen]byte
	putUint32(buf[0:4], m.Credit)
	putChannelID(buf[4:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeAddCredit(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 4+receiverIDWireLen, MsgAddCredit); err != nil {
		return nil, err
	}
	credit := getUint32(data[0:4])
	if credit == 0 {
		return nil, wrapContractViolation("AddCredit: credit must be positive")
	}
	return AddCredit{Credit: credit, ReceiverID: getChannelID(data[4:])}, nil
}
