// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// BacklogAnnouncement (msg_id=9, producer -> consumer): ⟨backlog:4,
// receiver_id⟩, backlog > 0. Purely advisory; does not entitle the
// producer to send data (spec.md §4.3.10).
type BacklogAnnouncement struct {
	Backlog    uint32
	ReceiverID ChannelID
}

func (BacklogAnnouncement) ID() MsgID { return MsgBacklogAnnouncement }

func (m BacklogAnnouncement) WriteTo(w io.Writer) (int64, error) {
	var buf [4 + receiverIDWireLen]byte
	putUint32(buf[0:4], m.Backlog)
	putChannelID(buf[4:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeBacklogAnnouncement(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 4+receiverIDWireLen, MsgBacklogAnnouncement); err != nil {
		return nil, err
	}
	backlog := getUint32(data[0:4])
	if backlog == 0 {
		return nil, wrapContractViolation("BacklogAnnouncement: backlog must be positive")
	}
	return BacklogAnnouncement{Backlog: backlog, ReceiverID: getChannelID(data[4:])}, nil
}
