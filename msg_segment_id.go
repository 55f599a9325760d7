// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// SegmentId (msg_id=11, consumer -> producer): ⟨subpartition_id:4,
// segment_id:4, receiver_id⟩, segment_id > 0. Requests the producer
// resume (or start) with the named segment within the subpartition
// (spec.md §4.3.12).
type SegmentId struct {
	SubpartitionID uint32
	SegmentID      uint32
	ReceiverID     ChannelID
}

func (SegmentId) ID() MsgID { return MsgSegmentId }

func (m SegmentId) WriteTo(w io.Writer) (int64, error) {
	var buf [8 + receiverIDWireLen]byte
	putUint32(buf[0:4], m.SubpartitionID)
	putUint32(buf[4:8], m.SegmentID)
	putChannelID(buf[8:], m.ReceiverID)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func decodeSegmentId(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 8+receiverIDWireLen, MsgSegmentId); err != nil {
		return nil, err
	}
	segID := getUint32(data[4:8])
	if segID == 0 {
		return nil, wrapContractViolation("SegmentId: segment_id must be positive")
	}
	return SegmentId{
		SubpartitionID: getUint32(data[0:4]),
		SegmentID:      segID,
		ReceiverID:     getChannelID(data[8:]),
	}, nil
}
