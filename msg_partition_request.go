// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// PartitionRequest (msg_id=2, consumer -> producer):
// ⟨partition_id, subpartition_index_set, receiver_id, initial_credit⟩.
// Requests that the producer begin streaming the given subpartition set
// to the consumer's channel with an initial credit budget. The producer
// must not send any BufferResponse for this channel before receiving
// this request (spec.md §4.3.3, §4.5 "Initialization").
type PartitionRequest struct {
	PartitionID   PartitionID
	Subpartitions SubpartitionIndexSet
	ReceiverID    ChannelID
	InitialCredit uint32
}

func (PartitionRequest) ID() MsgID { return MsgPartitionRequest }

func (m PartitionRequest) WriteTo(w io.Writer) (int64, error) {
	setLen := m.Subpartitions.WireLen()
	buf := make([]byte, partitionIDWireLen+setLen+receiverIDWireLen+4)
	writePartitionID(buf, m.PartitionID)
	off := partitionIDWireLen
	writeSubpartitionIndexSet(buf[off:off+setLen], m.Subpartitions)
	off += setLen
	putChannelID(buf[off:off+receiverIDWireLen], m.ReceiverID)
	off += receiverIDWireLen
	putUint32(buf[off:off+4], m.InitialCredit)
	n, err := w.Write(buf)
	return int64(n), err
}

func decodePartitionRequest(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, partitionIDWireLen, MsgPartitionRequest); err != nil {
		return nil, err
	}
	pid := readPartitionID(data)
	off := partitionIDWireLen

	if err := needAtLeast(data, off+2, MsgPartitionRequest); err != nil {
		return nil, err
	}
	set, err := readSubpartitionIndexSet(data[off:])
	if err != nil {
		return nil, err
	}
	off += set.WireLen()

	if err := needAtLeast(data, off+receiverIDWireLen+4, MsgPartitionRequest); err != nil {
		return nil, err
	}
	receiverID := getChannelID(data[off:])
	off += receiverIDWireLen
	credit := getUint32(data[off : off+4])

	return PartitionRequest{
		PartitionID:   pid,
		Subpartitions: set,
		ReceiverID:    receiverID,
		InitialCredit: credit,
	}, nil
}
