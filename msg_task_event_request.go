// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// TaskEventRequest (msg_id=3, either direction): ⟨length:4,
// event_bytes:length, partition_id, receiver_id⟩. The event bytes are an
// opaque blob produced/consumed by an EventCodec (spec.md §4.3.4, §6).
// Decoding the frame keeps the bytes as they are; DecodeEvent invokes a
// codec on them with the caller's context.
type TaskEventRequest struct {
	EventBytes  []byte
	PartitionID PartitionID
	ReceiverID  ChannelID
}

func (TaskEventRequest) ID() MsgID { return MsgTaskEventRequest }

func (m TaskEventRequest) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 4+len(m.EventBytes)+partitionIDWireLen+receiverIDWireLen)
	putUint32(buf[0:4], uint32(len(m.EventBytes)))
	off := 4
	copy(buf[off:], m.EventBytes)
	off += len(m.EventBytes)
	writePartitionID(buf[off:off+partitionIDWireLen], m.PartitionID)
	off += partitionIDWireLen
	putChannelID(buf[off:off+receiverIDWireLen], m.ReceiverID)
	n, err := w.Write(buf)
	return int64(n), err
}

func decodeTaskEventRequest(data []byte, _ *decodeContext) (Message, error) {
	if err := needAtLeast(data, 4, MsgTaskEventRequest); err != nil {
		return nil, err
	}
	length := int(getUint32(data[0:4]))
	off := 4
	if err := needAtLeast(data, off+length+partitionIDWireLen+receiverIDWireLen, MsgTaskEventRequest); err != nil {
		return nil, err
	}
	eventBytes := append([]byte(nil), data[off:off+length]...)
	off += length
	pid := readPartitionID(data[off:])
	off += partitionIDWireLen
	receiverID := getChannelID(data[off:])

	return TaskEventRequest{
		EventBytes:  eventBytes,
		PartitionID: pid,
		ReceiverID:  receiverID,
	}, nil
}

// DecodeEvent deserializes m.EventBytes using codec, giving ctx as the
// caller-supplied registry/class context (spec.md §6). Content-level
// deserialization failure here is recoverable at this channel's
// granularity, not fatal to the connection (spec.md §7 DecodeFailure).
func (m TaskEventRequest) DecodeEvent(codec EventCodec, ctx any) (any, error) {
	ev, err := codec.FromSerialized(m.EventBytes, ctx)
	if err != nil {
		return nil, wrapDecodeFailure(MsgTaskEventRequest, err)
	}
	return ev, nil
}
