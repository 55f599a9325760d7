// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// MsgID is the wire tag identifying one of the twelve message kinds
// (spec.md §4.3). Values are stable across versions.
type MsgID uint8

const (
	MsgBufferResponse             MsgID = 0
	MsgErrorResponse              MsgID = 1
	MsgPartitionRequest           MsgID = 2
	MsgTaskEventRequest           MsgID = 3
	MsgCancelPartitionRequest     MsgID = 4
	MsgCloseRequest               MsgID = 5
	MsgAddCredit                  MsgID = 6
	MsgResumeConsumption          MsgID = 7
	MsgAckAllUserRecordsProcessed MsgID = 8
	MsgBacklogAnnouncement        MsgID = 9
	MsgNewBufferSize              MsgID = 10
	MsgSegmentId                  MsgID = 11
)

const numMsgKinds = 12

func (id MsgID) String() string {
	switch id {
	case MsgBufferResponse:
		return "BufferResponse"
	case MsgErrorResponse:
		return "ErrorResponse"
	case MsgPartitionRequest:
		return "PartitionRequest"
	case MsgTaskEventRequest:
		return "TaskEventRequest"
	case MsgCancelPartitionRequest:
		return "CancelPartitionRequest"
	case MsgCloseRequest:
		return "CloseRequest"
	case MsgAddCredit:
		return "AddCredit"
	case MsgResumeConsumption:
		return "ResumeConsumption"
	case MsgAckAllUserRecordsProcessed:
		return "AckAllUserRecordsProcessed"
	case MsgBacklogAnnouncement:
		return "BacklogAnnouncement"
	case MsgNewBufferSize:
		return "NewBufferSize"
	case MsgSegmentId:
		return "SegmentId"
	default:
		return "Unknown"
	}
}

// Message is the tagged-sum-type interface every one of the twelve
// catalog kinds implements. It replaces the original design's
// reflectively-constructed polymorphic hierarchy (spec.md §9) with a
// closed set of Go structs plus a msg_id-keyed dispatch table.
type Message interface {
	// ID returns this message's wire tag.
	ID() MsgID

	// WriteTo writes the message's own body (not the frame prefix) to w
	// and returns the number of bytes written.
	WriteTo(w io.Writer) (int64, error)
}

// bufferOwner is implemented only by BufferResponse. It lets Encoder
// recycle the attached payload buffer exactly once on every send path
// (success or failure) without every other message kind needing a no-op
// implementation (spec.md §3's buffer-lifecycle invariant).
type bufferOwner interface {
	ownedBuffer() *Buffer
}

// decodeFunc parses a message body already fully buffered in data (the
// Decoder buffers one whole frame before dispatching, see frame.go) and
// returns the typed Message. dc carries the collaborators (Allocator,
// EventCodec) a decoder may need.
type decodeFunc func(data []byte, dc *decodeContext) (Message, error)

// decodeContext bundles the external collaborators available while
// decoding a single message body.
type decodeContext struct {
	allocator  Allocator
	eventCodec EventCodec
}

var catalog [numMsgKinds]decodeFunc

func init() {
	catalog[MsgBufferResponse] = decodeBufferResponse
	catalog[MsgErrorResponse] = decodeErrorResponse
	catalog[MsgPartitionRequest] = decodePartitionRequest
	catalog[MsgTaskEventRequest] = decodeTaskEventRequest
	catalog[MsgCancelPartitionRequest] = decodeCancelPartitionRequest
	catalog[MsgCloseRequest] = decodeCloseRequest
	catalog[MsgAddCredit] = decodeAddCredit
	catalog[MsgResumeConsumption] = decodeResumeConsumption
	catalog[MsgAckAllUserRecordsProcessed] = decodeAckAllUserRecordsProcessed
	catalog[MsgBacklogAnnouncement] = decodeBacklogAnnouncement
	catalog[MsgNewBufferSize] = decodeNewBufferSize
	catalog[MsgSegmentId] = decodeSegmentId
}
