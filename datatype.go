// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

// DataType tags the semantic role of a BufferResponse payload. It is a
// small enumeration (at most 128 variants, spec.md §3) written on the
// wire as a single byte ordinal.
type DataType uint8

const (
	// DataTypeBuffer is ordinary bulk user data.
	DataTypeBuffer DataType = iota
	// DataTypeEventEndOfPartition marks the terminal message of a
	// subpartition stream (spec.md §4.5 "End of stream").
	DataTypeEventEndOfPartition
	// DataTypeEventCheckpointBarrierUnaligned marks an unaligned
	// checkpoint barrier; emitting it pauses the channel until
	// ResumeConsumption arrives (spec.md §4.5 "Checkpoint pause").
	DataTypeEventCheckpointBarrierUnaligned
	// DataTypeEventCheckpointBarrierAligned marks an aligned checkpoint
	// barrier; it does not pause the channel.
	DataTypeEventCheckpointBarrierAligned
	// DataTypeEventWatermark carries a stream watermark.
	DataTypeEventWatermark
	// DataTypeEventOther is any other task event not otherwise named
	// here; its bytes are opaque to the protocol and are decoded into an
	// unpooled Buffer as they are, without an EventCodec call.
	DataTypeEventOther
)

const dataTypeMax = 127

// IsBuffer reports whether dt represents user data (true) rather than an
// event (false), per spec.md §3's DataType attribute.
func (dt DataType) IsBuffer() bool {
	return dt == DataTypeBuffer
}

// IsCheckpointBarrier reports whether dt is either checkpoint-barrier
// variant.
func (dt DataType) IsCheckpointBarrier() bool {
	return dt == DataTypeEventCheckpointBarrierUnaligned || dt == DataTypeEventCheckpointBarrierAligned
}

// IsEndOfPartition reports whether dt is the terminal end-of-stream marker.
func (dt DataType) IsEndOfPartition() bool {
	return dt == DataTypeEventEndOfPartition
}

func (dt DataType) valid() bool {
	return uint8(dt) <= dataTypeMax
}

func (dt DataType) String() string {
	switch dt {
	case DataTypeBuffer:
		return "buffer"
	case DataTypeEventEndOfPartition:
		return "end-of-partition"
	case DataTypeEventCheckpointBarrierUnaligned:
		return "checkpoint-barrier-unaligned"
	case DataTypeEventCheckpointBarrierAligned:
		return "checkpoint-barrier-aligned"
	case DataTypeEventWatermark:
		return "watermark"
	case DataTypeEventOther:
		return "event-other"
	default:
		return "unknown-data-type"
	}
}
