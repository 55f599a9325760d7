// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// bufferResponseFixedLen is the wire width of BufferResponse's fixed
// header, before the variable-length partial-sizes tail and payload
// (spec.md §4.3.1): receiver channel id(16) + subpartition id(4) +
// num partial buffers(4) + sequence number(4) + backlog(4) +
// data type ordinal(1) + is compressed(1) + payload readable size(4).
const bufferResponseFixedLen = 16 + 4 + 4 + 4 + 4 + 1 + 1 + 4

// BufferResponse (msg_id=0, producer -> consumer) carries one payload
// buffer. A size==0 response carries no attached buffer; the receiver
// still accounts for credit as though a buffer had been received and
// immediately recycled (spec.md §3, §4.3.1).
type BufferResponse struct {
	ReceiverID   ChannelID
	Subpartition uint32
	Sequence     uint32
	Backlog      uint32
	DataType     DataType
	IsCompressed bool

	// PartialSizes holds the size of each logical sub-buffer packed into
	// Buffer, in the order written. Empty means Buffer is a single
	// logical unit (spec.md §3 "fully-filled composite").
	PartialSizes []uint32

	// Buffer is the attached payload, or nil for a size==0 response or
	// when the target channel was gone at decode time (spec.md §4.4).
	Buffer *Buffer
}

func (BufferResponse) ID() MsgID { return MsgBufferResponse }

func (m BufferResponse) ownedBuffer() *Buffer { return m.Buffer }

func (m BufferResponse) payloadSize() uint32 {
	if m.Buffer == nil {
		return 0
	}
	return m.Buffer.Size
}

func (m BufferResponse) WriteTo(w io.Writer) (int64, error) {
	numPartial := len(m.PartialSizes)
	size := m.payloadSize()

	header := make([]byte, bufferResponseFixedLen+4*numPartial)
	putChannelID(header[0:16], m.ReceiverID)
	putUint32(header[16:20], m.Subpartition)
	putUint32(header[20:24], uint32(numPartial))
	putUint32(header[24:28], m.Sequence)
	putUint32(header[28:32], m.Backlog)
	header[32] = byte(m.DataType)
	if m.IsCompressed {
		header[33] = 1
	}
	putUint32(header[34:38], size)
	off := bufferResponseFixedLen
	for _, ps := range m.PartialSizes {
		putUint32(header[off:off+4], ps)
		off += 4
	}

	n, err := w.Write(header)
	total := int64(n)
	if err != nil {
		return total, err
	}
	if size == 0 {
		return total, nil
	}
	n, err = w.Write(m.Buffer.Data[:size])
	total += int64(n)
	return total, err
}

func decodeBufferResponse(data []byte, dc *decodeContext) (Message, error) {
	if err := needAtLeast(data, bufferResponseFixedLen, MsgBufferResponse); err != nil {
		return nil, err
	}
	receiverID := getChannelID(data[0:16])
	subpartition := getUint32(data[16:20])
	numPartial := getUint32(data[20:24])
	sequence := getUint32(data[24:28])
	backlog := getUint32(data[28:32])
	dt := DataType(data[32])
	isCompressed := data[33] != 0
	size := getUint32(data[34:38])

	if !dt.valid() {
		return nil, wrapDecodeFailure(MsgBufferResponse, ErrDecodeFailure)
	}

	off := bufferResponseFixedLen
	partialSizesLen := int(numPartial) * 4
	if err := needAtLeast(data, off+partialSizesLen, MsgBufferResponse); err != nil {
		return nil, err
	}
	var partialSizes []uint32
	var sum uint64
	if numPartial > 0 {
		partialSizes = make([]uint32, numPartial)
		for i := range partialSizes {
			partialSizes[i] = getUint32(data[off : off+4])
			sum += uint64(partialSizes[i])
			off += 4
		}
		if sum != uint64(size) {
			return nil, wrapContractViolation(
				"BufferResponse: partial buffer sizes sum %d != payload size %d", sum, size)
		}
	}

	if err := needAtLeast(data, off+int(size), MsgBufferResponse); err != nil {
		return nil, err
	}
	payload := data[off : off+int(size)]

	buf, err := attachIncomingBuffer(dc, receiverID, dt, isCompressed, size, partialSizes, payload)
	if err != nil {
		return nil, err
	}

	return BufferResponse{
		ReceiverID:   receiverID,
		Subpartition: subpartition,
		Sequence:     sequence,
		Backlog:      backlog,
		DataType:     dt,
		IsCompressed: isCompressed,
		PartialSizes: partialSizes,
		Buffer:       buf,
	}, nil
}

// attachIncomingBuffer implements the C4 allocation rules of spec.md
// §4.3.1/§4.4: pooled allocation for buffer-kind data types (or a null
// return, meaning the channel is gone — not an error, the caller skips
// the payload and credit accounting proceeds as normal), unpooled
// allocation of exactly size bytes for event kinds, and a recycled
// null-payload result for size==0.
func attachIncomingBuffer(dc *decodeContext, ch ChannelID, dt DataType, isCompressed bool, size uint32, partialSizes []uint32, payload []byte) (*Buffer, error) {
	allocator := dc.allocator
	if allocator == nil {
		allocator = globalFallbackAllocator
	}

	if size == 0 {
		if dt.IsBuffer() {
			if buf, ok := allocator.AllocatePooled(ch); ok {
				buf.Recycle()
			}
		}
		return nil, nil
	}

	if !dt.IsBuffer() {
		buf := allocator.AllocateUnpooled(size, dt)
		buf.Data = append(buf.Data[:0], payload...)
		buf.Size = size
		buf.DataType = dt
		buf.IsCompressed = isCompressed
		buf.Components = partialSizes
		return buf, nil
	}

	buf, ok := allocator.AllocatePooled(ch)
	if !ok {
		// Target channel released between header dispatch and body
		// arrival: the body bytes are already buffered in data and
		// simply dropped here; credit accounting proceeds in the caller.
		return nil, nil
	}
	buf.Data = append(buf.Data[:0], payload...)
	buf.Size = size
	buf.DataType = dt
	buf.IsCompressed = isCompressed
	buf.Components = partialSizes
	return buf, nil
}

// globalFallbackAllocator backs decodes performed without an explicit
// Allocator configured (e.g. a Decoder built without WithAllocator, as
// in this package's tests). Production connections should always configure one
// via WithAllocator, since only the real Allocator knows which channels
// are still live.
var globalFallbackAllocator = NewDefaultAllocator(32 * 1024)
