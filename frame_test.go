// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"

	"code.hybscloud.com/shuffle"
)

// chunkedReader delivers the bytes of data in fixed-size pieces (or
// whatever the caller's buffer allows, if smaller), simulating a stream
// transport that may split a frame across arbitrarily many reads —
// exactly the "split arbitrarily into K byte chunks" scenario spec.md §8
// requires every streaming decode to tolerate.
type chunkedReader struct {
	data  []byte
	off   int
	chunk int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := r.chunk
	if n <= 0 || n > len(p) {
		n = len(p)
	}
	if r.off+n > len(r.data) {
		n = len(r.data) - r.off
	}
	copy(p, r.data[r.off:r.off+n])
	r.off += n
	return n, nil
}

func TestEncode_MinimalPing(t *testing.T) {
	var buf bytes.Buffer
	enc := shuffle.NewEncoder(&buf)
	if err := enc.Encode(shuffle.CloseRequest{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x09, 0xBA, 0xDC, 0x0F, 0xFE, 0x05}
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestEncode_CreditGrant(t *testing.T) {
	var buf bytes.Buffer
	enc := shuffle.NewEncoder(&buf)
	err := enc.Encode(shuffle.AddCredit{Credit: 7, ReceiverID: uuid.UUID{}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := append([]byte{0x00, 0x00, 0x00, 0x1D, 0xBA, 0xDC, 0x0F, 0xFE, 0x06, 0x00, 0x00, 0x00, 0x07}, make([]byte, 16)...)
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestBufferResponse_ZeroSize(t *testing.T) {
	var buf bytes.Buffer
	enc := shuffle.NewEncoder(&buf)
	msg := shuffle.BufferResponse{
		ReceiverID: uuid.New(),
		Sequence:   42,
		Backlog:    0,
		DataType:   shuffle.DataTypeEventEndOfPartition,
	}
	if err := enc.Encode(msg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := shuffle.NewDecoder(&buf)
	got, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	br, ok := got.(shuffle.BufferResponse)
	if !ok {
		t.Fatalf("got %T, want BufferResponse", got)
	}
	if br.Buffer != nil {
		t.Fatalf("expected null payload, got %+v", br.Buffer)
	}
	if br.Sequence != 42 || br.DataType != shuffle.DataTypeEventEndOfPartition {
		t.Fatalf("unexpected fields: %+v", br)
	}
}

func TestBufferResponse_PartialBuffers(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 100)
	msg := shuffle.BufferResponse{
		ReceiverID:   uuid.New(),
		Sequence:     1,
		DataType:     shuffle.DataTypeBuffer,
		PartialSizes: []uint32{30, 30, 40},
		Buffer:       &shuffle.Buffer{Data: payload, Size: 100},
	}

	var buf bytes.Buffer
	enc := shuffle.NewEncoder(&buf)
	if err := enc.Encode(msg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := shuffle.NewDecoder(&buf)
	got, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	br := got.(shuffle.BufferResponse)
	if len(br.PartialSizes) != 3 {
		t.Fatalf("got %d partial sizes, want 3", len(br.PartialSizes))
	}
	var sum uint32
	for _, s := range br.PartialSizes {
		sum += s
	}
	if sum != 100 {
		t.Fatalf("partial sizes sum to %d, want 100", sum)
	}
	if br.Buffer == nil || br.Buffer.Size != 100 || !bytes.Equal(br.Buffer.Data[:100], payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestDecode_BadMagic(t *testing.T) {
	frame := []byte{0x00, 0x00, 0x00, 0x09, 0xDE, 0xAD, 0xBE, 0xEF, 0x05}
	dec := shuffle.NewDecoder(bytes.NewReader(frame))
	msg, err := dec.Decode()
	if msg != nil {
		t.Fatalf("expected no message, got %+v", msg)
	}
	if !errors.Is(err, shuffle.ErrStreamCorruption) {
		t.Fatalf("got err %v, want ErrStreamCorruption", err)
	}
}

func TestDecode_UnknownMsgID(t *testing.T) {
	frame := []byte{0x00, 0x00, 0x00, 0x09, 0xBA, 0xDC, 0x0F, 0xFE, 0xFF}
	dec := shuffle.NewDecoder(bytes.NewReader(frame))
	msg, err := dec.Decode()
	if msg != nil {
		t.Fatalf("expected no message, got %+v", msg)
	}
	if !errors.Is(err, shuffle.ErrUnknownMessage) {
		t.Fatalf("got err %v, want ErrUnknownMessage", err)
	}
}

func TestRoundTrip_AllMessageKinds(t *testing.T) {
	rx := uuid.New()
	part := shuffle.PartitionID{Intermediate: uuid.New(), ProducerAttempt: uuid.New()}

	cases := []shuffle.Message{
		shuffle.CloseRequest{},
		shuffle.CancelPartitionRequest{ReceiverID: rx},
		shuffle.ResumeConsumption{ReceiverID: rx},
		shuffle.AckAllUserRecordsProcessed{ReceiverID: rx},
		shuffle.AddCredit{Credit: 3, ReceiverID: rx},
		shuffle.BacklogAnnouncement{Backlog: 9, ReceiverID: rx},
		shuffle.NewBufferSize{BufferSize: 4096, ReceiverID: rx},
		shuffle.SegmentId{SubpartitionID: 2, SegmentID: 5, ReceiverID: rx},
		shuffle.PartitionRequest{
			PartitionID:   part,
			Subpartitions: shuffle.NewSubpartitionIndexSet(0, 1, 2, 5),
			ReceiverID:    rx,
			InitialCredit: 8,
		},
		shuffle.TaskEventRequest{EventBytes: []byte("hello event"), PartitionID: part, ReceiverID: rx},
		shuffle.ErrorResponse{
			HasReceiverID: true,
			ReceiverID:    rx,
			Cause:         shuffle.ErrorCause{ErrorClass: "java.io.IOException", Message: "boom", Stack: "at foo\nat bar"},
		},
		shuffle.ErrorResponse{Cause: shuffle.ErrorCause{ErrorClass: "fatal", Message: "connection doomed"}},
	}

	for _, msg := range cases {
		msg := msg
		t.Run(msg.ID().String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := shuffle.NewEncoder(&buf).Encode(msg); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := shuffle.NewDecoder(&buf).Decode()
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.ID() != msg.ID() {
				t.Fatalf("got id %s, want %s", got.ID(), msg.ID())
			}
		})
	}
}

func TestFramingRobustness_ChunkedStream(t *testing.T) {
	var buf bytes.Buffer
	enc := shuffle.NewEncoder(&buf)

	a, b := uuid.New(), uuid.New()
	partA := shuffle.PartitionID{Intermediate: uuid.New(), ProducerAttempt: uuid.New()}
	partB := shuffle.PartitionID{Intermediate: uuid.New(), ProducerAttempt: uuid.New()}

	messages := []shuffle.Message{
		shuffle.PartitionRequest{PartitionID: partA, Subpartitions: shuffle.NewSubpartitionIndexSet(0), ReceiverID: a, InitialCredit: 2},
		shuffle.AddCredit{Credit: 2, ReceiverID: a},
		shuffle.PartitionRequest{PartitionID: partB, Subpartitions: shuffle.NewSubpartitionIndexSet(0), ReceiverID: b, InitialCredit: 2},
		shuffle.AddCredit{Credit: 2, ReceiverID: b},
		shuffle.BufferResponse{ReceiverID: a, Sequence: 0, DataType: shuffle.DataTypeBuffer, Buffer: &shuffle.Buffer{Data: []byte("A0"), Size: 2}},
		shuffle.BufferResponse{ReceiverID: b, Sequence: 0, DataType: shuffle.DataTypeBuffer, Buffer: &shuffle.Buffer{Data: []byte("B0"), Size: 2}},
		shuffle.BufferResponse{ReceiverID: a, Sequence: 1, DataType: shuffle.DataTypeBuffer, Buffer: &shuffle.Buffer{Data: []byte("A1"), Size: 2}},
	}
	for _, msg := range messages {
		if err := enc.Encode(msg); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	wire := append([]byte(nil), buf.Bytes()...)

	for _, chunk := range []int{1, 17} {
		dec := shuffle.NewDecoder(&chunkedReader{data: wire, chunk: chunk})
		for i, want := range messages {
			got, err := dec.Decode()
			if err != nil {
				t.Fatalf("chunk=%d msg=%d: Decode: %v", chunk, i, err)
			}
			if got.ID() != want.ID() {
				t.Fatalf("chunk=%d msg=%d: got id %s, want %s", chunk, i, got.ID(), want.ID())
			}
			if br, ok := got.(shuffle.BufferResponse); ok {
				br.Buffer.Recycle()
			}
		}
	}
}
