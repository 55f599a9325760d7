// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// Connection is a single-threaded-per-connection event loop (spec.md §5
// "Scheduling model"): it owns one Decoder/Encoder pair plus the credit
// state of every channel multiplexed over that connection, and is the
// one place the C5 credit contract is enforced end to end. Callers must
// confine all calls to one goroutine; multiple Connections run
// independently in parallel.
type Connection struct {
	dec      *Decoder
	enc      *Encoder
	channels map[ChannelID]*ChannelCredit
}

// NewConnection wires a Decoder reading from r and an Encoder writing to
// w, both sharing opts (allocator, event codec, read limit, retry
// policy).
func NewConnection(r io.Reader, w io.Writer, opts ...Option) *Connection {
	return &Connection{
		dec:      NewDecoder(r, opts...),
		enc:      NewEncoder(w, opts...),
		channels: make(map[ChannelID]*ChannelCredit),
	}
}

// Channel returns the credit state for id, creating a zero-credit entry
// if this is the first time id has been seen. Normally a channel's entry
// is created by observing its PartitionRequest (consumer side) or by the
// producer calling Channel explicitly after accepting one.
func (c *Connection) Channel(id ChannelID) *ChannelCredit {
	cc, ok := c.channels[id]
	if !ok {
		cc = NewChannelCredit(0)
		c.channels[id] = cc
	}
	return cc
}

// Recv decodes the next frame and applies its effect on the
// corresponding channel's credit state before returning it to the
// caller: PartitionRequest opens the channel at its initial credit,
// AddCredit grants, CancelPartitionRequest and ResumeConsumption update
// pause/cancellation state, BacklogAnnouncement records the advisory
// depth, and AckAllUserRecordsProcessed is validated against the
// end-of-stream handshake (spec.md §4.5). The message is always returned
// alongside any bookkeeping error so the caller can still observe what
// arrived.
func (c *Connection) Recv() (Message, error) {
	msg, err := c.dec.Decode()
	if err != nil {
		return nil, err
	}

	switch m := msg.(type) {
	case PartitionRequest:
		c.channels[m.ReceiverID] = NewChannelCredit(m.InitialCredit)
	case AddCredit:
		c.Channel(m.ReceiverID).Grant(m.Credit)
	case CancelPartitionRequest:
		c.Channel(m.ReceiverID).Cancel()
	case ResumeConsumption:
		c.Channel(m.ReceiverID).Resume()
	case BacklogAnnouncement:
		c.Channel(m.ReceiverID).SetBacklog(m.Backlog)
	case AckAllUserRecordsProcessed:
		if ackErr := c.Channel(m.ReceiverID).Ack(); ackErr != nil {
			return msg, ackErr
		}
	}
	return msg, nil
}

// Send encodes msg, routing BufferResponse through the credit contract
// (SendBufferResponse) and everything else straight to the Encoder.
func (c *Connection) Send(msg Message) error {
	if br, ok := msg.(BufferResponse); ok {
		return c.SendBufferResponse(br)
	}
	return c.enc.Encode(msg)
}

// SendBufferResponse enforces spec.md §4.5's central invariant: a
// producer must not emit a BufferResponse exceeding the channel's
// cumulative granted credit, and a cancelled channel's frames are
// dropped rather than sent. A data-kind BufferResponse on a channel
// paused for a checkpoint is refused with ErrContractViolation. Every
// path still recycles the attached buffer exactly once.
func (c *Connection) SendBufferResponse(msg BufferResponse) error {
	cc := c.Channel(msg.ReceiverID)

	if cc.Cancelled() {
		msg.Buffer.Recycle()
		return nil
	}

	if cc.Paused() && msg.DataType.IsBuffer() {
		msg.Buffer.Recycle()
		return wrapContractViolation("BufferResponse emitted while paused for checkpoint")
	}

	if err := cc.Consume(); err != nil {
		msg.Buffer.Recycle()
		return err
	}

	if err := c.enc.Encode(msg); err != nil {
		return err
	}

	if msg.DataType.IsEndOfPartition() {
		cc.MarkEndOfStream()
	}
	if msg.DataType == DataTypeEventCheckpointBarrierUnaligned {
		cc.PauseForCheckpoint()
	}
	return nil
}
