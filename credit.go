// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

// ChannelCredit tracks the producer-side credit/flow state for one
// channel (spec.md §4.5, C5). It is not itself safe for concurrent use;
// per the single-threaded-per-connection scheduling model, only the
// connection's owning loop touches it.
type ChannelCredit struct {
	credit  uint32
	backlog uint32

	checkpointPaused bool
	endOfStreamSent  bool
	acked            bool
	cancelled        bool
}

// NewChannelCredit starts a channel's credit accounting at the initial
// budget named by the consumer's PartitionRequest.
func NewChannelCredit(initial uint32) *ChannelCredit {
	return &ChannelCredit{credit: initial}
}

// Grant increases available credit by n (AddCredit, spec.md §4.3.7).
func (c *ChannelCredit) Grant(n uint32) {
	c.credit += n
}

// Consume accounts for one emitted BufferResponse, irrespective of
// payload size. It returns ErrContractViolation when no credit remains;
// the caller must not have already written the frame (spec.md §4.5
// "Credit semantics": the producer must not emit a BufferResponse with
// zero remaining credit).
func (c *ChannelCredit) Consume() error {
	if c.cancelled {
		return wrapContractViolation("channel cancelled")
	}
	if c.credit == 0 {
		return wrapContractViolation("BufferResponse emitted with zero remaining credit")
	}
	c.credit--
	return nil
}

// Available reports the current credit balance.
func (c *ChannelCredit) Available() uint32 { return c.credit }

// SetBacklog records the producer's advisory pending-backlog depth
// (BacklogAnnouncement, spec.md §4.3.10). backlog == 0 is rejected by
// the decoder before this is ever called (strict positivity invariant).
func (c *ChannelCredit) SetBacklog(backlog uint32) { c.backlog = backlog }

// Backlog returns the last announced backlog depth.
func (c *ChannelCredit) Backlog() uint32 { return c.backlog }

// PauseForCheckpoint marks the channel paused after an unaligned
// checkpoint barrier was emitted (spec.md §4.5 "Checkpoint pause").
func (c *ChannelCredit) PauseForCheckpoint() { c.checkpointPaused = true }

// Resume clears a checkpoint pause (ResumeConsumption, spec.md §4.3.8).
func (c *ChannelCredit) Resume() { c.checkpointPaused = false }

// Paused reports whether the channel is currently checkpoint-paused; a
// producer must not emit further data-kind BufferResponses while true.
func (c *ChannelCredit) Paused() bool { return c.checkpointPaused }

// MarkEndOfStream records that the terminal data-type has been emitted
// (spec.md §4.5 "End of stream"). The channel awaits
// AckAllUserRecordsProcessed before it may be closed.
func (c *ChannelCredit) MarkEndOfStream() { c.endOfStreamSent = true }

// Ack records the consumer's AckAllUserRecordsProcessed. It is a
// ContractViolation to receive this before the end-of-stream marker was
// sent.
func (c *ChannelCredit) Ack() error {
	if !c.endOfStreamSent {
		return wrapContractViolation("AckAllUserRecordsProcessed received before end-of-stream")
	}
	c.acked = true
	return nil
}

// ReadyToClose reports whether the channel has completed its normal
// end-of-stream handshake.
func (c *ChannelCredit) ReadyToClose() bool { return c.endOfStreamSent && c.acked }

// Cancel marks the channel cancelled (CancelPartitionRequest, spec.md
// §4.3.5, §4.5 "Cancellation"). The owning Connection then drops
// BufferResponses for this channel instead of sending them; control
// messages received later for it (AddCredit, ResumeConsumption,
// AckAllUserRecordsProcessed) are still applied to this state by Recv.
func (c *ChannelCredit) Cancel() { c.cancelled = true }

// Cancelled reports whether CancelPartitionRequest has been received for
// this channel.
func (c *ChannelCredit) Cancelled() bool { return c.cancelled }
