// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import (
	"encoding/binary"

	pkgerrors "github.com/pkg/errors"
)

// frameMagic is the fixed magic number every frame prefix must carry
// (spec.md §3). frameHeaderWireLen is the fixed 9-byte frame prefix:
// length(4) + magic(4) + msg_id(1).
const (
	frameMagic         uint32 = 0xBADC0FFE
	frameHeaderWireLen        = 9
	frameMaxLength     uint32 = 1<<31 - 1
)

// receiverIDWireLen is the fixed wire width of a ChannelID (16 bytes).
const receiverIDWireLen = 16

// errTruncated wraps ErrDecodeFailure with the offending message kind for
// every "buffer shorter than this field needs" case in the msg_*.go
// decoders.
func errTruncated(kind MsgID) error {
	return pkgerrors.Wrapf(ErrDecodeFailure, "%s: truncated body", kind)
}

func needAtLeast(data []byte, n int, kind MsgID) error {
	if len(data) < n {
		return errTruncated(kind)
	}
	return nil
}

// wrapDecodeFailure reports a content-level deserialization failure
// (spec.md §7 DecodeFailure) — recoverable at the owning channel's
// granularity, never fatal to the connection.
func wrapDecodeFailure(kind MsgID, cause error) error {
	return pkgerrors.Wrapf(ErrDecodeFailure, "%s: %v", kind, cause)
}

// wrapContractViolation reports a peer violating the credit/flow
// contract (spec.md §3's strict-positivity invariants, §7's
// ContractViolation kind).
func wrapContractViolation(format string, args ...any) error {
	return pkgerrors.Wrapf(ErrContractViolation, format, args...)
}

func putChannelID(buf []byte, id ChannelID) {
	copy(buf, id[:])
}

func getChannelID(buf []byte) ChannelID {
	var id ChannelID
	copy(id[:], buf[:receiverIDWireLen])
	return id
}

func putUint32(buf []byte, v uint32) { binary.BigEndian.PutUint32(buf, v) }
func getUint32(buf []byte) uint32    { return binary.BigEndian.Uint32(buf) }
