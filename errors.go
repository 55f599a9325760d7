// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "errors"

// Fatal errors terminate the owning connection. Recoverable errors are
// reported to the affected channel(s) only; the connection stays alive.
var (
	// ErrInvalidArgument reports a nil reader/writer or other invalid configuration.
	ErrInvalidArgument = errors.New("shuffle: invalid argument")

	// ErrTooLong reports a frame length exceeding the protocol's maximum (2^31-1).
	ErrTooLong = errors.New("shuffle: frame too long")

	// ErrStreamCorruption reports a frame whose magic number did not match. Fatal.
	ErrStreamCorruption = errors.New("shuffle: stream corruption: bad magic number")

	// ErrUnknownMessage reports a frame whose msg_id is not in the catalog. Fatal.
	ErrUnknownMessage = errors.New("shuffle: unknown message id")

	// ErrDecodeFailure reports a content-level deserialization failure
	// (e.g. malformed task-event bytes). Recoverable at channel granularity.
	ErrDecodeFailure = errors.New("shuffle: decode failure")

	// ErrAllocationUnavailable reports that the pooled allocator returned no
	// buffer because the target channel is gone. Not a failure: the decoder
	// must still skip the payload bytes and let credit accounting proceed.
	ErrAllocationUnavailable = errors.New("shuffle: allocation unavailable")

	// ErrContractViolation reports a peer violating the credit/flow contract:
	// a BufferResponse sent at zero remaining credit, non-positive credit in
	// AddCredit, a mismatched partial-buffer count, etc. Fatal.
	ErrContractViolation = errors.New("shuffle: credit contract violation")

	// ErrIOFailure reports a transport I/O failure during encode/flush.
	// Recoverable upstream; any partially prepared buffer is released.
	ErrIOFailure = errors.New("shuffle: io failure")
)
