// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "code.hybscloud.com/iox"

// These are provided as package-level aliases so callers can reference the
// semantic control-flow errors without importing iox directly.
var (
	// ErrWouldBlock means "no further progress without waiting".
	//
	// It is an expected, non-failure control-flow signal for non-blocking I/O.
	// Any returned byte count (n) still represents real progress.
	//
	// Caller action: stop the current attempt and retry later (after readiness/event),
	// or configure WithRetryDelay to emulate cooperative blocking on top of a non-blocking transport.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will follow".
	//
	// It is not io.EOF and not "try later". The operation remains active and additional
	// data/results are expected from the same ongoing operation.
	//
	// Caller action: process the returned bytes/result, then call again to obtain the next chunk.
	ErrMore = iox.ErrMore
)
