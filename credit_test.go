// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle_test

import (
	"errors"
	"math/rand"
	"testing"

	"code.hybscloud.com/shuffle"
)

// TestCreditInvariance runs randomized AddCredit/BufferResponse/
// CancelPartitionRequest schedules against a single channel and checks
// spec.md §8's "Credit invariance" property: the producer never spends
// more credit than has been cumulatively granted, and Consume never lets
// the balance go negative.
func TestCreditInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		cc := shuffle.NewChannelCredit(0)
		var granted, spent uint32
		cancelled := false

		for step := 0; step < 50; step++ {
			switch rng.Intn(3) {
			case 0:
				n := uint32(rng.Intn(5) + 1)
				cc.Grant(n)
				granted += n
			case 1:
				err := cc.Consume()
				if cancelled {
					if !errors.Is(err, shuffle.ErrContractViolation) {
						t.Fatalf("trial %d step %d: Consume on cancelled channel did not report violation", trial, step)
					}
					continue
				}
				if spent == granted {
					if !errors.Is(err, shuffle.ErrContractViolation) {
						t.Fatalf("trial %d step %d: Consume at zero credit did not report violation", trial, step)
					}
					continue
				}
				if err != nil {
					t.Fatalf("trial %d step %d: unexpected Consume error: %v", trial, step, err)
				}
				spent++
				if spent > granted {
					t.Fatalf("trial %d step %d: spent %d exceeds granted %d", trial, step, spent, granted)
				}
			case 2:
				cc.Cancel()
				cancelled = true
			}
		}
	}
}

func TestChannelCredit_EndOfStreamAckOrdering(t *testing.T) {
	cc := shuffle.NewChannelCredit(1)
	if err := cc.Ack(); !errors.Is(err, shuffle.ErrContractViolation) {
		t.Fatalf("Ack before end-of-stream: got %v, want ErrContractViolation", err)
	}
	cc.MarkEndOfStream()
	if err := cc.Ack(); err != nil {
		t.Fatalf("Ack after end-of-stream: %v", err)
	}
	if !cc.ReadyToClose() {
		t.Fatalf("expected ReadyToClose after ack")
	}
}

func TestChannelCredit_CheckpointPauseResume(t *testing.T) {
	cc := shuffle.NewChannelCredit(0)
	if cc.Paused() {
		t.Fatalf("expected not paused initially")
	}
	cc.PauseForCheckpoint()
	if !cc.Paused() {
		t.Fatalf("expected paused after checkpoint barrier")
	}
	cc.Resume()
	if cc.Paused() {
		t.Fatalf("expected not paused after ResumeConsumption")
	}
}
