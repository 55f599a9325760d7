// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// ChannelID identifies a logical receive channel on the consumer side.
// It is a 16-byte opaque identifier; the protocol never interprets its
// bits beyond equality comparison and routing, so a uuid.UUID (itself a
// raw [16]byte) is the natural wire representation.
type ChannelID = uuid.UUID

// PartitionID identifies a producer-side result partition: the pair of
// the intermediate partition and the producer attempt that produced it.
type PartitionID struct {
	Intermediate    uuid.UUID
	ProducerAttempt uuid.UUID
}

// partitionIDWireLen is the fixed wire width of a PartitionID (32 bytes).
const partitionIDWireLen = 32

func writePartitionID(buf []byte, id PartitionID) {
	copy(buf[0:16], id.Intermediate[:])
	copy(buf[16:32], id.ProducerAttempt[:])
}

func readPartitionID(buf []byte) PartitionID {
	var id PartitionID
	copy(id.Intermediate[:], buf[0:16])
	copy(id.ProducerAttempt[:], buf[16:32])
	return id
}

// SubpartitionIndexSet is a set of non-negative subpartition indices.
//
// Wire encoding resolves spec.md's open question: a sorted ascending
// run-length list. This collapses the common cases (all subpartitions,
// or a single one) to a single run while still handling sparse sets
// exactly, without requiring callers to pre-declare a universe size the
// way a bitmap would.
type SubpartitionIndexSet struct {
	runs []indexRun
}

type indexRun struct {
	start uint32
	count uint32
}

// NewSubpartitionIndexSet builds a set from individual indices, which may
// be given in any order and may repeat.
func NewSubpartitionIndexSet(indices ...uint32) SubpartitionIndexSet {
	if len(indices) == 0 {
		return SubpartitionIndexSet{}
	}
	sorted := append([]uint32(nil), indices...)
	insertionSortUint32(sorted)
	var runs []indexRun
	for _, v := range sorted {
		n := len(runs)
		if n > 0 && (runs[n-1].start+runs[n-1].count == v || runs[n-1].start+runs[n-1].count-1 == v) {
			if runs[n-1].start+runs[n-1].count == v {
				runs[n-1].count++
			}
			continue
		}
		runs = append(runs, indexRun{start: v, count: 1})
	}
	return SubpartitionIndexSet{runs: runs}
}

func insertionSortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}

// Indices expands the set back into individual sorted indices.
func (s SubpartitionIndexSet) Indices() []uint32 {
	var out []uint32
	for _, r := range s.runs {
		for i := uint32(0); i < r.count; i++ {
			out = append(out, r.start+i)
		}
	}
	return out
}

// WireLen returns the set's byte length on the wire, obtainable from the
// value itself without re-encoding it (spec.md §3).
func (s SubpartitionIndexSet) WireLen() int {
	return 2 + len(s.runs)*8
}

func writeSubpartitionIndexSet(buf []byte, s SubpartitionIndexSet) {
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(s.runs)))
	off := 2
	for _, r := range s.runs {
		binary.BigEndian.PutUint32(buf[off:off+4], r.start)
		binary.BigEndian.PutUint32(buf[off+4:off+8], r.count)
		off += 8
	}
}

func readSubpartitionIndexSet(buf []byte) (SubpartitionIndexSet, error) {
	if len(buf) < 2 {
		return SubpartitionIndexSet{}, fmt.Errorf("shuffle: subpartition index set truncated: %w", ErrDecodeFailure)
	}
	numRuns := int(binary.BigEndian.Uint16(buf[0:2]))
	need := 2 + numRuns*8
	if len(buf) < need {
		return SubpartitionIndexSet{}, fmt.Errorf("shuffle: subpartition index set truncated: %w", ErrDecodeFailure)
	}
	runs := make([]indexRun, numRuns)
	off := 2
	for i := 0; i < numRuns; i++ {
		runs[i] = indexRun{
			start: binary.BigEndian.Uint32(buf[off : off+4]),
			count: binary.BigEndian.Uint32(buf[off+4 : off+8]),
		}
		off += 8
	}
	return SubpartitionIndexSet{runs: runs}, nil
}
