// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"code.hybscloud.com/shuffle"
)

// TestSubpartitionIndexSet_RoundTrip exercises the set's wire encoding
// indirectly through PartitionRequest, the only carrier that puts one on
// the wire (spec.md §4.3.3), and checks that the decoded set holds the
// same indices as the one encoded.
func TestSubpartitionIndexSet_RoundTrip(t *testing.T) {
	cases := [][]uint32{
		{},
		{0},
		{0, 1, 2, 3},
		{5, 1, 3, 0, 2, 4}, // unordered, contiguous once sorted
		{0, 2, 4, 7, 8, 9},
		{100, 1, 1, 2}, // duplicate input index
	}

	for _, indices := range cases {
		set := shuffle.NewSubpartitionIndexSet(indices...)
		msg := shuffle.PartitionRequest{
			PartitionID:   shuffle.PartitionID{Intermediate: uuid.New(), ProducerAttempt: uuid.New()},
			Subpartitions: set,
			ReceiverID:    uuid.New(),
			InitialCredit: 1,
		}

		var buf bytes.Buffer
		if err := shuffle.NewEncoder(&buf).Encode(msg); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := shuffle.NewDecoder(&buf).Decode()
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		pr := got.(shuffle.PartitionRequest)
		if !reflect.DeepEqual(pr.Subpartitions.Indices(), set.Indices()) {
			t.Fatalf("indices %v, want %v", pr.Subpartitions.Indices(), set.Indices())
		}
	}
}

func TestSubpartitionIndexSet_IndicesDedupAndSort(t *testing.T) {
	set := shuffle.NewSubpartitionIndexSet(5, 1, 3, 1, 2)
	got := set.Indices()
	want := []uint32{1, 2, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
