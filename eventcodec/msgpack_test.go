// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventcodec_test

import (
	"reflect"
	"testing"

	"code.hybscloud.com/shuffle/eventcodec"
)

type watermarkEvent struct {
	Timestamp int64  `msgpack:"timestamp"`
	Source    string `msgpack:"source"`
}

func TestMsgpack_RoundTrip(t *testing.T) {
	codec := eventcodec.New()
	in := watermarkEvent{Timestamp: 1234, Source: "subtask-3"}

	data, err := codec.ToSerialized(in)
	if err != nil {
		t.Fatalf("ToSerialized: %v", err)
	}

	var out watermarkEvent
	got, err := codec.FromSerialized(data, &out)
	if err != nil {
		t.Fatalf("FromSerialized: %v", err)
	}
	if got.(*watermarkEvent).Timestamp != in.Timestamp || got.(*watermarkEvent).Source != in.Source {
		t.Fatalf("got %+v, want %+v", got, in)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("decoded into ctx = %+v, want %+v", out, in)
	}
}

func TestMsgpack_NilCtx(t *testing.T) {
	codec := eventcodec.New()
	data, err := codec.ToSerialized(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("ToSerialized: %v", err)
	}
	got, err := codec.FromSerialized(data, nil)
	if err != nil {
		t.Fatalf("FromSerialized: %v", err)
	}
	if got == nil {
		t.Fatalf("expected non-nil decoded value")
	}
}
