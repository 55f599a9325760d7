// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eventcodec provides ready-made shuffle.EventCodec
// implementations for TaskEventRequest's opaque event bytes.
package eventcodec

import "github.com/vmihailenco/msgpack/v4"

// Msgpack implements shuffle.EventCodec by marshaling/unmarshaling
// events with github.com/vmihailenco/msgpack/v4. It is the recommended
// default for callers whose events are plain Go structs rather than
// already-serialized opaque blobs.
type Msgpack struct{}

// New returns a Msgpack codec.
func New() Msgpack { return Msgpack{} }

// ToSerialized msgpack-encodes event.
func (Msgpack) ToSerialized(event any) ([]byte, error) {
	return msgpack.Marshal(event)
}

// FromSerialized msgpack-decodes data. ctx, when non-nil, must be a
// pointer to the destination value (the standard encoding/* decode-into
// idiom); the same pointer is returned on success. When ctx is nil, data
// is decoded into a generic any and returned.
func (Msgpack) FromSerialized(data []byte, ctx any) (any, error) {
	if ctx == nil {
		var v any
		if err := msgpack.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	if err := msgpack.Unmarshal(data, ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
