// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

// EventCodec serializes and deserializes the opaque event payload carried
// by TaskEventRequest (spec.md §6). It is an external collaborator: this
// package never interprets the bytes itself.
type EventCodec interface {
	// ToSerialized encodes event into wire bytes.
	ToSerialized(event any) ([]byte, error)
	// FromSerialized decodes wire bytes into an event, using ctx for
	// caller-supplied class/registry information. ctx is opaque to the codec.
	FromSerialized(data []byte, ctx any) (any, error)
}

// passthroughEventCodec is the zero-value default: it treats the wire
// bytes as already-opaque and hands them back unchanged, for callers that
// only need to relay TaskEventRequest without interpreting it. Structured
// callers can use eventcodec.New() or their own EventCodec.
type passthroughEventCodec struct{}

func (passthroughEventCodec) ToSerialized(event any) ([]byte, error) {
	if b, ok := event.([]byte); ok {
		return b, nil
	}
	return nil, ErrInvalidArgument
}

func (passthroughEventCodec) FromSerialized(data []byte, _ any) (any, error) {
	return data, nil
}
