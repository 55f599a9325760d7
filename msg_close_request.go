// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shuffle

import "io"

// CloseRequest (msg_id=5, consumer -> producer) has an empty body. The
// producer should drain and close all channels on the connection
// (spec.md §4.3.6).
type CloseRequest struct{}

func (CloseRequest) ID() MsgID { return MsgCloseRequest }

func (CloseRequest) WriteTo(w io.Writer) (int64, error) { return 0, nil }

func decodeCloseRequest(data []byte, _ *decodeContext) (Message, error) {
	return CloseRequest{}, nil
}
