/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pdu

import "encoding/binary"

// DefaultMaxFrame is the largest command_length this package will accept
// before a peer's own framing is trusted: 64KiB comfortably exceeds any
// legitimate SMPP command (message_payload tops out well under that) and
// bounds the damage a hostile or corrupted peer can do with a forged
// command_length (§4.5).
const DefaultMaxFrame = 64 * 1024

// Framer incrementally assembles commands out of a byte stream that may
// deliver them split across arbitrarily many reads, one TCP connection's
// worth at a time. It never blocks or performs I/O itself; callers feed
// it bytes as they arrive and drain whatever complete commands result.
type Framer struct {
	maxFrame int
	buf      []byte
}

// NewFramer builds a Framer that rejects any command_length above
// maxFrame. A maxFrame of 0 selects DefaultMaxFrame.
func NewFramer(maxFrame int) *Framer {
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Framer{maxFrame: maxFrame}
}

// Feed appends b to the internal buffer and returns every command that
// has become fully available, in order. It returns an error (and stops
// returning further commands) the moment a frame violates bounds, since
// a bad command_length poisons the stream's framing for good.
func (f *Framer) Feed(b []byte) ([]*Command, error) {
	f.buf = append(f.buf, b...)
	var out []*Command
	for {
		if len(f.buf) < 4 {
			return out, nil
		}
		length := binary.BigEndian.Uint32(f.buf[0:4])
		if length < HeaderLen {
			return out, newDecodeError(KindInvalidLength, "command_length", nil)
		}
		if int(length) > f.maxFrame {
			return out, newDecodeError(KindInvalidLength, "command_length", nil)
		}
		if len(f.buf) < int(length) {
			return out, nil
		}
		cmd, err := UnmarshalCommand(f.buf[:length])
		if err != nil {
			return out, err
		}
		out = append(out, cmd)
		f.buf = f.buf[length:]
	}
}

// Pending reports how many bytes are buffered waiting for the rest of a
// frame to arrive.
func (f *Framer) Pending() int { return len(f.buf) }
