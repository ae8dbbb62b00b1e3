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

// HeaderLen is the fixed size of the SMPP command header.
const HeaderLen = 16

// Header is the four-field command header common to every PDU (§3).
type Header struct {
	Length   uint32
	ID       ID
	Status   CommandStatus
	Sequence uint32
}

func unmarshalHeader(h *Header, b []byte) error {
	if len(b) < HeaderLen {
		return newDecodeError(KindTruncated, "header", nil)
	}
	h.Length = binary.BigEndian.Uint32(b[0:])
	h.ID = ID(binary.BigEndian.Uint32(b[4:]))
	h.Status = CommandStatus(binary.BigEndian.Uint32(b[8:]))
	h.Sequence = binary.BigEndian.Uint32(b[12:])
	return nil
}

func headerMarshalBinaryTo(h *Header, b []byte) int {
	binary.BigEndian.PutUint32(b[0:], h.Length)
	binary.BigEndian.PutUint32(b[4:], uint32(h.ID))
	binary.BigEndian.PutUint32(b[8:], uint32(h.Status))
	binary.BigEndian.PutUint32(b[12:], h.Sequence)
	return HeaderLen
}
