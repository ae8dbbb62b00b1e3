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

import "fmt"

// Body is implemented by every PDU body. UnmarshalBinary receives exactly
// the command's body bytes (command_length-16 of them). Bodies with a
// TLVs field decode any bytes left over after the mandatory fields as
// trailing TLVs (§4.4); the bodyless PDUs reject leftover bytes with
// TrailingBytes; the bodies without a TLVs field (the bind requests,
// outbind, query_sm, query_sm_resp, cancel_sm, replace_sm) ignore them.
type Body interface {
	CommandID() ID
	Len() int
	MarshalBinaryTo(b []byte) (int, error)
	UnmarshalBinary(b []byte) error
}

// Command is the outermost framed unit: a header plus the body selected
// by the header's command_id (§3).
type Command struct {
	Header Header
	Body   Body
}

// NewCommand builds a Command from a body, deriving the header's ID field
// from the body and leaving Length to be computed at encode time.
func NewCommand(status CommandStatus, sequence uint32, body Body) *Command {
	return &Command{
		Header: Header{ID: body.CommandID(), Status: status, Sequence: sequence},
		Body:   body,
	}
}

// Len is the total encoded size of the command, header included.
func (c *Command) Len() int { return HeaderLen + c.Body.Len() }

// MarshalBinaryTo writes the full framed command (header + body) to b,
// deriving command_length and command_id from the body.
func (c *Command) MarshalBinaryTo(b []byte) (int, error) {
	total := c.Len()
	if len(b) < total {
		return 0, newDecodeError(KindTruncated, "command", nil)
	}
	c.Header.Length = uint32(total)
	c.Header.ID = c.Body.CommandID()
	headerMarshalBinaryTo(&c.Header, b)
	n, err := c.Body.MarshalBinaryTo(b[HeaderLen:])
	if err != nil {
		return 0, err
	}
	return HeaderLen + n, nil
}

// MarshalBinary allocates a buffer sized to Len and encodes into it.
func (c *Command) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.Len())
	n, err := c.MarshalBinaryTo(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// newBodyFor constructs the zero-value body registered for id, or
// reports KindUnknownCommand when id isn't in the table (§7).
func newBodyFor(id ID) (Body, error) {
	ctor, ok := bodyRegistry[id]
	if !ok {
		return nil, newDecodeError(KindUnknownCommand, fmt.Sprintf("0x%08x", uint32(id)), nil)
	}
	return ctor(), nil
}

// UnmarshalCommand decodes a single, already-length-delimited command:
// b must be exactly command_length bytes (the caller, normally the frame
// codec, is responsible for finding that boundary).
func UnmarshalCommand(b []byte) (*Command, error) {
	var h Header
	if err := unmarshalHeader(&h, b); err != nil {
		return nil, err
	}
	if h.Length < HeaderLen {
		return nil, newDecodeError(KindInvalidLength, "command_length", nil)
	}
	if int(h.Length) != len(b) {
		return nil, newDecodeError(KindInvalidLength, "command_length", nil)
	}
	body, err := newBodyFor(h.ID)
	if err != nil {
		return nil, err
	}
	if err := body.UnmarshalBinary(b[HeaderLen:]); err != nil {
		return nil, err
	}
	return &Command{Header: h, Body: body}, nil
}

var bodyRegistry = map[ID]func() Body{
	IDBindTransmitter:       func() Body { return &BindTransmitter{} },
	IDBindTransmitterResp:   func() Body { return &BindTransmitterResp{} },
	IDBindReceiver:          func() Body { return &BindReceiver{} },
	IDBindReceiverResp:      func() Body { return &BindReceiverResp{} },
	IDBindTransceiver:       func() Body { return &BindTransceiver{} },
	IDBindTransceiverResp:   func() Body { return &BindTransceiverResp{} },
	IDOutbind:               func() Body { return &Outbind{} },
	IDUnbind:                func() Body { return &Unbind{} },
	IDUnbindResp:            func() Body { return &UnbindResp{} },
	IDEnquireLink:           func() Body { return &EnquireLink{} },
	IDEnquireLinkResp:       func() Body { return &EnquireLinkResp{} },
	IDGenericNack:           func() Body { return &GenericNack{} },
	IDSubmitSm:              func() Body { return &SubmitSm{} },
	IDSubmitSmResp:          func() Body { return &SubmitSmResp{} },
	IDSubmitMulti:           func() Body { return &SubmitMulti{} },
	IDSubmitMultiResp:       func() Body { return &SubmitMultiResp{} },
	IDDeliverSm:             func() Body { return &DeliverSm{} },
	IDDeliverSmResp:         func() Body { return &DeliverSmResp{} },
	IDDataSm:                func() Body { return &DataSm{} },
	IDDataSmResp:            func() Body { return &DataSmResp{} },
	IDQuerySm:               func() Body { return &QuerySm{} },
	IDQuerySmResp:           func() Body { return &QuerySmResp{} },
	IDCancelSm:              func() Body { return &CancelSm{} },
	IDCancelSmResp:          func() Body { return &CancelSmResp{} },
	IDReplaceSm:             func() Body { return &ReplaceSm{} },
	IDReplaceSmResp:         func() Body { return &ReplaceSmResp{} },
	IDAlertNotification:     func() Body { return &AlertNotification{} },
	IDBroadcastSm:           func() Body { return &BroadcastSm{} },
	IDBroadcastSmResp:       func() Body { return &BroadcastSmResp{} },
	IDQueryBroadcastSm:      func() Body { return &QueryBroadcastSm{} },
	IDQueryBroadcastSmResp:  func() Body { return &QueryBroadcastSmResp{} },
	IDCancelBroadcastSm:     func() Body { return &CancelBroadcastSm{} },
	IDCancelBroadcastSmResp: func() Body { return &CancelBroadcastSmResp{} },
}
