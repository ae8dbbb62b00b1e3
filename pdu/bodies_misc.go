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

// emptyBody is embedded by the eight PDUs that carry no body at all:
// command_length is always exactly HeaderLen for these (§3).
type emptyBody struct{}

func (emptyBody) Len() int                                { return 0 }
func (emptyBody) MarshalBinaryTo(buf []byte) (int, error) { return 0, nil }
func (emptyBody) UnmarshalBinary(buf []byte) error {
	if len(buf) != 0 {
		return newDecodeError(KindTrailingBytes, "body", nil)
	}
	return nil
}

// EnquireLink is the keepalive request (§4.6 step 3).
type EnquireLink struct{ emptyBody }

func (*EnquireLink) CommandID() ID { return IDEnquireLink }

// EnquireLinkResp is the keepalive response.
type EnquireLinkResp struct{ emptyBody }

func (*EnquireLinkResp) CommandID() ID { return IDEnquireLinkResp }

// Unbind is a caller- or peer-initiated graceful shutdown request.
type Unbind struct{ emptyBody }

func (*Unbind) CommandID() ID { return IDUnbind }

// UnbindResp acknowledges Unbind.
type UnbindResp struct{ emptyBody }

func (*UnbindResp) CommandID() ID { return IDUnbindResp }

// GenericNack is returned when the peer can't parse or satisfy a command
// at all (malformed header, unsupported command_id, ...).
type GenericNack struct{ emptyBody }

func (*GenericNack) CommandID() ID { return IDGenericNack }

// CancelSmResp acknowledges CancelSm; it carries no body.
type CancelSmResp struct{ emptyBody }

func (*CancelSmResp) CommandID() ID { return IDCancelSmResp }

// ReplaceSmResp acknowledges ReplaceSm; it carries no body.
type ReplaceSmResp struct{ emptyBody }

func (*ReplaceSmResp) CommandID() ID { return IDReplaceSmResp }

// CancelBroadcastSmResp acknowledges CancelBroadcastSm; it carries no body.
type CancelBroadcastSmResp struct{ emptyBody }

func (*CancelBroadcastSmResp) CommandID() ID { return IDCancelBroadcastSmResp }

// AlertNotification is an MC->ESME unsolicited notification that a
// previously-unavailable mobile subscriber has become available again.
type AlertNotification struct {
	SourceAddr Address
	ESMEAddr   Address
	TLVs       []TLV
}

func (*AlertNotification) CommandID() ID { return IDAlertNotification }

func (a *AlertNotification) Len() int {
	return a.SourceAddr.Len() + a.ESMEAddr.Len() + tlvsLen(a.TLVs)
}

func (a *AlertNotification) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < a.Len() {
		return 0, newDecodeError(KindTruncated, "alert_notification", nil)
	}
	n := a.SourceAddr.marshalBinaryTo(buf)
	n += a.ESMEAddr.marshalBinaryTo(buf[n:])
	tn, err := writeTLVs(buf[n:], a.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (a *AlertNotification) UnmarshalBinary(buf []byte) error {
	src, n, err := readAddress(buf, 65, "source_addr")
	if err != nil {
		return err
	}
	a.SourceAddr = src
	esme, n2, err := readAddress(buf[n:], 65, "esme_addr")
	if err != nil {
		return err
	}
	a.ESMEAddr = esme
	pos := n + n2
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxAlertNotification)
	if err != nil {
		return err
	}
	a.TLVs = tlvs
	return nil
}
