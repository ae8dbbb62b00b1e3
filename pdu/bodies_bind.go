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

// bindBody is the shared mandatory-field layout of bind_transmitter,
// bind_receiver and bind_transceiver (§4.6 step 1).
type bindBody struct {
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion InterfaceVersion
	AddrTon          TypeOfNumber
	AddrNpi          NumericPlanIndicator
	AddressRange     string
}

func (b *bindBody) len() int {
	return lenCOctetString(b.SystemID) + lenCOctetString(b.Password) + lenCOctetString(b.SystemType) +
		1 + 1 + 1 + lenCOctetString(b.AddressRange)
}

func (b *bindBody) marshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < b.len() {
		return 0, newDecodeError(KindTruncated, "bind", nil)
	}
	n := writeCOctetString(buf, 0, b.SystemID)
	n += writeCOctetString(buf, n, b.Password)
	n += writeCOctetString(buf, n, b.SystemType)
	buf[n] = byte(b.InterfaceVersion)
	n++
	buf[n] = byte(b.AddrTon)
	n++
	buf[n] = byte(b.AddrNpi)
	n++
	n += writeCOctetString(buf, n, b.AddressRange)
	return n, nil
}

func (b *bindBody) unmarshalBinary(buf []byte) error {
	systemID, n, err := readCOctetString(buf, 1, 16, "system_id")
	if err != nil {
		return err
	}
	b.SystemID = systemID
	pos := n
	password, n, err := readCOctetString(buf[pos:], 1, 9, "password")
	if err != nil {
		return err
	}
	b.Password = password
	pos += n
	systemType, n, err := readCOctetString(buf[pos:], 1, 13, "system_type")
	if err != nil {
		return err
	}
	b.SystemType = systemType
	pos += n
	v, err := readUint8(buf[pos:], "interface_version")
	if err != nil {
		return err
	}
	b.InterfaceVersion = InterfaceVersion(v)
	pos++
	ton, err := readUint8(buf[pos:], "addr_ton")
	if err != nil {
		return err
	}
	b.AddrTon = TypeOfNumber(ton)
	pos++
	npi, err := readUint8(buf[pos:], "addr_npi")
	if err != nil {
		return err
	}
	b.AddrNpi = NumericPlanIndicator(npi)
	pos++
	addressRange, n, err := readCOctetString(buf[pos:], 1, 41, "address_range")
	if err != nil {
		return err
	}
	b.AddressRange = addressRange
	return nil
}

// newBindBody builds the shared mandatory-field set for the three bind
// requests.
func newBindBody(systemID, password, systemType string, ifVersion InterfaceVersion, ton TypeOfNumber, npi NumericPlanIndicator, addressRange string) bindBody {
	return bindBody{
		SystemID: systemID, Password: password, SystemType: systemType,
		InterfaceVersion: ifVersion, AddrTon: ton, AddrNpi: npi, AddressRange: addressRange,
	}
}

// NewBindTransmitter builds a bind_transmitter request body.
func NewBindTransmitter(systemID, password, systemType string, ifVersion InterfaceVersion, ton TypeOfNumber, npi NumericPlanIndicator, addressRange string) *BindTransmitter {
	return &BindTransmitter{newBindBody(systemID, password, systemType, ifVersion, ton, npi, addressRange)}
}

// NewBindReceiver builds a bind_receiver request body.
func NewBindReceiver(systemID, password, systemType string, ifVersion InterfaceVersion, ton TypeOfNumber, npi NumericPlanIndicator, addressRange string) *BindReceiver {
	return &BindReceiver{newBindBody(systemID, password, systemType, ifVersion, ton, npi, addressRange)}
}

// NewBindTransceiver builds a bind_transceiver request body.
func NewBindTransceiver(systemID, password, systemType string, ifVersion InterfaceVersion, ton TypeOfNumber, npi NumericPlanIndicator, addressRange string) *BindTransceiver {
	return &BindTransceiver{newBindBody(systemID, password, systemType, ifVersion, ton, npi, addressRange)}
}

// BindTransmitter is the ESME->MC bind_transmitter request.
type BindTransmitter struct{ bindBody }

// CommandID implements Body.
func (*BindTransmitter) CommandID() ID { return IDBindTransmitter }

// Len implements Body.
func (b *BindTransmitter) Len() int { return b.bindBody.len() }

// MarshalBinaryTo implements Body.
func (b *BindTransmitter) MarshalBinaryTo(buf []byte) (int, error) { return b.bindBody.marshalBinaryTo(buf) }

// UnmarshalBinary implements Body.
func (b *BindTransmitter) UnmarshalBinary(buf []byte) error { return b.bindBody.unmarshalBinary(buf) }

// BindReceiver is the ESME->MC bind_receiver request.
type BindReceiver struct{ bindBody }

func (*BindReceiver) CommandID() ID                            { return IDBindReceiver }
func (b *BindReceiver) Len() int                                { return b.bindBody.len() }
func (b *BindReceiver) MarshalBinaryTo(buf []byte) (int, error) { return b.bindBody.marshalBinaryTo(buf) }
func (b *BindReceiver) UnmarshalBinary(buf []byte) error        { return b.bindBody.unmarshalBinary(buf) }

// BindTransceiver is the ESME->MC bind_transceiver request.
type BindTransceiver struct{ bindBody }

func (*BindTransceiver) CommandID() ID                            { return IDBindTransceiver }
func (b *BindTransceiver) Len() int                                { return b.bindBody.len() }
func (b *BindTransceiver) MarshalBinaryTo(buf []byte) (int, error) { return b.bindBody.marshalBinaryTo(buf) }
func (b *BindTransceiver) UnmarshalBinary(buf []byte) error        { return b.bindBody.unmarshalBinary(buf) }

// bindRespBody is shared by all three bind responses: system_id plus an
// optional sc_interface_version TLV.
type bindRespBody struct {
	SystemID string
	TLVs     []TLV
}

func (b *bindRespBody) len() int { return lenCOctetString(b.SystemID) + tlvsLen(b.TLVs) }

func (b *bindRespBody) marshalBinaryTo(buf []byte) (int, error) {
	n := writeCOctetString(buf, 0, b.SystemID)
	tn, err := writeTLVs(buf[n:], b.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (b *bindRespBody) unmarshalBinary(buf []byte) error {
	if len(buf) == 0 {
		// Failure responses commonly carry no body at all.
		b.SystemID = ""
		b.TLVs = nil
		return nil
	}
	systemID, n, err := readCOctetString(buf, 1, 16, "system_id")
	if err != nil {
		return err
	}
	b.SystemID = systemID
	tlvs, err := readTLVs(buf[n:], len(buf)-n, ctxBindResp)
	if err != nil {
		return err
	}
	b.TLVs = tlvs
	return nil
}

// BindTransmitterResp is the MC->ESME bind_transmitter response.
type BindTransmitterResp struct{ bindRespBody }

func (*BindTransmitterResp) CommandID() ID                            { return IDBindTransmitterResp }
func (b *BindTransmitterResp) Len() int                                { return b.bindRespBody.len() }
func (b *BindTransmitterResp) MarshalBinaryTo(buf []byte) (int, error) { return b.bindRespBody.marshalBinaryTo(buf) }
func (b *BindTransmitterResp) UnmarshalBinary(buf []byte) error        { return b.bindRespBody.unmarshalBinary(buf) }

// BindReceiverResp is the MC->ESME bind_receiver response.
type BindReceiverResp struct{ bindRespBody }

func (*BindReceiverResp) CommandID() ID                            { return IDBindReceiverResp }
func (b *BindReceiverResp) Len() int                                { return b.bindRespBody.len() }
func (b *BindReceiverResp) MarshalBinaryTo(buf []byte) (int, error) { return b.bindRespBody.marshalBinaryTo(buf) }
func (b *BindReceiverResp) UnmarshalBinary(buf []byte) error        { return b.bindRespBody.unmarshalBinary(buf) }

// BindTransceiverResp is the MC->ESME bind_transceiver response.
type BindTransceiverResp struct{ bindRespBody }

func (*BindTransceiverResp) CommandID() ID                            { return IDBindTransceiverResp }
func (b *BindTransceiverResp) Len() int                                { return b.bindRespBody.len() }
func (b *BindTransceiverResp) MarshalBinaryTo(buf []byte) (int, error) { return b.bindRespBody.marshalBinaryTo(buf) }
func (b *BindTransceiverResp) UnmarshalBinary(buf []byte) error        { return b.bindRespBody.unmarshalBinary(buf) }

// Outbind is the MC->ESME spontaneous outbind notification.
type Outbind struct {
	SystemID string
	Password string
}

func (*Outbind) CommandID() ID { return IDOutbind }
func (o *Outbind) Len() int    { return lenCOctetString(o.SystemID) + lenCOctetString(o.Password) }

func (o *Outbind) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < o.Len() {
		return 0, newDecodeError(KindTruncated, "outbind", nil)
	}
	n := writeCOctetString(buf, 0, o.SystemID)
	n += writeCOctetString(buf, n, o.Password)
	return n, nil
}

func (o *Outbind) UnmarshalBinary(buf []byte) error {
	systemID, n, err := readCOctetString(buf, 1, 16, "system_id")
	if err != nil {
		return err
	}
	o.SystemID = systemID
	password, _, err := readCOctetString(buf[n:], 1, 9, "password")
	if err != nil {
		return err
	}
	o.Password = password
	return nil
}
