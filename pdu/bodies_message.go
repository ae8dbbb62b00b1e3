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

// findTLV returns the first TLV tagged tag, if any.
func findTLV(tlvs []TLV, tag Tag) (TLV, bool) {
	for _, t := range tlvs {
		if t.Tag == tag {
			return t, true
		}
	}
	return TLV{}, false
}

// submitDeliverBody is the shared mandatory-field layout of submit_sm and
// deliver_sm (§4.6 step 4): they differ only in which direction carries
// them and in a couple of field name conventions the wire format doesn't
// distinguish.
type submitDeliverBody struct {
	ServiceType           string
	SourceAddr            Address
	DestAddr              Address
	ESMClass              uint8
	ProtocolID            uint8
	PriorityFlag          PriorityFlag
	ScheduleDeliveryTime  string
	ValidityPeriod        string
	RegisteredDelivery    uint8
	ReplaceIfPresentFlag  ReplaceIfPresentFlag
	DataCoding            DataCoding
	SMDefaultMsgID        uint8
	ShortMessage          []byte
	TLVs                  []TLV
}

func (b *submitDeliverBody) len() int {
	return lenCOctetString(b.ServiceType) + b.SourceAddr.Len() + b.DestAddr.Len() +
		1 + 1 + 1 + lenCOctetString(b.ScheduleDeliveryTime) + lenCOctetString(b.ValidityPeriod) +
		1 + 1 + 1 + 1 + 1 + len(b.ShortMessage) + tlvsLen(b.TLVs)
}

func (b *submitDeliverBody) marshalBinaryTo(buf []byte) (int, error) {
	if len(b.ShortMessage) > 255 {
		return 0, newDecodeError(KindTooManyBytes, "short_message", nil)
	}
	if len(buf) < b.len() {
		return 0, newDecodeError(KindTruncated, "submit_deliver", nil)
	}
	n := writeCOctetString(buf, 0, b.ServiceType)
	n += b.SourceAddr.marshalBinaryTo(buf[n:])
	n += b.DestAddr.marshalBinaryTo(buf[n:])
	buf[n] = b.ESMClass
	n++
	buf[n] = b.ProtocolID
	n++
	buf[n] = byte(b.PriorityFlag)
	n++
	n += writeCOctetString(buf, n, b.ScheduleDeliveryTime)
	n += writeCOctetString(buf, n, b.ValidityPeriod)
	buf[n] = b.RegisteredDelivery
	n++
	buf[n] = byte(b.ReplaceIfPresentFlag)
	n++
	buf[n] = byte(b.DataCoding)
	n++
	buf[n] = b.SMDefaultMsgID
	n++
	buf[n] = byte(len(b.ShortMessage))
	n++
	n += copy(buf[n:], b.ShortMessage)
	tn, err := writeTLVs(buf[n:], b.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (b *submitDeliverBody) unmarshalBinary(buf []byte, ctx context) error {
	serviceType, n, err := readCOctetString(buf, 1, 6, "service_type")
	if err != nil {
		return err
	}
	b.ServiceType = serviceType
	pos := n
	src, n, err := readAddress(buf[pos:], 21, "source_addr")
	if err != nil {
		return err
	}
	b.SourceAddr = src
	pos += n
	dst, n, err := readAddress(buf[pos:], 21, "dest_addr")
	if err != nil {
		return err
	}
	b.DestAddr = dst
	pos += n
	esmClass, err := readUint8(buf[pos:], "esm_class")
	if err != nil {
		return err
	}
	b.ESMClass = esmClass
	pos++
	protocolID, err := readUint8(buf[pos:], "protocol_id")
	if err != nil {
		return err
	}
	b.ProtocolID = protocolID
	pos++
	priority, err := readUint8(buf[pos:], "priority_flag")
	if err != nil {
		return err
	}
	b.PriorityFlag = PriorityFlag(priority)
	pos++
	schedule, n, err := readCOctetString(buf[pos:], 1, 17, "schedule_delivery_time")
	if err != nil {
		return err
	}
	b.ScheduleDeliveryTime = schedule
	pos += n
	validity, n, err := readCOctetString(buf[pos:], 1, 17, "validity_period")
	if err != nil {
		return err
	}
	b.ValidityPeriod = validity
	pos += n
	registeredDelivery, err := readUint8(buf[pos:], "registered_delivery")
	if err != nil {
		return err
	}
	b.RegisteredDelivery = registeredDelivery
	pos++
	replace, err := readUint8(buf[pos:], "replace_if_present_flag")
	if err != nil {
		return err
	}
	b.ReplaceIfPresentFlag = ReplaceIfPresentFlag(replace)
	pos++
	dataCoding, err := readUint8(buf[pos:], "data_coding")
	if err != nil {
		return err
	}
	b.DataCoding = DataCoding(dataCoding)
	pos++
	smDefaultMsgID, err := readUint8(buf[pos:], "sm_default_msg_id")
	if err != nil {
		return err
	}
	b.SMDefaultMsgID = smDefaultMsgID
	pos++
	smLength, err := readUint8(buf[pos:], "sm_length")
	if err != nil {
		return err
	}
	pos++
	shortMessage, err := readAnyOctetString(buf[pos:], int(smLength), "short_message")
	if err != nil {
		return err
	}
	b.ShortMessage = shortMessage
	pos += int(smLength)
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctx)
	if err != nil {
		return err
	}
	b.TLVs = tlvs
	return nil
}

// validate rejects a body that carries both a non-empty
// short_message and a message_payload TLV: the two are mutually
// exclusive ways of conveying the content and a peer supplying both is
// declaring conflicting lengths for "the message" (§4.4 sibling rule,
// generalized to this tag-vs-field pair).
func (b *submitDeliverBody) validate() error {
	if len(b.ShortMessage) == 0 {
		return nil
	}
	if _, ok := findTLV(b.TLVs, TagMessagePayload); ok {
		return &SiblingMismatchError{Declared: "short_message", Actual: "message_payload"}
	}
	return nil
}

// SubmitSm is the ESME->MC submit_sm request.
type SubmitSm struct{ submitDeliverBody }

// NewSubmitSm builds a submit_sm request carrying shortMessage in the
// short_message field (not message_payload), with source/dest addresses
// in the common unknown-ton/unknown-npi form.
func NewSubmitSm(sourceAddr, destAddr string, shortMessage []byte) *SubmitSm {
	return &SubmitSm{submitDeliverBody{
		SourceAddr:   Address{Addr: sourceAddr},
		DestAddr:     Address{Addr: destAddr},
		ShortMessage: shortMessage,
	}}
}

func (*SubmitSm) CommandID() ID                            { return IDSubmitSm }
func (s *SubmitSm) Len() int                                { return s.submitDeliverBody.len() }
func (s *SubmitSm) MarshalBinaryTo(buf []byte) (int, error) { return s.submitDeliverBody.marshalBinaryTo(buf) }
func (s *SubmitSm) UnmarshalBinary(buf []byte) error {
	if err := s.submitDeliverBody.unmarshalBinary(buf, ctxSubmitSm); err != nil {
		return err
	}
	return s.submitDeliverBody.validate()
}

// DeliverSm is the MC->ESME deliver_sm request.
type DeliverSm struct{ submitDeliverBody }

func (*DeliverSm) CommandID() ID                            { return IDDeliverSm }
func (d *DeliverSm) Len() int                                { return d.submitDeliverBody.len() }
func (d *DeliverSm) MarshalBinaryTo(buf []byte) (int, error) { return d.submitDeliverBody.marshalBinaryTo(buf) }
func (d *DeliverSm) UnmarshalBinary(buf []byte) error {
	if err := d.submitDeliverBody.unmarshalBinary(buf, ctxDeliverSm); err != nil {
		return err
	}
	return d.submitDeliverBody.validate()
}

// messageIDRespBody is the message_id(+TLVs) response shape shared by
// submit_sm_resp, deliver_sm_resp, data_sm_resp and broadcast_sm_resp.
type messageIDRespBody struct {
	MessageID string
	TLVs      []TLV
}

func (b *messageIDRespBody) len() int { return lenCOctetString(b.MessageID) + tlvsLen(b.TLVs) }

func (b *messageIDRespBody) marshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < b.len() {
		return 0, newDecodeError(KindTruncated, "message_id_resp", nil)
	}
	n := writeCOctetString(buf, 0, b.MessageID)
	tn, err := writeTLVs(buf[n:], b.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (b *messageIDRespBody) unmarshalBinary(buf []byte, ctx context) error {
	if len(buf) == 0 {
		b.MessageID = ""
		b.TLVs = nil
		return nil
	}
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	b.MessageID = messageID
	tlvs, err := readTLVs(buf[n:], len(buf)-n, ctx)
	if err != nil {
		return err
	}
	b.TLVs = tlvs
	return nil
}

// SubmitSmResp is the MC->ESME submit_sm response.
type SubmitSmResp struct{ messageIDRespBody }

func (*SubmitSmResp) CommandID() ID                            { return IDSubmitSmResp }
func (s *SubmitSmResp) Len() int                                { return s.messageIDRespBody.len() }
func (s *SubmitSmResp) MarshalBinaryTo(buf []byte) (int, error) { return s.messageIDRespBody.marshalBinaryTo(buf) }
func (s *SubmitSmResp) UnmarshalBinary(buf []byte) error {
	return s.messageIDRespBody.unmarshalBinary(buf, ctxSubmitSmResp)
}

// DeliverSmResp is the ESME->MC deliver_sm response. message_id is
// conventionally empty but the field is present on the wire.
type DeliverSmResp struct{ messageIDRespBody }

func (*DeliverSmResp) CommandID() ID                            { return IDDeliverSmResp }
func (d *DeliverSmResp) Len() int                                { return d.messageIDRespBody.len() }
func (d *DeliverSmResp) MarshalBinaryTo(buf []byte) (int, error) { return d.messageIDRespBody.marshalBinaryTo(buf) }
func (d *DeliverSmResp) UnmarshalBinary(buf []byte) error {
	return d.messageIDRespBody.unmarshalBinary(buf, ctxDeliverSmResp)
}

// DataSm is the bidirectional data_sm request: submit_sm's mandatory
// fields minus the scheduling/content fields, content carried only in
// the message_payload TLV.
type DataSm struct {
	ServiceType        string
	SourceAddr         Address
	DestAddr           Address
	ESMClass           uint8
	RegisteredDelivery uint8
	DataCoding         DataCoding
	TLVs               []TLV
}

func (*DataSm) CommandID() ID { return IDDataSm }

func (d *DataSm) Len() int {
	return lenCOctetString(d.ServiceType) + d.SourceAddr.Len() + d.DestAddr.Len() + 1 + 1 + 1 + tlvsLen(d.TLVs)
}

func (d *DataSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < d.Len() {
		return 0, newDecodeError(KindTruncated, "data_sm", nil)
	}
	n := writeCOctetString(buf, 0, d.ServiceType)
	n += d.SourceAddr.marshalBinaryTo(buf[n:])
	n += d.DestAddr.marshalBinaryTo(buf[n:])
	buf[n] = d.ESMClass
	n++
	buf[n] = d.RegisteredDelivery
	n++
	buf[n] = byte(d.DataCoding)
	n++
	tn, err := writeTLVs(buf[n:], d.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (d *DataSm) UnmarshalBinary(buf []byte) error {
	serviceType, n, err := readCOctetString(buf, 1, 6, "service_type")
	if err != nil {
		return err
	}
	d.ServiceType = serviceType
	pos := n
	src, n, err := readAddress(buf[pos:], 65, "source_addr")
	if err != nil {
		return err
	}
	d.SourceAddr = src
	pos += n
	dst, n, err := readAddress(buf[pos:], 65, "dest_addr")
	if err != nil {
		return err
	}
	d.DestAddr = dst
	pos += n
	esmClass, err := readUint8(buf[pos:], "esm_class")
	if err != nil {
		return err
	}
	d.ESMClass = esmClass
	pos++
	registeredDelivery, err := readUint8(buf[pos:], "registered_delivery")
	if err != nil {
		return err
	}
	d.RegisteredDelivery = registeredDelivery
	pos++
	dataCoding, err := readUint8(buf[pos:], "data_coding")
	if err != nil {
		return err
	}
	d.DataCoding = DataCoding(dataCoding)
	pos++
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxDataSm)
	if err != nil {
		return err
	}
	d.TLVs = tlvs
	return nil
}

// DataSmResp is the data_sm response.
type DataSmResp struct{ messageIDRespBody }

func (*DataSmResp) CommandID() ID                            { return IDDataSmResp }
func (d *DataSmResp) Len() int                                { return d.messageIDRespBody.len() }
func (d *DataSmResp) MarshalBinaryTo(buf []byte) (int, error) { return d.messageIDRespBody.marshalBinaryTo(buf) }
func (d *DataSmResp) UnmarshalBinary(buf []byte) error {
	return d.messageIDRespBody.unmarshalBinary(buf, ctxDataSmResp)
}

// QuerySm is the ESME->MC query_sm request.
type QuerySm struct {
	MessageID  string
	SourceAddr Address
}

func (*QuerySm) CommandID() ID { return IDQuerySm }
func (q *QuerySm) Len() int    { return lenCOctetString(q.MessageID) + q.SourceAddr.Len() }

func (q *QuerySm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < q.Len() {
		return 0, newDecodeError(KindTruncated, "query_sm", nil)
	}
	n := writeCOctetString(buf, 0, q.MessageID)
	n += q.SourceAddr.marshalBinaryTo(buf[n:])
	return n, nil
}

func (q *QuerySm) UnmarshalBinary(buf []byte) error {
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	q.MessageID = messageID
	src, _, err := readAddress(buf[n:], 21, "source_addr")
	if err != nil {
		return err
	}
	q.SourceAddr = src
	return nil
}

// QuerySmResp is the query_sm response.
type QuerySmResp struct {
	MessageID    string
	FinalDate    string
	MessageState uint8
	ErrorCode    uint8
}

func (*QuerySmResp) CommandID() ID { return IDQuerySmResp }

func (q *QuerySmResp) Len() int {
	return lenCOctetString(q.MessageID) + lenCOctetString(q.FinalDate) + 1 + 1
}

func (q *QuerySmResp) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < q.Len() {
		return 0, newDecodeError(KindTruncated, "query_sm_resp", nil)
	}
	n := writeCOctetString(buf, 0, q.MessageID)
	n += writeCOctetString(buf, n, q.FinalDate)
	buf[n] = q.MessageState
	n++
	buf[n] = q.ErrorCode
	n++
	return n, nil
}

func (q *QuerySmResp) UnmarshalBinary(buf []byte) error {
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	q.MessageID = messageID
	pos := n
	finalDate, n, err := readCOctetString(buf[pos:], 1, 17, "final_date")
	if err != nil {
		return err
	}
	q.FinalDate = finalDate
	pos += n
	messageState, err := readUint8(buf[pos:], "message_state")
	if err != nil {
		return err
	}
	q.MessageState = messageState
	pos++
	errorCode, err := readUint8(buf[pos:], "error_code")
	if err != nil {
		return err
	}
	q.ErrorCode = errorCode
	return nil
}

// CancelSm is the ESME->MC cancel_sm request.
type CancelSm struct {
	ServiceType string
	MessageID   string
	SourceAddr  Address
	DestAddr    Address
}

func (*CancelSm) CommandID() ID { return IDCancelSm }

func (c *CancelSm) Len() int {
	return lenCOctetString(c.ServiceType) + lenCOctetString(c.MessageID) + c.SourceAddr.Len() + c.DestAddr.Len()
}

func (c *CancelSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < c.Len() {
		return 0, newDecodeError(KindTruncated, "cancel_sm", nil)
	}
	n := writeCOctetString(buf, 0, c.ServiceType)
	n += writeCOctetString(buf, n, c.MessageID)
	n += c.SourceAddr.marshalBinaryTo(buf[n:])
	n += c.DestAddr.marshalBinaryTo(buf[n:])
	return n, nil
}

func (c *CancelSm) UnmarshalBinary(buf []byte) error {
	serviceType, n, err := readCOctetString(buf, 1, 6, "service_type")
	if err != nil {
		return err
	}
	c.ServiceType = serviceType
	pos := n
	messageID, n, err := readCOctetString(buf[pos:], 1, 65, "message_id")
	if err != nil {
		return err
	}
	c.MessageID = messageID
	pos += n
	src, n, err := readAddress(buf[pos:], 21, "source_addr")
	if err != nil {
		return err
	}
	c.SourceAddr = src
	pos += n
	dst, _, err := readAddress(buf[pos:], 21, "dest_addr")
	if err != nil {
		return err
	}
	c.DestAddr = dst
	return nil
}

// ReplaceSm is the ESME->MC replace_sm request.
type ReplaceSm struct {
	MessageID            string
	SourceAddr           Address
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   uint8
	SMDefaultMsgID       uint8
	ShortMessage         []byte
}

func (*ReplaceSm) CommandID() ID { return IDReplaceSm }

func (r *ReplaceSm) Len() int {
	return lenCOctetString(r.MessageID) + r.SourceAddr.Len() +
		lenCOctetString(r.ScheduleDeliveryTime) + lenCOctetString(r.ValidityPeriod) +
		1 + 1 + 1 + len(r.ShortMessage)
}

func (r *ReplaceSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(r.ShortMessage) > 255 {
		return 0, newDecodeError(KindTooManyBytes, "short_message", nil)
	}
	if len(buf) < r.Len() {
		return 0, newDecodeError(KindTruncated, "replace_sm", nil)
	}
	n := writeCOctetString(buf, 0, r.MessageID)
	n += r.SourceAddr.marshalBinaryTo(buf[n:])
	n += writeCOctetString(buf, n, r.ScheduleDeliveryTime)
	n += writeCOctetString(buf, n, r.ValidityPeriod)
	buf[n] = r.RegisteredDelivery
	n++
	buf[n] = r.SMDefaultMsgID
	n++
	buf[n] = byte(len(r.ShortMessage))
	n++
	n += copy(buf[n:], r.ShortMessage)
	return n, nil
}

func (r *ReplaceSm) UnmarshalBinary(buf []byte) error {
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	r.MessageID = messageID
	pos := n
	src, n, err := readAddress(buf[pos:], 21, "source_addr")
	if err != nil {
		return err
	}
	r.SourceAddr = src
	pos += n
	schedule, n, err := readCOctetString(buf[pos:], 1, 17, "schedule_delivery_time")
	if err != nil {
		return err
	}
	r.ScheduleDeliveryTime = schedule
	pos += n
	validity, n, err := readCOctetString(buf[pos:], 1, 17, "validity_period")
	if err != nil {
		return err
	}
	r.ValidityPeriod = validity
	pos += n
	registeredDelivery, err := readUint8(buf[pos:], "registered_delivery")
	if err != nil {
		return err
	}
	r.RegisteredDelivery = registeredDelivery
	pos++
	smDefaultMsgID, err := readUint8(buf[pos:], "sm_default_msg_id")
	if err != nil {
		return err
	}
	r.SMDefaultMsgID = smDefaultMsgID
	pos++
	smLength, err := readUint8(buf[pos:], "sm_length")
	if err != nil {
		return err
	}
	pos++
	shortMessage, err := readAnyOctetString(buf[pos:], int(smLength), "short_message")
	if err != nil {
		return err
	}
	r.ShortMessage = shortMessage
	return nil
}
