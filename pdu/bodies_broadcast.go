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

// ctxQueryBroadcastSm recognizes no tags itself; query_broadcast_sm's
// only optional parameter (user_message_reference) is echoed back in
// the response rather than accepted here, so any trailing TLV on the
// request decodes as opaque passthrough.
var ctxQueryBroadcastSm = newContext()

// BroadcastSm is the ESME->MC broadcast_sm request (SMPP v5.0 §4.7.1).
// Most of its content-bearing fields (broadcast_area_identifier,
// broadcast_content_type, ...) are mandatory TLVs rather than fixed
// fields, per the v5.0 wire layout.
type BroadcastSm struct {
	ServiceType          string
	SourceAddr           Address
	MessageID            string
	PriorityFlag         PriorityFlag
	ScheduleDeliveryTime string
	ValidityPeriod       string
	ReplaceIfPresentFlag ReplaceIfPresentFlag
	DataCoding           DataCoding
	SMDefaultMsgID       uint8
	TLVs                 []TLV
}

func (*BroadcastSm) CommandID() ID { return IDBroadcastSm }

func (b *BroadcastSm) Len() int {
	return lenCOctetString(b.ServiceType) + b.SourceAddr.Len() + lenCOctetString(b.MessageID) +
		1 + lenCOctetString(b.ScheduleDeliveryTime) + lenCOctetString(b.ValidityPeriod) +
		1 + 1 + 1 + tlvsLen(b.TLVs)
}

func (b *BroadcastSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < b.Len() {
		return 0, newDecodeError(KindTruncated, "broadcast_sm", nil)
	}
	n := writeCOctetString(buf, 0, b.ServiceType)
	n += b.SourceAddr.marshalBinaryTo(buf[n:])
	n += writeCOctetString(buf, n, b.MessageID)
	buf[n] = byte(b.PriorityFlag)
	n++
	n += writeCOctetString(buf, n, b.ScheduleDeliveryTime)
	n += writeCOctetString(buf, n, b.ValidityPeriod)
	buf[n] = byte(b.ReplaceIfPresentFlag)
	n++
	buf[n] = byte(b.DataCoding)
	n++
	buf[n] = b.SMDefaultMsgID
	n++
	tn, err := writeTLVs(buf[n:], b.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (b *BroadcastSm) UnmarshalBinary(buf []byte) error {
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
	messageID, n, err := readCOctetString(buf[pos:], 1, 65, "message_id")
	if err != nil {
		return err
	}
	b.MessageID = messageID
	pos += n
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
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxBroadcastSm)
	if err != nil {
		return err
	}
	b.TLVs = tlvs
	return nil
}

// BroadcastSmResp is the broadcast_sm response.
type BroadcastSmResp struct{ messageIDRespBody }

func (*BroadcastSmResp) CommandID() ID                            { return IDBroadcastSmResp }
func (b *BroadcastSmResp) Len() int                                { return b.messageIDRespBody.len() }
func (b *BroadcastSmResp) MarshalBinaryTo(buf []byte) (int, error) { return b.messageIDRespBody.marshalBinaryTo(buf) }
func (b *BroadcastSmResp) UnmarshalBinary(buf []byte) error {
	return b.messageIDRespBody.unmarshalBinary(buf, ctxBroadcastSmResp)
}

// QueryBroadcastSm is the ESME->MC query_broadcast_sm request.
type QueryBroadcastSm struct {
	MessageID  string
	SourceAddr Address
	TLVs       []TLV
}

func (*QueryBroadcastSm) CommandID() ID { return IDQueryBroadcastSm }

func (q *QueryBroadcastSm) Len() int {
	return lenCOctetString(q.MessageID) + q.SourceAddr.Len() + tlvsLen(q.TLVs)
}

func (q *QueryBroadcastSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < q.Len() {
		return 0, newDecodeError(KindTruncated, "query_broadcast_sm", nil)
	}
	n := writeCOctetString(buf, 0, q.MessageID)
	n += q.SourceAddr.marshalBinaryTo(buf[n:])
	tn, err := writeTLVs(buf[n:], q.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (q *QueryBroadcastSm) UnmarshalBinary(buf []byte) error {
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	q.MessageID = messageID
	pos := n
	src, n, err := readAddress(buf[pos:], 21, "source_addr")
	if err != nil {
		return err
	}
	q.SourceAddr = src
	pos += n
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxQueryBroadcastSm)
	if err != nil {
		return err
	}
	q.TLVs = tlvs
	return nil
}

// QueryBroadcastSmResp is the query_broadcast_sm response: message_id
// plus TLVs carrying message_state and the broadcast area status list.
type QueryBroadcastSmResp struct {
	MessageID string
	TLVs      []TLV
}

func (*QueryBroadcastSmResp) CommandID() ID { return IDQueryBroadcastSmResp }

func (q *QueryBroadcastSmResp) Len() int { return lenCOctetString(q.MessageID) + tlvsLen(q.TLVs) }

func (q *QueryBroadcastSmResp) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < q.Len() {
		return 0, newDecodeError(KindTruncated, "query_broadcast_sm_resp", nil)
	}
	n := writeCOctetString(buf, 0, q.MessageID)
	tn, err := writeTLVs(buf[n:], q.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (q *QueryBroadcastSmResp) UnmarshalBinary(buf []byte) error {
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	q.MessageID = messageID
	tlvs, err := readTLVs(buf[n:], len(buf)-n, ctxQueryBroadcastSmResp)
	if err != nil {
		return err
	}
	q.TLVs = tlvs
	return nil
}

// CancelBroadcastSm is the ESME->MC cancel_broadcast_sm request.
type CancelBroadcastSm struct {
	ServiceType string
	MessageID   string
	SourceAddr  Address
	TLVs        []TLV
}

func (*CancelBroadcastSm) CommandID() ID { return IDCancelBroadcastSm }

func (c *CancelBroadcastSm) Len() int {
	return lenCOctetString(c.ServiceType) + lenCOctetString(c.MessageID) + c.SourceAddr.Len() + tlvsLen(c.TLVs)
}

func (c *CancelBroadcastSm) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < c.Len() {
		return 0, newDecodeError(KindTruncated, "cancel_broadcast_sm", nil)
	}
	n := writeCOctetString(buf, 0, c.ServiceType)
	n += writeCOctetString(buf, n, c.MessageID)
	n += c.SourceAddr.marshalBinaryTo(buf[n:])
	tn, err := writeTLVs(buf[n:], c.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (c *CancelBroadcastSm) UnmarshalBinary(buf []byte) error {
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
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxCancelBroadcastSm)
	if err != nil {
		return err
	}
	c.TLVs = tlvs
	return nil
}
