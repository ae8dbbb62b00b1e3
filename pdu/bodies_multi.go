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

// MultiDest is one destination entry of submit_multi: either an SME
// address or a distribution list name, selected by DestFlag (§4.4
// tag-plus-length union pattern, applied to a one-byte selector rather
// than a TLV tag).
type MultiDest struct {
	Flag    DestFlag
	Addr    Address // valid when Flag == DestFlagSMEAddress
	DLName  string  // valid when Flag == DestFlagDistributionList
}

func (d MultiDest) len() int {
	if d.Flag == DestFlagDistributionList {
		return 1 + lenCOctetString(d.DLName)
	}
	return 1 + d.Addr.Len()
}

func (d MultiDest) marshalBinaryTo(buf []byte) int {
	buf[0] = byte(d.Flag)
	if d.Flag == DestFlagDistributionList {
		return 1 + writeCOctetString(buf, 1, d.DLName)
	}
	return 1 + d.Addr.marshalBinaryTo(buf[1:])
}

func readMultiDest(buf []byte) (MultiDest, int, error) {
	var d MultiDest
	flag, err := readUint8(buf, "dest_flag")
	if err != nil {
		return d, 0, err
	}
	d.Flag = DestFlag(flag)
	if d.Flag == DestFlagDistributionList {
		name, n, err := readCOctetString(buf[1:], 1, 21, "dl_name")
		if err != nil {
			return d, 0, err
		}
		d.DLName = name
		return d, 1 + n, nil
	}
	addr, n, err := readAddress(buf[1:], 21, "dest_address")
	if err != nil {
		return d, 0, err
	}
	d.Addr = addr
	return d, 1 + n, nil
}

// SubmitMulti is the ESME->MC submit_multi request: submit_sm's
// mandatory fields with a single destination replaced by a
// count-directed list of destinations (§4.4 count-directed pattern).
type SubmitMulti struct {
	ServiceType          string
	SourceAddr           Address
	Dests                []MultiDest
	ESMClass             uint8
	ProtocolID           uint8
	PriorityFlag         PriorityFlag
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   uint8
	ReplaceIfPresentFlag ReplaceIfPresentFlag
	DataCoding           DataCoding
	SMDefaultMsgID       uint8
	ShortMessage         []byte
	TLVs                 []TLV
}

func (*SubmitMulti) CommandID() ID { return IDSubmitMulti }

func (s *SubmitMulti) Len() int {
	n := lenCOctetString(s.ServiceType) + s.SourceAddr.Len() + 1
	for _, d := range s.Dests {
		n += d.len()
	}
	n += 1 + 1 + 1 + lenCOctetString(s.ScheduleDeliveryTime) + lenCOctetString(s.ValidityPeriod) +
		1 + 1 + 1 + 1 + 1 + len(s.ShortMessage) + tlvsLen(s.TLVs)
	return n
}

func (s *SubmitMulti) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < s.Len() {
		return 0, newDecodeError(KindTruncated, "submit_multi", nil)
	}
	if len(s.Dests) > 255 {
		return 0, &SiblingMismatchError{Declared: "number_of_dests", Actual: "dest_address"}
	}
	n := writeCOctetString(buf, 0, s.ServiceType)
	n += s.SourceAddr.marshalBinaryTo(buf[n:])
	buf[n] = byte(len(s.Dests))
	n++
	for _, d := range s.Dests {
		n += d.marshalBinaryTo(buf[n:])
	}
	buf[n] = s.ESMClass
	n++
	buf[n] = s.ProtocolID
	n++
	buf[n] = byte(s.PriorityFlag)
	n++
	n += writeCOctetString(buf, n, s.ScheduleDeliveryTime)
	n += writeCOctetString(buf, n, s.ValidityPeriod)
	buf[n] = s.RegisteredDelivery
	n++
	buf[n] = byte(s.ReplaceIfPresentFlag)
	n++
	buf[n] = byte(s.DataCoding)
	n++
	buf[n] = s.SMDefaultMsgID
	n++
	buf[n] = byte(len(s.ShortMessage))
	n++
	n += copy(buf[n:], s.ShortMessage)
	tn, err := writeTLVs(buf[n:], s.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (s *SubmitMulti) UnmarshalBinary(buf []byte) error {
	serviceType, n, err := readCOctetString(buf, 1, 6, "service_type")
	if err != nil {
		return err
	}
	s.ServiceType = serviceType
	pos := n
	src, n, err := readAddress(buf[pos:], 21, "source_addr")
	if err != nil {
		return err
	}
	s.SourceAddr = src
	pos += n
	numberOfDests, err := readUint8(buf[pos:], "number_of_dests")
	if err != nil {
		return err
	}
	pos++
	dests := make([]MultiDest, 0, numberOfDests)
	for i := 0; i < int(numberOfDests); i++ {
		d, n, err := readMultiDest(buf[pos:])
		if err != nil {
			return err
		}
		dests = append(dests, d)
		pos += n
	}
	s.Dests = dests
	esmClass, err := readUint8(buf[pos:], "esm_class")
	if err != nil {
		return err
	}
	s.ESMClass = esmClass
	pos++
	protocolID, err := readUint8(buf[pos:], "protocol_id")
	if err != nil {
		return err
	}
	s.ProtocolID = protocolID
	pos++
	priority, err := readUint8(buf[pos:], "priority_flag")
	if err != nil {
		return err
	}
	s.PriorityFlag = PriorityFlag(priority)
	pos++
	schedule, n, err := readCOctetString(buf[pos:], 1, 17, "schedule_delivery_time")
	if err != nil {
		return err
	}
	s.ScheduleDeliveryTime = schedule
	pos += n
	validity, n, err := readCOctetString(buf[pos:], 1, 17, "validity_period")
	if err != nil {
		return err
	}
	s.ValidityPeriod = validity
	pos += n
	registeredDelivery, err := readUint8(buf[pos:], "registered_delivery")
	if err != nil {
		return err
	}
	s.RegisteredDelivery = registeredDelivery
	pos++
	replace, err := readUint8(buf[pos:], "replace_if_present_flag")
	if err != nil {
		return err
	}
	s.ReplaceIfPresentFlag = ReplaceIfPresentFlag(replace)
	pos++
	dataCoding, err := readUint8(buf[pos:], "data_coding")
	if err != nil {
		return err
	}
	s.DataCoding = DataCoding(dataCoding)
	pos++
	smDefaultMsgID, err := readUint8(buf[pos:], "sm_default_msg_id")
	if err != nil {
		return err
	}
	s.SMDefaultMsgID = smDefaultMsgID
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
	s.ShortMessage = shortMessage
	pos += int(smLength)
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxSubmitMulti)
	if err != nil {
		return err
	}
	s.TLVs = tlvs
	if len(s.ShortMessage) > 0 {
		if _, ok := findTLV(s.TLVs, TagMessagePayload); ok {
			return &SiblingMismatchError{Declared: "short_message", Actual: "message_payload"}
		}
	}
	return nil
}

// UnsuccessSme is one failed-destination entry of submit_multi_resp.
type UnsuccessSme struct {
	Addr        Address
	ErrorStatus CommandStatus
}

func (u UnsuccessSme) len() int { return u.Addr.Len() + 4 }

// SubmitMultiResp is the submit_multi response.
type SubmitMultiResp struct {
	MessageID  string
	Unsuccess  []UnsuccessSme
	TLVs       []TLV
}

func (*SubmitMultiResp) CommandID() ID { return IDSubmitMultiResp }

func (s *SubmitMultiResp) Len() int {
	n := lenCOctetString(s.MessageID) + 1
	for _, u := range s.Unsuccess {
		n += u.len()
	}
	return n + tlvsLen(s.TLVs)
}

func (s *SubmitMultiResp) MarshalBinaryTo(buf []byte) (int, error) {
	if len(buf) < s.Len() {
		return 0, newDecodeError(KindTruncated, "submit_multi_resp", nil)
	}
	if len(s.Unsuccess) > 255 {
		return 0, &SiblingMismatchError{Declared: "no_unsuccess", Actual: "unsuccess_sme"}
	}
	n := writeCOctetString(buf, 0, s.MessageID)
	buf[n] = byte(len(s.Unsuccess))
	n++
	for _, u := range s.Unsuccess {
		n += u.Addr.marshalBinaryTo(buf[n:])
		binary.BigEndian.PutUint32(buf[n:], uint32(u.ErrorStatus))
		n += 4
	}
	tn, err := writeTLVs(buf[n:], s.TLVs)
	if err != nil {
		return 0, err
	}
	return n + tn, nil
}

func (s *SubmitMultiResp) UnmarshalBinary(buf []byte) error {
	if len(buf) == 0 {
		s.MessageID = ""
		s.Unsuccess = nil
		s.TLVs = nil
		return nil
	}
	messageID, n, err := readCOctetString(buf, 1, 65, "message_id")
	if err != nil {
		return err
	}
	s.MessageID = messageID
	pos := n
	noUnsuccess, err := readUint8(buf[pos:], "no_unsuccess")
	if err != nil {
		return err
	}
	pos++
	entries := make([]UnsuccessSme, 0, noUnsuccess)
	for i := 0; i < int(noUnsuccess); i++ {
		addr, n, err := readAddress(buf[pos:], 21, "unsuccess_sme.dest_addr")
		if err != nil {
			return err
		}
		pos += n
		status, err := readUint32(buf[pos:], "unsuccess_sme.error_status_code")
		if err != nil {
			return err
		}
		pos += 4
		entries = append(entries, UnsuccessSme{Addr: addr, ErrorStatus: CommandStatus(status)})
	}
	s.Unsuccess = entries
	tlvs, err := readTLVs(buf[pos:], len(buf)-pos, ctxSubmitMultiResp)
	if err != nil {
		return err
	}
	s.TLVs = tlvs
	return nil
}
