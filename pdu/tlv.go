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

import (
	"encoding/binary"
	"fmt"
)

// Tag is the 16-bit TLV tag.
type Tag uint16

// The SMPP v5.0 optional-parameter tag registry. Unlisted tags are not
// rejected: they simply never match a context set and decode as opaque.
const (
	TagDestAddrSubunit            Tag = 0x0005
	TagDestNetworkType            Tag = 0x0006
	TagDestBearerType             Tag = 0x0007
	TagDestTelematicsID           Tag = 0x0008
	TagSourceAddrSubunit          Tag = 0x000D
	TagSourceNetworkType          Tag = 0x000E
	TagSourceBearerType           Tag = 0x000F
	TagSourceTelematicsID         Tag = 0x0010
	TagQosTimeToLive              Tag = 0x0017
	TagPayloadType                Tag = 0x0019
	TagAdditionalStatusInfoText   Tag = 0x001D
	TagReceiptedMessageID         Tag = 0x001E
	TagMsMsgWaitFacilities        Tag = 0x0030
	TagPrivacyIndicator           Tag = 0x0201
	TagSourceSubaddress           Tag = 0x0202
	TagDestSubaddress             Tag = 0x0203
	TagUserMessageReference       Tag = 0x0204
	TagUserResponseCode           Tag = 0x0205
	TagSourcePort                 Tag = 0x020A
	TagDestinationPort            Tag = 0x020B
	TagSarMsgRefNum               Tag = 0x020C
	TagLanguageIndicator          Tag = 0x020D
	TagSarTotalSegments           Tag = 0x020E
	TagSarSegmentSeqnum           Tag = 0x020F
	TagSCInterfaceVersion         Tag = 0x0210
	TagCallbackNumPresInd         Tag = 0x0302
	TagCallbackNumAtag            Tag = 0x0303
	TagNumberOfMessages           Tag = 0x0304
	TagCallbackNum                Tag = 0x0381
	TagDpfResult                  Tag = 0x0420
	TagSetDpf                     Tag = 0x0421
	TagMsAvailabilityStatus       Tag = 0x0422
	TagNetworkErrorCode           Tag = 0x0423
	TagMessagePayload             Tag = 0x0424
	TagDeliveryFailureReason      Tag = 0x0425
	TagMoreMessagesToSend         Tag = 0x0426
	TagMessageState               Tag = 0x0427
	TagUssdServiceOp              Tag = 0x0501
	TagDisplayTime                Tag = 0x1201
	TagSmsSignal                  Tag = 0x1203
	TagMsValidity                 Tag = 0x1204
	TagAlertOnMessageDelivery     Tag = 0x130C
	TagItsReplyType               Tag = 0x1380
	TagItsSessionInfo             Tag = 0x1383
	TagBroadcastChannelIndicator  Tag = 0x0600
	TagBroadcastContentType       Tag = 0x0601
	TagBroadcastContentTypeInfo   Tag = 0x0602
	TagBroadcastMessageClass      Tag = 0x0603
	TagBroadcastRepNum            Tag = 0x0604
	TagBroadcastFrequencyInterval Tag = 0x0605
	TagBroadcastAreaIdentifier    Tag = 0x0606
	TagBroadcastErrorStatus       Tag = 0x0607
	TagBroadcastAreaSuccess       Tag = 0x0608
	TagBroadcastEndTime           Tag = 0x0609
	TagBroadcastServiceGroup      Tag = 0x060A
	TagBillingIdentification      Tag = 0x060B
	TagSourceNetworkID            Tag = 0x060D
	TagDestNetworkID              Tag = 0x060E
	TagSourceNodeID               Tag = 0x060F
	TagDestNodeID                 Tag = 0x0610
	TagDestAddrNpResolution       Tag = 0x0611
	TagDestAddrNpInformation      Tag = 0x0612
	TagDestAddrNpCountry          Tag = 0x0613
	TagDisplaySmsId               Tag = 0x0617
	TagCongestionState            Tag = 0x0618
)

var tagNames = map[Tag]string{
	TagDestAddrSubunit: "dest_addr_subunit", TagDestNetworkType: "dest_network_type",
	TagDestBearerType: "dest_bearer_type", TagDestTelematicsID: "dest_telematics_id",
	TagSourceAddrSubunit: "source_addr_subunit", TagSourceNetworkType: "source_network_type",
	TagSourceBearerType: "source_bearer_type", TagSourceTelematicsID: "source_telematics_id",
	TagQosTimeToLive: "qos_time_to_live", TagPayloadType: "payload_type",
	TagAdditionalStatusInfoText: "additional_status_info_text", TagReceiptedMessageID: "receipted_message_id",
	TagMsMsgWaitFacilities: "ms_msg_wait_facilities", TagPrivacyIndicator: "privacy_indicator",
	TagSourceSubaddress: "source_subaddress", TagDestSubaddress: "dest_subaddress",
	TagUserMessageReference: "user_message_reference", TagUserResponseCode: "user_response_code",
	TagSourcePort: "source_port", TagDestinationPort: "destination_port",
	TagSarMsgRefNum: "sar_msg_ref_num", TagLanguageIndicator: "language_indicator",
	TagSarTotalSegments: "sar_total_segments", TagSarSegmentSeqnum: "sar_segment_seqnum",
	TagSCInterfaceVersion: "sc_interface_version", TagCallbackNumPresInd: "callback_num_pres_ind",
	TagCallbackNumAtag: "callback_num_atag", TagNumberOfMessages: "number_of_messages",
	TagCallbackNum: "callback_num", TagDpfResult: "dpf_result", TagSetDpf: "set_dpf",
	TagMsAvailabilityStatus: "ms_availability_status", TagNetworkErrorCode: "network_error_code",
	TagMessagePayload: "message_payload", TagDeliveryFailureReason: "delivery_failure_reason",
	TagMoreMessagesToSend: "more_messages_to_send", TagMessageState: "message_state",
	TagUssdServiceOp: "ussd_service_op", TagDisplayTime: "display_time",
	TagSmsSignal: "sms_signal", TagMsValidity: "ms_validity",
	TagAlertOnMessageDelivery: "alert_on_message_delivery", TagItsReplyType: "its_reply_type",
	TagItsSessionInfo: "its_session_info",
	TagBroadcastChannelIndicator: "broadcast_channel_indicator", TagBroadcastContentType: "broadcast_content_type",
	TagBroadcastContentTypeInfo: "broadcast_content_type_info", TagBroadcastMessageClass: "broadcast_message_class",
	TagBroadcastRepNum: "broadcast_rep_num", TagBroadcastFrequencyInterval: "broadcast_frequency_interval",
	TagBroadcastAreaIdentifier: "broadcast_area_identifier", TagBroadcastErrorStatus: "broadcast_error_status",
	TagBroadcastAreaSuccess: "broadcast_area_success", TagBroadcastEndTime: "broadcast_end_time",
	TagBroadcastServiceGroup: "broadcast_service_group", TagBillingIdentification: "billing_identification",
	TagSourceNetworkID: "source_network_id", TagDestNetworkID: "dest_network_id",
	TagSourceNodeID: "source_node_id", TagDestNodeID: "dest_node_id",
	TagDestAddrNpResolution: "dest_addr_np_resolution", TagDestAddrNpInformation: "dest_addr_np_information",
	TagDestAddrNpCountry: "dest_addr_np_country", TagDisplaySmsId: "display_sms_id",
	TagCongestionState: "congestion_state",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tag(0x%04x)", uint16(t))
}

// TLV is a decoded optional parameter. Value always holds the raw
// wire bytes, which is what makes unknown/contextually-unexpected tags
// round-trip byte for byte (§3, §8). Recognized tags additionally pass a
// fixed-width validation at decode time (§4.3); the typed accessors below
// are thin views over Value for callers who know what they're reading.
type TLV struct {
	Tag   Tag
	Value []byte
}

// Len is the encoded size of the TLV, including its 4-byte head.
func (t TLV) Len() int { return 4 + len(t.Value) }

// MarshalBinaryTo writes tag, length and value to b.
func (t TLV) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < t.Len() {
		return 0, newDecodeError(KindTruncated, "tlv", nil)
	}
	binary.BigEndian.PutUint16(b, uint16(t.Tag))
	binary.BigEndian.PutUint16(b[2:], uint16(len(t.Value)))
	copy(b[4:], t.Value)
	return t.Len(), nil
}

// Uint8 reads Value as a single byte. Callers should only call this for
// tags they know (or have validated via a context set) to be 1 byte wide.
func (t TLV) Uint8() (uint8, error) {
	if len(t.Value) != 1 {
		return 0, &TLVValueDecodeError{Tag: uint16(t.Tag), Cause: fmt.Errorf("want 1 byte, got %d", len(t.Value))}
	}
	return t.Value[0], nil
}

// Uint16 reads Value as a big-endian uint16.
func (t TLV) Uint16() (uint16, error) {
	if len(t.Value) != 2 {
		return 0, &TLVValueDecodeError{Tag: uint16(t.Tag), Cause: fmt.Errorf("want 2 bytes, got %d", len(t.Value))}
	}
	return binary.BigEndian.Uint16(t.Value), nil
}

// Uint32 reads Value as a big-endian uint32.
func (t TLV) Uint32() (uint32, error) {
	if len(t.Value) != 4 {
		return 0, &TLVValueDecodeError{Tag: uint16(t.Tag), Cause: fmt.Errorf("want 4 bytes, got %d", len(t.Value))}
	}
	return binary.BigEndian.Uint32(t.Value), nil
}

// COctetString reads Value as a NUL-terminated C-octet string occupying
// the whole value (as receipted_message_id and similar tags do).
func (t TLV) COctetString() (string, error) {
	s, n, err := readCOctetString(t.Value, 1, len(t.Value)+1, t.Tag.String())
	if err != nil {
		return "", &TLVValueDecodeError{Tag: uint16(t.Tag), Cause: err}
	}
	if n != len(t.Value) {
		return "", &TLVValueDecodeError{Tag: uint16(t.Tag), Cause: fmt.Errorf("trailing bytes after NUL")}
	}
	return s, nil
}

// NewTLVUint8, NewTLVUint16 and NewTLVUint32 build a TLV from a
// fixed-width unsigned value.
func NewTLVUint8(tag Tag, v uint8) TLV   { return TLV{Tag: tag, Value: []byte{v}} }
func NewTLVUint16(tag Tag, v uint16) TLV {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return TLV{Tag: tag, Value: b}
}
func NewTLVUint32(tag Tag, v uint32) TLV {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return TLV{Tag: tag, Value: b}
}
func NewTLVBytes(tag Tag, v []byte) TLV { return TLV{Tag: tag, Value: append([]byte(nil), v...)} }
