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

// fixedWidth gives the validated wire width of recognized tags whose
// value is a plain fixed-width integer. Tags absent from this map (either
// because they're variable-length when recognized, e.g. message_payload,
// or because no context recognizes them) are never width-checked here;
// width-checking for variable-length recognized tags happens in the
// accessor the caller invokes (COctetString, etc).
var fixedWidth = map[Tag]int{
	TagDestAddrSubunit: 1, TagDestNetworkType: 1, TagDestBearerType: 1,
	TagSourceAddrSubunit: 1, TagSourceNetworkType: 1, TagSourceBearerType: 1,
	TagQosTimeToLive: 4, TagPayloadType: 1, TagMsMsgWaitFacilities: 1,
	TagPrivacyIndicator: 1, TagUserMessageReference: 2, TagUserResponseCode: 1,
	TagSourcePort: 2, TagDestinationPort: 2, TagSarMsgRefNum: 2,
	TagLanguageIndicator: 1, TagSarTotalSegments: 1, TagSarSegmentSeqnum: 1,
	TagSCInterfaceVersion: 1, TagCallbackNumPresInd: 1, TagNumberOfMessages: 1,
	TagDpfResult: 1, TagSetDpf: 1, TagMsAvailabilityStatus: 1,
	TagDeliveryFailureReason: 1, TagMoreMessagesToSend: 1, TagMessageState: 1,
	TagUssdServiceOp: 1, TagDisplayTime: 1, TagItsReplyType: 1,
	TagBroadcastChannelIndicator: 1, TagBroadcastContentType: 3,
	TagBroadcastMessageClass: 1, TagBroadcastRepNum: 2,
	TagBroadcastErrorStatus: 4, TagDestAddrNpResolution: 1,
	TagCongestionState: 1,
}

// context is a PDU-scoped recognized-tag set: the tags a given PDU body
// is willing to type-check. Every other tag, in any PDU, decodes as an
// opaque passthrough TLV regardless of whether the registry above knows
// its name. This is what makes spec §3/§8's "unknown tags never fail
// decode" hold even for tags the catalogue names but a given PDU doesn't
// expect there.
type context map[Tag]bool

func newContext(tags ...Tag) context {
	c := make(context, len(tags))
	for _, t := range tags {
		c[t] = true
	}
	return c
}

var (
	ctxSubmitSm = newContext(
		TagUserMessageReference, TagSourcePort, TagSourceAddrSubunit, TagDestinationPort,
		TagDestAddrSubunit, TagSarMsgRefNum, TagSarTotalSegments, TagSarSegmentSeqnum,
		TagMoreMessagesToSend, TagPayloadType, TagMessagePayload, TagPrivacyIndicator,
		TagCallbackNum, TagCallbackNumPresInd, TagCallbackNumAtag, TagSourceSubaddress,
		TagDestSubaddress, TagUserResponseCode, TagDisplayTime, TagSmsSignal,
		TagMsValidity, TagMsMsgWaitFacilities, TagNumberOfMessages, TagAlertOnMessageDelivery,
		TagLanguageIndicator, TagItsReplyType, TagItsSessionInfo, TagUssdServiceOp,
		TagQosTimeToLive, TagSetDpf, TagDestAddrNpResolution, TagDestAddrNpInformation,
		TagDestAddrNpCountry,
	)
	ctxSubmitSmResp   = newContext(TagAdditionalStatusInfoText)
	ctxDeliverSm      = newContext(
		TagUserMessageReference, TagSourcePort, TagDestinationPort, TagSarMsgRefNum,
		TagSarTotalSegments, TagSarSegmentSeqnum, TagMoreMessagesToSend, TagPayloadType,
		TagMessagePayload, TagReceiptedMessageID, TagMessageState, TagNetworkErrorCode,
		TagPrivacyIndicator, TagCallbackNum, TagSourceSubaddress, TagDestSubaddress,
		TagUserResponseCode, TagLanguageIndicator, TagItsSessionInfo, TagUssdServiceOp,
		TagDestAddrNpResolution, TagDestAddrNpInformation, TagDestAddrNpCountry,
	)
	ctxDeliverSmResp  = newContext()
	ctxDataSm         = ctxDeliverSm
	ctxDataSmResp     = newContext(
		TagDeliveryFailureReason, TagNetworkErrorCode, TagAdditionalStatusInfoText, TagDpfResult,
	)
	ctxSubmitMulti     = ctxSubmitSm
	ctxSubmitMultiResp = newContext(TagAdditionalStatusInfoText)
	ctxQuerySmResp     = newContext()
	ctxCancelBroadcastSm = newContext(TagBroadcastContentTypeInfo)
	ctxBroadcastSm     = newContext(
		TagBroadcastAreaIdentifier, TagBroadcastContentType, TagBroadcastRepNum,
		TagBroadcastFrequencyInterval, TagBroadcastChannelIndicator, TagBroadcastContentTypeInfo,
		TagBroadcastMessageClass, TagBroadcastServiceGroup, TagDisplayTime, TagSmsSignal,
		TagMsValidity, TagPayloadType, TagMessagePayload, TagCallbackNum, TagCallbackNumPresInd,
		TagCallbackNumAtag, TagSourceSubaddress, TagUserMessageReference, TagAlertOnMessageDelivery,
		TagLanguageIndicator, TagBroadcastEndTime, TagBroadcastAreaSuccess, TagBillingIdentification,
	)
	ctxBroadcastSmResp   = newContext()
	ctxQueryBroadcastSmResp = newContext(
		TagMessageState, TagBroadcastAreaIdentifier, TagBroadcastAreaSuccess, TagBroadcastEndTime,
		TagUserMessageReference,
	)
	ctxAlertNotification = newContext(
		TagMsAvailabilityStatus,
	)
	ctxOutbind = newContext()
	ctxBindResp = newContext(TagSCInterfaceVersion)
)

// readTLVs decodes a sequence of trailing TLVs from b, stopping once
// maxLength bytes have been consumed. A TLV head that starts but doesn't
// fully fit within maxLength is a hard Truncated error
// (§4.4): a truncated trailing TLV must not be silently dropped.
func readTLVs(b []byte, maxLength int, ctx context) ([]TLV, error) {
	var tlvs []TLV
	pos := 0
	for pos < maxLength {
		if pos+4 > maxLength || pos+4 > len(b) {
			return nil, newDecodeError(KindTruncated, "tlv_head", nil)
		}
		tag := Tag(binary.BigEndian.Uint16(b[pos:]))
		length := int(binary.BigEndian.Uint16(b[pos+2:]))
		valueEnd := pos + 4 + length
		if valueEnd > maxLength || valueEnd > len(b) {
			return nil, newDecodeError(KindTruncated, "tlv_value", nil)
		}
		value := append([]byte(nil), b[pos+4:valueEnd]...)
		tlv := TLV{Tag: tag, Value: value}

		if ctx[tag] {
			if want, ok := fixedWidth[tag]; ok && len(value) != want {
				return nil, &TLVValueDecodeError{
					Tag:   uint16(tag),
					Cause: newDecodeError(KindTooFewBytes, tag.String(), nil),
				}
			}
		}
		tlvs = append(tlvs, tlv)
		pos = valueEnd
	}
	return tlvs, nil
}

// writeTLVs encodes tlvs back to back into b and returns the bytes
// written.
func writeTLVs(b []byte, tlvs []TLV) (int, error) {
	pos := 0
	for _, t := range tlvs {
		n, err := t.MarshalBinaryTo(b[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

// tlvsLen is the total encoded size of tlvs.
func tlvsLen(tlvs []TLV) int {
	n := 0
	for _, t := range tlvs {
		n += t.Len()
	}
	return n
}
