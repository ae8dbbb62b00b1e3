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

// Value enums below all follow the same law: every representable integer
// in the underlying width round-trips, including codepoints this package
// doesn't name — those decode into the NNN-named Other variant rather
// than failing. None of these ever cause a decode error.

// TypeOfNumber is the ton field used by every SME/ESME address.
type TypeOfNumber uint8

// Named TypeOfNumber values, SMPP v5.0 §5.2.5.
const (
	TONUnknown          TypeOfNumber = 0x00
	TONInternational    TypeOfNumber = 0x01
	TONNational         TypeOfNumber = 0x02
	TONNetworkSpecific  TypeOfNumber = 0x03
	TONSubscriberNumber TypeOfNumber = 0x04
	TONAlphanumeric     TypeOfNumber = 0x05
	TONAbbreviated      TypeOfNumber = 0x06
)

var tonNames = map[TypeOfNumber]string{
	TONUnknown: "Unknown", TONInternational: "International", TONNational: "National",
	TONNetworkSpecific: "NetworkSpecific", TONSubscriberNumber: "SubscriberNumber",
	TONAlphanumeric: "Alphanumeric", TONAbbreviated: "Abbreviated",
}

func (t TypeOfNumber) String() string {
	if s, ok := tonNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Other(%d)", uint8(t))
}

// NumericPlanIndicator is the npi field used by every SME/ESME address.
type NumericPlanIndicator uint8

// Named NumericPlanIndicator values, SMPP v5.0 §5.2.6.
const (
	NPIUnknown   NumericPlanIndicator = 0x00
	NPIISDN      NumericPlanIndicator = 0x01
	NPIData      NumericPlanIndicator = 0x03
	NPITelex     NumericPlanIndicator = 0x04
	NPILandMobi  NumericPlanIndicator = 0x06
	NPINational  NumericPlanIndicator = 0x08
	NPIPrivate   NumericPlanIndicator = 0x09
	NPIERMES     NumericPlanIndicator = 0x0A
	NPIInternet  NumericPlanIndicator = 0x0E
	NPIWAPClient NumericPlanIndicator = 0x12
)

var npiNames = map[NumericPlanIndicator]string{
	NPIUnknown: "Unknown", NPIISDN: "ISDN", NPIData: "Data", NPITelex: "Telex",
	NPILandMobi: "LandMobile", NPINational: "National", NPIPrivate: "Private",
	NPIERMES: "ERMES", NPIInternet: "Internet", NPIWAPClient: "WAPClient",
}

func (n NumericPlanIndicator) String() string {
	if s, ok := npiNames[n]; ok {
		return s
	}
	return fmt.Sprintf("Other(%d)", uint8(n))
}

// PriorityFlag is the submission priority, SMPP v5.0 §5.2.17.
type PriorityFlag uint8

// Named PriorityFlag values.
const (
	PriorityBulk        PriorityFlag = 0
	PriorityNormal      PriorityFlag = 1
	PriorityUrgent      PriorityFlag = 2
	PriorityVeryUrgent  PriorityFlag = 3
)

func (p PriorityFlag) String() string {
	switch p {
	case PriorityBulk:
		return "Bulk"
	case PriorityNormal:
		return "Normal"
	case PriorityUrgent:
		return "Urgent"
	case PriorityVeryUrgent:
		return "VeryUrgent"
	default:
		return fmt.Sprintf("Other(%d)", uint8(p))
	}
}

// ReplaceIfPresentFlag is used by submit_sm/deliver_sm/submit_multi/broadcast_sm, SMPP v5.0 §5.2.18.
type ReplaceIfPresentFlag uint8

// Named ReplaceIfPresentFlag values.
const (
	ReplaceIfPresentNo  ReplaceIfPresentFlag = 0
	ReplaceIfPresentYes ReplaceIfPresentFlag = 1
)

func (r ReplaceIfPresentFlag) String() string {
	switch r {
	case ReplaceIfPresentNo:
		return "No"
	case ReplaceIfPresentYes:
		return "Yes"
	default:
		return fmt.Sprintf("Other(%d)", uint8(r))
	}
}

// DataCoding is the data_coding field, SMPP v5.0 §5.2.19 (loosely following
// the CMT-136/GSM 03.38 coding group table).
type DataCoding uint8

// Named DataCoding values.
const (
	DataCodingDefault    DataCoding = 0x00
	DataCodingIA5        DataCoding = 0x01
	DataCodingBinaryALIS DataCoding = 0x02
	DataCodingLatin1     DataCoding = 0x03
	DataCodingBinary     DataCoding = 0x04
	DataCodingJIS        DataCoding = 0x05
	DataCodingCyrillic   DataCoding = 0x06
	DataCodingLatinHebr  DataCoding = 0x07
	DataCodingUCS2       DataCoding = 0x08
	DataCodingPictogram  DataCoding = 0x09
	DataCodingMusicCodes DataCoding = 0x0A
	DataCodingExtJIS     DataCoding = 0x0D
	DataCodingKSC5601    DataCoding = 0x0E
)

var dataCodingNames = map[DataCoding]string{
	DataCodingDefault: "SMSCDefault", DataCodingIA5: "IA5", DataCodingBinaryALIS: "BinaryAlias",
	DataCodingLatin1: "Latin1", DataCodingBinary: "Binary", DataCodingJIS: "JIS",
	DataCodingCyrillic: "Cyrillic", DataCodingLatinHebr: "LatinHebrew", DataCodingUCS2: "UCS2",
	DataCodingPictogram: "Pictogram", DataCodingMusicCodes: "MusicCodes", DataCodingExtJIS: "ExtendedKanjiJIS",
	DataCodingKSC5601: "KSC5601",
}

func (d DataCoding) String() string {
	if s, ok := dataCodingNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Other(%d)", uint8(d))
}

// InterfaceVersion is the bind interface_version field.
type InterfaceVersion uint8

// Named InterfaceVersion values.
const (
	InterfaceVersionSMPP33 InterfaceVersion = 0x33
	InterfaceVersionSMPP34 InterfaceVersion = 0x34
	InterfaceVersionSMPP50 InterfaceVersion = 0x50
)

func (v InterfaceVersion) String() string {
	switch v {
	case InterfaceVersionSMPP33:
		return "SMPP3.3"
	case InterfaceVersionSMPP34:
		return "SMPP3.4"
	case InterfaceVersionSMPP50:
		return "SMPP5.0"
	default:
		return fmt.Sprintf("Other(%d)", uint8(v))
	}
}

// DestFlag selects the address-vs-distribution-list shape of a
// submit_multi destination entry.
type DestFlag uint8

// Named DestFlag values.
const (
	DestFlagSMEAddress        DestFlag = 1
	DestFlagDistributionList  DestFlag = 2
)

func (d DestFlag) String() string {
	switch d {
	case DestFlagSMEAddress:
		return "SMEAddress"
	case DestFlagDistributionList:
		return "DistributionList"
	default:
		return fmt.Sprintf("Other(%d)", uint8(d))
	}
}

// NetworkType identifies the network an address belongs to (TLV
// dest_network_type / source_network_type).
type NetworkType uint8

// Named NetworkType values, SMPP v5.0 §5.3.9/§5.3.16.
const (
	NetworkTypeUnknown  NetworkType = 0x00
	NetworkTypeGSM      NetworkType = 0x01
	NetworkTypeANSI136  NetworkType = 0x02
	NetworkTypeIS95     NetworkType = 0x03
	NetworkTypePDC      NetworkType = 0x04
	NetworkTypePHS      NetworkType = 0x05
	NetworkTypeIDEN     NetworkType = 0x06
	NetworkTypeAMPS     NetworkType = 0x07
	NetworkTypePagingNw NetworkType = 0x08
)

func (n NetworkType) String() string {
	switch n {
	case NetworkTypeUnknown:
		return "Unknown"
	case NetworkTypeGSM:
		return "GSM"
	case NetworkTypeANSI136:
		return "ANSI136"
	case NetworkTypeIS95:
		return "IS95"
	case NetworkTypePDC:
		return "PDC"
	case NetworkTypePHS:
		return "PHS"
	case NetworkTypeIDEN:
		return "iDEN"
	case NetworkTypeAMPS:
		return "AMPS"
	case NetworkTypePagingNw:
		return "PagingNetwork"
	default:
		return fmt.Sprintf("Other(%d)", uint8(n))
	}
}

// BearerType is the TLV dest_bearer_type/source_bearer_type value.
type BearerType uint8

// Named BearerType values, SMPP v5.0 §5.3.10/§5.3.18.
const (
	BearerTypeUnknown  BearerType = 0x00
	BearerTypeSMS      BearerType = 0x01
	BearerTypeCSD      BearerType = 0x02
	BearerTypePacket   BearerType = 0x03
	BearerTypeUSSD     BearerType = 0x04
	BearerTypeCDPD     BearerType = 0x05
	BearerTypeDataTAC  BearerType = 0x06
	BearerTypeFLEX     BearerType = 0x07
	BearerTypeCellDig  BearerType = 0x08
	BearerTypeGPRS     BearerType = 0x09
)

func (b BearerType) String() string {
	switch b {
	case BearerTypeUnknown:
		return "Unknown"
	case BearerTypeSMS:
		return "SMS"
	case BearerTypeCSD:
		return "CSD"
	case BearerTypePacket:
		return "PacketData"
	case BearerTypeUSSD:
		return "USSD"
	case BearerTypeCDPD:
		return "CDPD"
	case BearerTypeDataTAC:
		return "DataTAC"
	case BearerTypeFLEX:
		return "FLEX/ReFLEX"
	case BearerTypeCellDig:
		return "CellularDigitalPacketData"
	case BearerTypeGPRS:
		return "GPRS/GSM"
	default:
		return fmt.Sprintf("Other(%d)", uint8(b))
	}
}

// PayloadType is the TLV payload_type value.
type PayloadType uint8

// Named PayloadType values.
const (
	PayloadTypeDefault   PayloadType = 0x00
	PayloadTypeWCMPMsg   PayloadType = 0x01
)

func (p PayloadType) String() string {
	switch p {
	case PayloadTypeDefault:
		return "Default"
	case PayloadTypeWCMPMsg:
		return "WCMPMessage"
	default:
		return fmt.Sprintf("Other(%d)", uint8(p))
	}
}

// MsMsgWaitFacilities is the TLV ms_msg_wait_facilities value (a packed
// indicator bit + type field, decoded as a raw byte with accessors).
type MsMsgWaitFacilities uint8

// Indicator reports whether the message waiting indicator is active.
func (m MsMsgWaitFacilities) Indicator() bool { return m&0x80 != 0 }

// MoreMessagesToSend is the TLV more_messages_to_send value.
type MoreMessagesToSend uint8

// Named MoreMessagesToSend values.
const (
	NoMoreMessages MoreMessagesToSend = 0x00
	MoreMessages   MoreMessagesToSend = 0x01
)

func (m MoreMessagesToSend) String() string {
	switch m {
	case NoMoreMessages:
		return "NoMoreMessages"
	case MoreMessages:
		return "MoreMessagesToFollow"
	default:
		return fmt.Sprintf("Other(%d)", uint8(m))
	}
}

// MsAvailabilityStatus is the TLV ms_availability_status value.
type MsAvailabilityStatus uint8

// Named MsAvailabilityStatus values.
const (
	MsAvailableAvailable MsAvailabilityStatus = 0x00
	MsAvailableDenied    MsAvailabilityStatus = 0x01
	MsAvailableUnknown   MsAvailabilityStatus = 0x02
)

func (m MsAvailabilityStatus) String() string {
	switch m {
	case MsAvailableAvailable:
		return "Available"
	case MsAvailableDenied:
		return "Denied"
	case MsAvailableUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Other(%d)", uint8(m))
	}
}

// DeliveryFailureReason is the TLV delivery_failure_reason value used in
// data_sm_resp.
type DeliveryFailureReason uint8

// Named DeliveryFailureReason values.
const (
	DeliveryFailureDestUnavailable   DeliveryFailureReason = 0x00
	DeliveryFailureDestInvalid       DeliveryFailureReason = 0x01
	DeliveryFailurePermanentNetwork  DeliveryFailureReason = 0x02
	DeliveryFailureTempNetwork       DeliveryFailureReason = 0x03
	DeliveryFailureTempDelivery      DeliveryFailureReason = 0x04
	DeliveryFailureUnknown           DeliveryFailureReason = 0x05
)

func (d DeliveryFailureReason) String() string {
	switch d {
	case DeliveryFailureDestUnavailable:
		return "DestinationUnavailable"
	case DeliveryFailureDestInvalid:
		return "DestinationAddressInvalid"
	case DeliveryFailurePermanentNetwork:
		return "PermanentNetworkError"
	case DeliveryFailureTempNetwork:
		return "TemporaryNetworkError"
	case DeliveryFailureTempDelivery:
		return "UnrecognizedTemporaryError"
	case DeliveryFailureUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Other(%d)", uint8(d))
	}
}

// DestAddrNpResolution is the TLV dest_addr_np_resolution value.
type DestAddrNpResolution uint8

// Named DestAddrNpResolution values.
const (
	NpResolutionQueryNotPerformed DestAddrNpResolution = 0x00
	NpResolutionQueriedNoPorting  DestAddrNpResolution = 0x01
	NpResolutionQueriedPorted     DestAddrNpResolution = 0x02
)

func (d DestAddrNpResolution) String() string {
	switch d {
	case NpResolutionQueryNotPerformed:
		return "QueryNotPerformed"
	case NpResolutionQueriedNoPorting:
		return "QueriedNoPorting"
	case NpResolutionQueriedPorted:
		return "QueriedPorted"
	default:
		return fmt.Sprintf("Other(%d)", uint8(d))
	}
}

// ItsReplyType is the TLV its_reply_type value (CDMA reply method).
type ItsReplyType uint8

// Named ItsReplyType values.
const (
	ItsReplyDigit       ItsReplyType = 0
	ItsReplyNumber      ItsReplyType = 1
	ItsReplyTelephoneNo ItsReplyType = 2
	ItsReplyPassword    ItsReplyType = 3
	ItsReplyCharacterLn ItsReplyType = 4
	ItsReplyMenu        ItsReplyType = 5
	ItsReplyDate        ItsReplyType = 6
	ItsReplyTime        ItsReplyType = 7
	ItsReplyContinue    ItsReplyType = 8
)

func (i ItsReplyType) String() string {
	if i <= ItsReplyContinue {
		return [...]string{
			"Digit", "Number", "TelephoneNo", "Password", "CharacterLine",
			"Menu", "Date", "Time", "Continue",
		}[i]
	}
	return fmt.Sprintf("Other(%d)", uint8(i))
}

// LanguageIndicator is the TLV language_indicator value.
type LanguageIndicator uint8

// Named LanguageIndicator values.
const (
	LanguageUnspecified LanguageIndicator = 0x00
	LanguageEnglish     LanguageIndicator = 0x01
	LanguageFrench      LanguageIndicator = 0x02
	LanguageSpanish     LanguageIndicator = 0x03
	LanguageGerman      LanguageIndicator = 0x04
	LanguagePortuguese  LanguageIndicator = 0x05
)

func (l LanguageIndicator) String() string {
	switch l {
	case LanguageUnspecified:
		return "Unspecified"
	case LanguageEnglish:
		return "English"
	case LanguageFrench:
		return "French"
	case LanguageSpanish:
		return "Spanish"
	case LanguageGerman:
		return "German"
	case LanguagePortuguese:
		return "Portuguese"
	default:
		return fmt.Sprintf("Other(%d)", uint8(l))
	}
}

// AddrSubunit is the TLV dest_addr_subunit/source_addr_subunit value.
type AddrSubunit uint8

// Named AddrSubunit values.
const (
	AddrSubunitUnknown      AddrSubunit = 0x00
	AddrSubunitMSDisplay    AddrSubunit = 0x01
	AddrSubunitMobileEquip  AddrSubunit = 0x02
	AddrSubunitSmartCard1   AddrSubunit = 0x03
	AddrSubunitExternalUnit AddrSubunit = 0x04
)

func (a AddrSubunit) String() string {
	switch a {
	case AddrSubunitUnknown:
		return "Unknown"
	case AddrSubunitMSDisplay:
		return "MSDisplay"
	case AddrSubunitMobileEquip:
		return "MobileEquipment"
	case AddrSubunitSmartCard1:
		return "SmartCardApplication1"
	case AddrSubunitExternalUnit:
		return "ExternalUnit"
	default:
		return fmt.Sprintf("Other(%d)", uint8(a))
	}
}

// DisplayTime is the TLV display_time value (alert_notification-style
// immediate/default/invoke hints).
type DisplayTime uint8

// Named DisplayTime values.
const (
	DisplayTimeTemporary DisplayTime = 0x00
	DisplayTimeDefault   DisplayTime = 0x01
	DisplayTimeInvoke    DisplayTime = 0x02
)

func (d DisplayTime) String() string {
	switch d {
	case DisplayTimeTemporary:
		return "Temporary"
	case DisplayTimeDefault:
		return "Default"
	case DisplayTimeInvoke:
		return "Invoke"
	default:
		return fmt.Sprintf("Other(%d)", uint8(d))
	}
}

// SubaddressType is the embedded type tag of a subaddress TLV value.
type SubaddressType uint8

// Named SubaddressType values.
const (
	SubaddressNSAP   SubaddressType = 0x80
	SubaddressUser   SubaddressType = 0xA0
)

func (s SubaddressType) String() string {
	switch s {
	case SubaddressNSAP:
		return "NSAP"
	case SubaddressUser:
		return "UserSpecified"
	default:
		return fmt.Sprintf("Other(%d)", uint8(s))
	}
}
