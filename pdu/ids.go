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

// ID is the command_id field: both the PDU opcode and, implicitly, the
// tag of the union member carried in the body.
type ID uint32

// The canonical SMPP v3.4/v5.0 opcode table. Response IDs are their
// request's ID with the 0x80000000 bit set.
const (
	IDBindReceiver            ID = 0x00000001
	IDBindTransmitter         ID = 0x00000002
	IDQuerySm                 ID = 0x00000003
	IDSubmitSm                ID = 0x00000004
	IDDeliverSm               ID = 0x00000005
	IDUnbind                  ID = 0x00000006
	IDReplaceSm               ID = 0x00000007
	IDCancelSm                ID = 0x00000008
	IDBindTransceiver         ID = 0x00000009
	IDOutbind                 ID = 0x0000000B
	IDEnquireLink             ID = 0x00000015
	IDSubmitMulti             ID = 0x00000021
	IDAlertNotification       ID = 0x00000102
	IDDataSm                  ID = 0x00000103
	IDBroadcastSm             ID = 0x00000111
	IDQueryBroadcastSm        ID = 0x00000112
	IDCancelBroadcastSm       ID = 0x00000113

	IDGenericNack             ID = 0x80000000
	IDBindReceiverResp        ID = 0x80000001
	IDBindTransmitterResp     ID = 0x80000002
	IDQuerySmResp             ID = 0x80000003
	IDSubmitSmResp            ID = 0x80000004
	IDDeliverSmResp           ID = 0x80000005
	IDUnbindResp              ID = 0x80000006
	IDReplaceSmResp           ID = 0x80000007
	IDCancelSmResp            ID = 0x80000008
	IDBindTransceiverResp     ID = 0x80000009
	IDEnquireLinkResp         ID = 0x80000015
	IDSubmitMultiResp         ID = 0x80000021
	IDDataSmResp              ID = 0x80000103
	IDBroadcastSmResp         ID = 0x80000111
	IDQueryBroadcastSmResp    ID = 0x80000112
	IDCancelBroadcastSmResp   ID = 0x80000113
)

var idNames = map[ID]string{
	IDBindReceiver: "bind_receiver", IDBindTransmitter: "bind_transmitter",
	IDQuerySm: "query_sm", IDSubmitSm: "submit_sm", IDDeliverSm: "deliver_sm",
	IDUnbind: "unbind", IDReplaceSm: "replace_sm", IDCancelSm: "cancel_sm",
	IDBindTransceiver: "bind_transceiver", IDOutbind: "outbind",
	IDEnquireLink: "enquire_link", IDSubmitMulti: "submit_multi",
	IDAlertNotification: "alert_notification", IDDataSm: "data_sm",
	IDBroadcastSm: "broadcast_sm", IDQueryBroadcastSm: "query_broadcast_sm",
	IDCancelBroadcastSm: "cancel_broadcast_sm",

	IDGenericNack: "generic_nack", IDBindReceiverResp: "bind_receiver_resp",
	IDBindTransmitterResp: "bind_transmitter_resp", IDQuerySmResp: "query_sm_resp",
	IDSubmitSmResp: "submit_sm_resp", IDDeliverSmResp: "deliver_sm_resp",
	IDUnbindResp: "unbind_resp", IDReplaceSmResp: "replace_sm_resp",
	IDCancelSmResp: "cancel_sm_resp", IDBindTransceiverResp: "bind_transceiver_resp",
	IDEnquireLinkResp: "enquire_link_resp", IDSubmitMultiResp: "submit_multi_resp",
	IDDataSmResp: "data_sm_resp", IDBroadcastSmResp: "broadcast_sm_resp",
	IDQueryBroadcastSmResp: "query_broadcast_sm_resp", IDCancelBroadcastSmResp: "cancel_broadcast_sm_resp",
}

func (id ID) String() string {
	if s, ok := idNames[id]; ok {
		return s
	}
	return fmt.Sprintf("id(0x%08x)", uint32(id))
}

// IsResponse reports whether id carries the response bit (0x80000000).
func (id ID) IsResponse() bool { return id&0x80000000 != 0 }

// CommandStatus is the command_status header field: zero on requests,
// an SMPP error code on responses. Unknown codes round-trip as Other.
type CommandStatus uint32

// A subset of the SMPP v5.0 error-status table (Table 4-3 / Annex).
const (
	EsmeRok                  CommandStatus = 0x00000000
	EsmeRinvmsglen           CommandStatus = 0x00000001
	EsmeRinvcmdlen           CommandStatus = 0x00000002
	EsmeRinvcmdid            CommandStatus = 0x00000003
	EsmeRinvbndsts           CommandStatus = 0x00000004
	EsmeRalybnd              CommandStatus = 0x00000005
	EsmeRinvprtflg           CommandStatus = 0x00000006
	EsmeRinvregdlvflg        CommandStatus = 0x00000007
	EsmeRsyserr              CommandStatus = 0x00000008
	EsmeRinvsrcadr           CommandStatus = 0x0000000A
	EsmeRinvdstadr           CommandStatus = 0x0000000B
	EsmeRinvmsgid            CommandStatus = 0x0000000C
	EsmeRbindfail            CommandStatus = 0x0000000D
	EsmeRinvpaswd            CommandStatus = 0x0000000E
	EsmeRinvsysid            CommandStatus = 0x0000000F
	EsmeRcancelfail          CommandStatus = 0x00000011
	EsmeRreplacefail         CommandStatus = 0x00000013
	EsmeRmsgqful             CommandStatus = 0x00000014
	EsmeRinvsertyp           CommandStatus = 0x00000015
	EsmeRinvnumdests         CommandStatus = 0x00000033
	EsmeRinvdlname           CommandStatus = 0x00000034
	EsmeRinvdstflag          CommandStatus = 0x00000040
	EsmeRinvsubrep           CommandStatus = 0x00000042
	EsmeRinvesmclass         CommandStatus = 0x00000043
	EsmeRcntsubdl            CommandStatus = 0x00000044
	EsmeRsubmitfail          CommandStatus = 0x00000045
	EsmeRinvsrcton           CommandStatus = 0x00000048
	EsmeRinvsrcnpi           CommandStatus = 0x00000049
	EsmeRinvdstton           CommandStatus = 0x00000050
	EsmeRinvdstnpi           CommandStatus = 0x00000051
	EsmeRinvsystyp           CommandStatus = 0x00000053
	EsmeRinvrepflag          CommandStatus = 0x00000054
	EsmeRinvnummsgs          CommandStatus = 0x00000055
	EsmeRthrottled           CommandStatus = 0x00000058
	EsmeRinvsched            CommandStatus = 0x00000061
	EsmeRinvexpiry           CommandStatus = 0x00000062
	EsmeRinvdftmsgid         CommandStatus = 0x00000063
	EsmeRxTAppn              CommandStatus = 0x00000064
	EsmeRxPAppn              CommandStatus = 0x00000065
	EsmeRxRAppn              CommandStatus = 0x00000066
	EsmeRqueryfail           CommandStatus = 0x00000067
	EsmeRinvoptparstream     CommandStatus = 0x000000C0
	EsmeRoptparnotallwd      CommandStatus = 0x000000C1
	EsmeRinvparlen           CommandStatus = 0x000000C2
	EsmeRmissingoptparam     CommandStatus = 0x000000C3
	EsmeRinvoptparamval      CommandStatus = 0x000000C4
	EsmeRdeliveryfailure     CommandStatus = 0x000000FE
	EsmeRunknownerr          CommandStatus = 0x000000FF
)

var statusNames = map[CommandStatus]string{
	EsmeRok: "ESME_ROK", EsmeRinvmsglen: "ESME_RINVMSGLEN", EsmeRinvcmdlen: "ESME_RINVCMDLEN",
	EsmeRinvcmdid: "ESME_RINVCMDID", EsmeRinvbndsts: "ESME_RINVBNDSTS", EsmeRalybnd: "ESME_RALYBND",
	EsmeRinvprtflg: "ESME_RINVPRTFLG", EsmeRinvregdlvflg: "ESME_RINVREGDLVFLG", EsmeRsyserr: "ESME_RSYSERR",
	EsmeRinvsrcadr: "ESME_RINVSRCADR", EsmeRinvdstadr: "ESME_RINVDSTADR", EsmeRinvmsgid: "ESME_RINVMSGID",
	EsmeRbindfail: "ESME_RBINDFAIL", EsmeRinvpaswd: "ESME_RINVPASWD", EsmeRinvsysid: "ESME_RINVSYSID",
	EsmeRcancelfail: "ESME_RCANCELFAIL", EsmeRreplacefail: "ESME_RREPLACEFAIL", EsmeRmsgqful: "ESME_RMSGQFUL",
	EsmeRinvsertyp: "ESME_RINVSERTYP", EsmeRinvnumdests: "ESME_RINVNUMDESTS", EsmeRinvdlname: "ESME_RINVDLNAME",
	EsmeRinvdstflag: "ESME_RINVDSTFLAG", EsmeRinvsubrep: "ESME_RINVSUBREP", EsmeRinvesmclass: "ESME_RINVESMCLASS",
	EsmeRcntsubdl: "ESME_RCNTSUBDL", EsmeRsubmitfail: "ESME_RSUBMITFAIL", EsmeRinvsrcton: "ESME_RINVSRCTON",
	EsmeRinvsrcnpi: "ESME_RINVSRCNPI", EsmeRinvdstton: "ESME_RINVDSTTON", EsmeRinvdstnpi: "ESME_RINVDSTNPI",
	EsmeRinvsystyp: "ESME_RINVSYSTYP", EsmeRinvrepflag: "ESME_RINVREPFLAG", EsmeRinvnummsgs: "ESME_RINVNUMMSGS",
	EsmeRthrottled: "ESME_RTHROTTLED", EsmeRinvsched: "ESME_RINVSCHED", EsmeRinvexpiry: "ESME_RINVEXPIRY",
	EsmeRinvdftmsgid: "ESME_RINVDFTMSGID", EsmeRxTAppn: "ESME_RX_T_APPN", EsmeRxPAppn: "ESME_RX_P_APPN",
	EsmeRxRAppn: "ESME_RX_R_APPN", EsmeRqueryfail: "ESME_RQUERYFAIL", EsmeRinvoptparstream: "ESME_RINVOPTPARSTREAM",
	EsmeRoptparnotallwd: "ESME_ROPTPARNOTALLWD", EsmeRinvparlen: "ESME_RINVPARLEN",
	EsmeRmissingoptparam: "ESME_RMISSINGOPTPARAM", EsmeRinvoptparamval: "ESME_RINVOPTPARAMVAL",
	EsmeRdeliveryfailure: "ESME_RDELIVERYFAILURE", EsmeRunknownerr: "ESME_RUNKNOWNERR",
}

func (s CommandStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Other(0x%08x)", uint32(s))
}

// Ok reports whether the status is ESME_ROK.
func (s CommandStatus) Ok() bool { return s == EsmeRok }
