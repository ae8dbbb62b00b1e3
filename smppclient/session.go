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

package smppclient

import (
	"github.com/smpp-go/smpp/pdu"
)

// SessionState is the six-valued bind-state machine of a connection
// (§4.8): Open -> {BoundTx,BoundRx,BoundTrx} -> Unbound/Closed.
type SessionState int

// The six session states.
const (
	Open SessionState = iota
	BoundTx
	BoundRx
	BoundTrx
	Unbound
	Closed
)

func (s SessionState) String() string {
	switch s {
	case Open:
		return "Open"
	case BoundTx:
		return "BoundTx"
	case BoundRx:
		return "BoundRx"
	case BoundTrx:
		return "BoundTrx"
	case Unbound:
		return "Unbound"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// BindMode selects which bind request Connect sends.
type BindMode int

// The three bind modes.
const (
	BindModeTransmitter BindMode = iota
	BindModeReceiver
	BindModeTransceiver
)

func (m BindMode) boundState() SessionState {
	switch m {
	case BindModeReceiver:
		return BoundRx
	case BindModeTransceiver:
		return BoundTrx
	default:
		return BoundTx
	}
}

// allowedOutbound is the SMPP v5.0 table of which request PDUs a session
// may originate in each bound state (responses and enquire_link/unbind
// are always allowed and aren't listed here; the engine handles those
// separately). Rx-bound sessions submit nothing but enquire_link/unbind.
var allowedOutbound = map[SessionState]map[pdu.ID]bool{
	BoundTx: {
		pdu.IDSubmitSm: true, pdu.IDSubmitMulti: true, pdu.IDDataSm: true,
		pdu.IDQuerySm: true, pdu.IDCancelSm: true, pdu.IDReplaceSm: true,
		pdu.IDBroadcastSm: true, pdu.IDQueryBroadcastSm: true, pdu.IDCancelBroadcastSm: true,
	},
	BoundRx: {
		pdu.IDDataSm: true,
	},
	BoundTrx: {
		pdu.IDSubmitSm: true, pdu.IDSubmitMulti: true, pdu.IDDataSm: true,
		pdu.IDQuerySm: true, pdu.IDCancelSm: true, pdu.IDReplaceSm: true,
		pdu.IDBroadcastSm: true, pdu.IDQueryBroadcastSm: true, pdu.IDCancelBroadcastSm: true,
	},
}

// allows reports whether a session in state s may submit a command with
// the given command_id.
func (s SessionState) allows(id pdu.ID) bool {
	if id == pdu.IDEnquireLink || id == pdu.IDUnbind {
		return s == BoundTx || s == BoundRx || s == BoundTrx
	}
	return allowedOutbound[s][id]
}
