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
	"fmt"

	"github.com/smpp-go/smpp/pdu"
)

// Kind classifies a SessionError, mirroring pdu.Kind's "kinds, not type
// names" discipline (§7).
type Kind string

// Session-level error kinds.
const (
	KindBindRejected       Kind = "bind_rejected"
	KindNotAllowedInState  Kind = "not_allowed_in_state"
	KindDisconnected       Kind = "disconnected"
	KindRequestTimeout     Kind = "request_timeout"
	KindUnexpectedResponse Kind = "unexpected_response"
	KindSessionTimeout     Kind = "session_timeout"
)

// SessionError is returned by Connect, Send and Unbind for every
// session-level failure in §7's taxonomy.
type SessionError struct {
	Kind     Kind
	Status   pdu.CommandStatus // set for KindBindRejected
	State    SessionState      // set for KindNotAllowedInState
	Sequence uint32            // set for KindRequestTimeout/KindUnexpectedResponse
	Err      error
}

func (e *SessionError) Error() string {
	switch e.Kind {
	case KindBindRejected:
		return fmt.Sprintf("bind rejected: %s", e.Status)
	case KindNotAllowedInState:
		return fmt.Sprintf("not allowed in state %s", e.State)
	case KindRequestTimeout, KindUnexpectedResponse:
		return fmt.Sprintf("%s: sequence %d", e.Kind, e.Sequence)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return string(e.Kind)
	}
}

func (e *SessionError) Unwrap() error { return e.Err }
