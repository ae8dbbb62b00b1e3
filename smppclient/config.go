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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smpp-go/smpp/pdu"
)

// Config carries bind credentials and the timing/limits of a session
// (§4.6, §6).
type Config struct {
	SystemID     string
	Password     string
	SystemType   string
	AddrTon      pdu.TypeOfNumber
	AddrNpi      pdu.NumericPlanIndicator
	AddressRange string
	BindMode     BindMode

	// EnquireLinkInterval is how often the keepalive timer fires while
	// bound; it fires on schedule whether or not other traffic flowed.
	EnquireLinkInterval time.Duration
	// ResponseTimeout bounds how long a single submission (including the
	// keepalive's own enquire_link) waits for its response.
	ResponseTimeout time.Duration
	// SessionTimeout bounds the time from TCP connect to a successful
	// bind response.
	SessionTimeout time.Duration
	// BindDelay, if set, is waited out before the bind request is sent
	// (mirrors the reference client's use in interop testing).
	BindDelay time.Duration
	// ResponseDelay, if set, is waited out before every outgoing
	// response this engine auto-generates (enquire_link_resp,
	// unbind_resp) is written.
	ResponseDelay time.Duration
	// MaxFrameBytes bounds accepted command_length; 0 selects
	// pdu.DefaultMaxFrame.
	MaxFrameBytes int

	// EventBuffer sizes the Events() channel; 0 selects a sane default.
	EventBuffer int

	Logger  log.FieldLogger
	Metrics *Metrics
}

func (c Config) withDefaults() Config {
	if c.EnquireLinkInterval <= 0 {
		c.EnquireLinkInterval = 30 * time.Second
	}
	if c.ResponseTimeout <= 0 {
		c.ResponseTimeout = 5 * time.Second
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = 10 * time.Second
	}
	if c.MaxFrameBytes <= 0 {
		c.MaxFrameBytes = pdu.DefaultMaxFrame
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 64
	}
	if c.Logger == nil {
		c.Logger = log.StandardLogger()
	}
	return c
}

// Event is an item delivered on Client.Events(): an unsolicited
// command (deliver_sm, alert_notification, an echoed enquire_link the
// engine already auto-answered, ...), a response whose sequence number
// matches no pending request (Command set, Err a SessionError of kind
// KindUnexpectedResponse), or a terminal session error.
type Event struct {
	Command *pdu.Command
	Err     error
}
