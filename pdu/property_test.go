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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smpp-go/smpp/internal/smpptest"
)

// TestSubmitSmRoundTripProperty generates random source/dest addresses
// and short_message payloads and checks that every one of them survives
// a submit_sm encode/decode cycle unchanged (spec.md §8).
func TestSubmitSmRoundTripProperty(t *testing.T) {
	cfg := smpptest.QuickConfig(200)
	for i := 0; i < cfg.MaxCount; i++ {
		source := smpptest.ASCIIString(cfg.Rand, 0, 15)
		dest := smpptest.ASCIIString(cfg.Rand, 1, 15)
		msg := smpptest.Bytes(cfg.Rand, cfg.Rand.Intn(200))

		body := NewSubmitSm(source, dest, msg)
		got, err := smpptest.RoundTrip(body, func() smpptest.Codec { return &SubmitSm{} })
		require.NoError(t, err)
		gotBody, ok := got.(*SubmitSm)
		require.True(t, ok)
		require.Equal(t, body.SourceAddr.Addr, gotBody.SourceAddr.Addr)
		require.Equal(t, body.DestAddr.Addr, gotBody.DestAddr.Addr)
		require.Equal(t, body.ShortMessage, gotBody.ShortMessage)
	}
}

// TestEnquireLinkRoundTripProperty exercises the empty-body codec
// path repeatedly as a sanity check that it's idempotent across many
// round trips.
func TestEnquireLinkRoundTripProperty(t *testing.T) {
	cfg := smpptest.QuickConfig(50)
	for i := 0; i < cfg.MaxCount; i++ {
		smpptest.AssertRoundTrip(t, &EnquireLink{}, func() smpptest.Codec { return &EnquireLink{} })
	}
}
