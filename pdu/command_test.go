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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, status CommandStatus, seq uint32, body Body) *Command {
	t.Helper()
	cmd := NewCommand(status, seq, body)
	b, err := cmd.MarshalBinary()
	require.NoError(t, err)

	decoded, err := UnmarshalCommand(b)
	require.NoError(t, err)
	assert.Equal(t, body.CommandID(), decoded.Header.ID)
	assert.Equal(t, status, decoded.Header.Status)
	assert.Equal(t, seq, decoded.Header.Sequence)
	assert.Equal(t, uint32(len(b)), decoded.Header.Length)
	return decoded
}

func TestEnquireLinkRoundTrip(t *testing.T) {
	decoded := roundTrip(t, EsmeRok, 7, &EnquireLink{})
	assert.IsType(t, &EnquireLink{}, decoded.Body)
}

func TestBindTransceiverRoundTrip(t *testing.T) {
	body := &BindTransceiver{bindBody{
		SystemID:         "smppgw",
		Password:         "secret01",
		SystemType:       "VMS",
		InterfaceVersion: InterfaceVersionSMPP34,
		AddrTon:          TONInternational,
		AddrNpi:          NPIISDN,
		AddressRange:     "",
	}}
	decoded := roundTrip(t, EsmeRok, 1, body)
	got, ok := decoded.Body.(*BindTransceiver)
	require.True(t, ok)
	assert.Equal(t, *body, *got)
}

func TestSubmitSmRoundTripWithTrailingTLV(t *testing.T) {
	body := &SubmitSm{submitDeliverBody{
		ServiceType: "",
		SourceAddr:  Address{Ton: TONInternational, Npi: NPIISDN, Addr: "15551230000"},
		DestAddr:    Address{Ton: TONInternational, Npi: NPIISDN, Addr: "15551239999"},
		DataCoding:  DataCodingDefault,
		ShortMessage: []byte("hello"),
		TLVs: []TLV{
			NewTLVUint16(TagUserMessageReference, 42),
		},
	}}
	decoded := roundTrip(t, EsmeRok, 3, body)
	got, ok := decoded.Body.(*SubmitSm)
	require.True(t, ok)
	assert.Equal(t, body.ShortMessage, got.ShortMessage)
	assert.Equal(t, body.TLVs, got.TLVs)
}

func TestSubmitSmUnknownTLVPassesThroughOpaque(t *testing.T) {
	body := &SubmitSm{submitDeliverBody{
		SourceAddr: Address{Addr: "1111"},
		DestAddr:   Address{Addr: "2222"},
		TLVs: []TLV{
			{Tag: Tag(0x9999), Value: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		},
	}}
	decoded := roundTrip(t, EsmeRok, 4, body)
	got := decoded.Body.(*SubmitSm)
	require.Len(t, got.TLVs, 1)
	assert.Equal(t, Tag(0x9999), got.TLVs[0].Tag)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, got.TLVs[0].Value)
}

func TestSubmitSmShortMessageAndPayloadIsSiblingMismatch(t *testing.T) {
	body := &SubmitSm{submitDeliverBody{
		SourceAddr:   Address{Addr: "1111"},
		DestAddr:     Address{Addr: "2222"},
		ShortMessage: []byte("hi"),
		TLVs:         []TLV{NewTLVBytes(TagMessagePayload, []byte("hi again"))},
	}}
	raw, err := NewCommand(EsmeRok, 5, body).MarshalBinary()
	require.NoError(t, err)

	_, err = UnmarshalCommand(raw)
	require.Error(t, err)
	var mismatch *SiblingMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestUnmarshalCommandUnknownCommandID(t *testing.T) {
	raw := make([]byte, HeaderLen)
	headerMarshalBinaryTo(&Header{Length: HeaderLen, ID: 0x000000FF, Status: EsmeRok, Sequence: 1}, raw)

	_, err := UnmarshalCommand(raw)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindUnknownCommand, decErr.Kind)
}

func TestUnmarshalCommandLengthMismatch(t *testing.T) {
	raw := make([]byte, HeaderLen+4)
	headerMarshalBinaryTo(&Header{Length: HeaderLen, ID: IDEnquireLink, Status: EsmeRok, Sequence: 1}, raw)

	_, err := UnmarshalCommand(raw)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindInvalidLength, decErr.Kind)
}

func TestBindRespToleratesEmptyBody(t *testing.T) {
	raw := make([]byte, HeaderLen)
	headerMarshalBinaryTo(&Header{Length: HeaderLen, ID: IDBindTransmitterResp, Status: EsmeRbindfail, Sequence: 2}, raw)

	cmd, err := UnmarshalCommand(raw)
	require.NoError(t, err)
	resp, ok := cmd.Body.(*BindTransmitterResp)
	require.True(t, ok)
	assert.Empty(t, resp.SystemID)
}

func TestSubmitSmRejectsOversizedShortMessage(t *testing.T) {
	body := &SubmitSm{submitDeliverBody{
		SourceAddr:   Address{Addr: "1111"},
		DestAddr:     Address{Addr: "2222"},
		ShortMessage: make([]byte, 256),
	}}
	_, err := NewCommand(EsmeRok, 1, body).MarshalBinary()
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindTooManyBytes, decErr.Kind)
}

func TestReplaceSmRejectsOversizedShortMessage(t *testing.T) {
	body := &ReplaceSm{
		MessageID:    "1",
		SourceAddr:   Address{Addr: "1111"},
		ShortMessage: make([]byte, 300),
	}
	_, err := NewCommand(EsmeRok, 1, body).MarshalBinary()
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindTooManyBytes, decErr.Kind)
}

func TestSubmitMultiRoundTrip(t *testing.T) {
	body := &SubmitMulti{
		SourceAddr: Address{Addr: "1111"},
		Dests: []MultiDest{
			{Flag: DestFlagSMEAddress, Addr: Address{Addr: "2222"}},
			{Flag: DestFlagDistributionList, DLName: "mylist"},
		},
		ShortMessage: []byte("hi all"),
	}
	decoded := roundTrip(t, EsmeRok, 9, body)
	got := decoded.Body.(*SubmitMulti)
	assert.Equal(t, body.Dests, got.Dests)
	assert.Equal(t, body.ShortMessage, got.ShortMessage)
}
