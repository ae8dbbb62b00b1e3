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
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smpp-go/smpp/pdu"
)

// fakeServer accepts exactly one connection on a loopback listener and
// hands it to the supplied handler, letting tests drive a minimal MC
// side of the protocol without a real SMSC.
func fakeServer(t *testing.T, handle func(conn net.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		handle(conn)
	}()
	return ln.Addr().String()
}

func readCommand(t *testing.T, conn net.Conn) *pdu.Command {
	t.Helper()
	framer := pdu.NewFramer(0)
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		require.NoError(t, err)
		cmds, err := framer.Feed(buf[:n])
		require.NoError(t, err)
		if len(cmds) > 0 {
			return cmds[0]
		}
	}
}

func writeCommand(t *testing.T, conn net.Conn, cmd *pdu.Command) {
	t.Helper()
	raw, err := cmd.MarshalBinary()
	require.NoError(t, err)
	_, err = conn.Write(raw)
	require.NoError(t, err)
}

func TestConnectBindTransceiverSuccess(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		require.Equal(t, pdu.IDBindTransceiver, bind.Header.ID)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
		// keep the connection open for the keepalive loop's sake
		buf := make([]byte, 64)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	})

	client, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "pw", BindMode: BindModeTransceiver,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()
	require.Equal(t, BoundTrx, client.State())
}

func TestConnectBindRejected(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRinvpaswd, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
	})

	_, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "wrong", BindMode: BindModeTransceiver,
		ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.Error(t, err)
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, KindBindRejected, sessErr.Kind)
	require.Equal(t, pdu.EsmeRinvpaswd, sessErr.Status)
}

func TestSendSubmitSmAndReceiveResponse(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransmitterResp{}))

		submit := readCommand(t, conn)
		require.Equal(t, pdu.IDSubmitSm, submit.Header.ID)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, submit.Header.Sequence, &pdu.SubmitSmResp{}))
	})

	client, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "pw", BindMode: BindModeTransmitter,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := client.Send(ctx, &pdu.SubmitSm{})
	require.NoError(t, err)
	require.Equal(t, pdu.IDSubmitSmResp, resp.Header.ID)
}

func TestSendNotAllowedInReceiverState(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindReceiverResp{}))
		buf := make([]byte, 64)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	})

	client, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "pw", BindMode: BindModeReceiver,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Send(context.Background(), &pdu.SubmitSm{})
	require.Error(t, err)
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, KindNotAllowedInState, sessErr.Kind)
}

func TestResponseTimeout(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransmitterResp{}))
		readCommand(t, conn) // submit_sm, never answered
		time.Sleep(time.Second)
	})

	client, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "pw", BindMode: BindModeTransmitter,
		EnquireLinkInterval: time.Hour, ResponseTimeout: 50 * time.Millisecond, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Send(context.Background(), &pdu.SubmitSm{})
	require.Error(t, err)
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, KindRequestTimeout, sessErr.Kind)
}

func TestUnsolicitedDeliverSmIsAnEvent(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCommand(t, conn)
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
		writeCommand(t, conn, pdu.NewCommand(pdu.EsmeRok, 999, &pdu.DeliverSm{}))
		buf := make([]byte, 64)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	})

	client, err := Connect(context.Background(), addr, Config{
		SystemID: "esme1", Password: "pw", BindMode: BindModeTransceiver,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	select {
	case ev := <-client.Events():
		require.NotNil(t, ev.Command)
		require.Equal(t, pdu.IDDeliverSm, ev.Command.Header.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for deliver_sm event")
	}
}
