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

package reconnect

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smpp-go/smpp/pdu"
	"github.com/smpp-go/smpp/smppclient"
)

// acceptLoop binds a loopback listener and hands every accepted
// connection to handle, so tests can script more than one bind cycle
// (initial connect, then a post-drop reconnect).
func acceptLoop(t *testing.T, handle func(conn net.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handle(conn)
		}
	}()
	return ln.Addr().String()
}

func readCmd(t *testing.T, conn net.Conn) *pdu.Command {
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

func writeCmd(t *testing.T, conn net.Conn, cmd *pdu.Command) {
	t.Helper()
	raw, err := cmd.MarshalBinary()
	require.NoError(t, err)
	_, err = conn.Write(raw)
	require.NoError(t, err)
}

func TestReconnectAfterDrop(t *testing.T) {
	var binds int32
	addr := acceptLoop(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCmd(t, conn)
		writeCmd(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
		n := atomic.AddInt32(&binds, 1)
		if n == 1 {
			// first connection: drop immediately after binding
			return
		}
		buf := make([]byte, 64)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	})

	c, err := Dial(context.Background(), Config{
		Addr: addr,
		Client: smppclient.Config{
			SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
			EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
		},
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer c.Close()

	var sawDisconnected, sawReconnected bool
	deadline := time.After(2 * time.Second)
	for !sawDisconnected || !sawReconnected {
		select {
		case ev := <-c.Events():
			if ev.Disconnected {
				sawDisconnected = true
			}
			if ev.Reconnected {
				sawReconnected = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for disconnect/reconnect markers")
		}
	}
}

func TestSendFailsImmediatelyWhileDisconnected(t *testing.T) {
	addr := acceptLoop(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCmd(t, conn)
		writeCmd(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
		// drop right after bind; never accept again in this test
	})

	c, err := Dial(context.Background(), Config{
		Addr: addr,
		Client: smppclient.Config{
			SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
			EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
		},
		InitialDelay: time.Hour, // never actually retry during this test
	})
	require.NoError(t, err)
	defer c.Close()

	require.Eventually(t, func() bool {
		ev := <-c.Events()
		return ev.Disconnected
	}, 2*time.Second, 10*time.Millisecond)

	_, err = c.Send(context.Background(), &pdu.SubmitSm{})
	require.Error(t, err)
	var sessErr *smppclient.SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, smppclient.KindDisconnected, sessErr.Kind)
}

// TestUnbindTwiceDoesNotPanic covers the double-close bug: calling
// Unbind twice, then Close, must not attempt to close(c.done) a
// second time.
func TestUnbindTwiceDoesNotPanic(t *testing.T) {
	addr := acceptLoop(t, func(conn net.Conn) {
		defer conn.Close()
		bind := readCmd(t, conn)
		writeCmd(t, conn, pdu.NewCommand(pdu.EsmeRok, bind.Header.Sequence, &pdu.BindTransceiverResp{}))
		unbind := readCmd(t, conn)
		writeCmd(t, conn, pdu.NewCommand(pdu.EsmeRok, unbind.Header.Sequence, &pdu.UnbindResp{}))
	})

	c, err := Dial(context.Background(), Config{
		Addr: addr,
		Client: smppclient.Config{
			SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
			EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
		},
	})
	require.NoError(t, err)

	require.NoError(t, c.Unbind(context.Background()))
	require.NotPanics(t, func() {
		require.NoError(t, c.Unbind(context.Background()))
	})
	require.NotPanics(t, func() {
		require.NoError(t, c.Close())
	})
}

func TestNextDelayDefaultExponential(t *testing.T) {
	c := &Client{cfg: Config{Multiplier: 2, MaxDelay: time.Second}}
	require.Equal(t, 20*time.Millisecond, c.nextDelay(10*time.Millisecond, 1))
	require.Equal(t, time.Second, c.nextDelay(time.Second, 5)) // capped at MaxDelay
}

func TestNextDelayUsesDelayExpr(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2,
		MaxDelay:     5 * time.Second,
		DelayExpr:    "initial * pow(multiplier, attempt)",
	}.withDefaults()
	expr, err := compileDelayExpr(cfg.DelayExpr)
	require.NoError(t, err)
	c := &Client{cfg: cfg, delayExpr: expr}

	got := c.nextDelay(cfg.InitialDelay, 3)
	require.Equal(t, 800*time.Millisecond, got) // 100ms * 2^3
}

func TestCompileDelayExprRejectsUnknownVariable(t *testing.T) {
	_, err := compileDelayExpr("bogus * 2")
	require.Error(t, err)
}
