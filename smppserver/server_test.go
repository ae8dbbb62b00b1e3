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

package smppserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smpp-go/smpp/pdu"
	"github.com/smpp-go/smpp/smppclient"
)

func startTestServer(t *testing.T, cfg Config) string {
	t.Helper()
	cfg.ListenAddr = "127.0.0.1:0"
	srv := NewServer(cfg)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = srv.Stop()
	})

	return srv.Addr()
}

func TestServerBindAndSubmit(t *testing.T) {
	addr := startTestServer(t, Config{
		EnquireLinkInterval: time.Hour,
		SessionTimeout:      time.Hour,
	})

	client, err := smppclient.Connect(context.Background(), addr, smppclient.Config{
		SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := client.Send(ctx, &pdu.SubmitSm{})
	require.NoError(t, err)
	submitResp, ok := resp.Body.(*pdu.SubmitSmResp)
	require.True(t, ok)
	require.NotEmpty(t, submitResp.MessageID)
}

func TestServerRejectsBadCredentials(t *testing.T) {
	addr := startTestServer(t, Config{
		EnquireLinkInterval: time.Hour,
		SessionTimeout:      time.Hour,
		Credentials:         []Credential{{SystemID: "esme1", Password: "correct"}},
	})

	_, err := smppclient.Connect(context.Background(), addr, smppclient.Config{
		SystemID: "esme1", Password: "wrong", BindMode: smppclient.BindModeTransceiver,
		ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.Error(t, err)
	var sessErr *smppclient.SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, smppclient.KindBindRejected, sessErr.Kind)
	require.Equal(t, pdu.EsmeRinvpaswd, sessErr.Status)
}

func TestServerRejectsInterfaceVersionAboveMax(t *testing.T) {
	addr := startTestServer(t, Config{
		EnquireLinkInterval: time.Hour,
		SessionTimeout:      time.Hour,
		MaxInterfaceVersion: "3.3", // client always binds as InterfaceVersionSMPP34
	})

	_, err := smppclient.Connect(context.Background(), addr, smppclient.Config{
		SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
		ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.Error(t, err)
	var sessErr *smppclient.SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, smppclient.KindBindRejected, sessErr.Kind)
	require.Equal(t, pdu.EsmeRinvbndsts, sessErr.Status)
}

func TestServerUnbind(t *testing.T) {
	addr := startTestServer(t, Config{
		EnquireLinkInterval: time.Hour,
		SessionTimeout:      time.Hour,
	})

	client, err := smppclient.Connect(context.Background(), addr, smppclient.Config{
		SystemID: "esme1", Password: "pw", BindMode: smppclient.BindModeTransceiver,
		EnquireLinkInterval: time.Hour, ResponseTimeout: time.Second, SessionTimeout: time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, client.Unbind(ctx))
}
