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
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/smpp-go/smpp/pdu"
)

// TestClient_WriteErrorEndsSession drives Client against a MockConn
// instead of a real socket: with both Write and Read failing on the
// underlying transport, whichever failure the engine hits first must
// tear the session down and fail the in-flight Send with a
// Disconnected session error, without requiring a listening port for
// the failure case.
func TestClient_WriteErrorEndsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConn(ctrl)

	writeErr := errors.New("broken pipe")
	conn.EXPECT().Write(gomock.Any()).Return(0, writeErr).AnyTimes()
	conn.EXPECT().Read(gomock.Any()).Return(0, io.EOF).AnyTimes()
	conn.EXPECT().Close().Return(nil).AnyTimes()

	c := newClient(conn, Config{})
	_, err := c.send(context.Background(), &pdu.EnquireLink{})
	require.Error(t, err)
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, KindDisconnected, sessErr.Kind)

	require.NoError(t, c.Close())
}
