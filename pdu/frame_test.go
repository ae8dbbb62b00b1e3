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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFramerRejectsShortInvalidLengthImmediately covers the case where
// a peer sends only a handful of bytes whose command_length is below
// HeaderLen and nothing else: Feed must fail fast on the 4-byte
// command_length prefix rather than waiting for a full 16-byte header
// that will never arrive.
func TestFramerRejectsShortInvalidLengthImmediately(t *testing.T) {
	f := NewFramer(0)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], 5) // below HeaderLen (16)

	cmds, err := f.Feed(buf)
	assert.Empty(t, cmds)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindInvalidLength, decErr.Kind)
}

// TestFramerWaitsForFullHeaderOnValidLength ensures the fast-path
// 4-byte peek doesn't regress the ordinary incremental-assembly case:
// a command_length that looks legitimate but whose header hasn't
// fully arrived yet should make Feed return with no error and no
// commands, not misinterpret the partial header.
func TestFramerWaitsForFullHeaderOnValidLength(t *testing.T) {
	f := NewFramer(0)
	buf := make([]byte, 10)
	binary.BigEndian.PutUint32(buf[0:4], HeaderLen)

	cmds, err := f.Feed(buf)
	assert.Empty(t, cmds)
	assert.NoError(t, err)
	assert.Equal(t, 10, f.Pending())
}

// TestFramerRejectsOversizedLength covers a command_length above
// maxFrame, which must fail rather than buffer unboundedly.
func TestFramerRejectsOversizedLength(t *testing.T) {
	f := NewFramer(16)
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf[0:4], 1<<20)

	cmds, err := f.Feed(buf)
	assert.Empty(t, cmds)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, KindInvalidLength, decErr.Kind)
}
