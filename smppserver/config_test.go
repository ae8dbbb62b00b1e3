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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smpp-go/smpp/pdu"
)

func TestInterfaceVersionString(t *testing.T) {
	assert.Equal(t, "3.3", interfaceVersionString(pdu.InterfaceVersionSMPP33))
	assert.Equal(t, "3.4", interfaceVersionString(pdu.InterfaceVersionSMPP34))
	assert.Equal(t, "5.0", interfaceVersionString(pdu.InterfaceVersionSMPP50))
}

func TestAcceptInterfaceVersion(t *testing.T) {
	c := Config{MinInterfaceVersion: "3.4", MaxInterfaceVersion: "4.0"}
	assert.False(t, c.acceptInterfaceVersion(pdu.InterfaceVersionSMPP33))
	assert.True(t, c.acceptInterfaceVersion(pdu.InterfaceVersionSMPP34))
	assert.False(t, c.acceptInterfaceVersion(pdu.InterfaceVersionSMPP50))

	unbounded := Config{}
	assert.True(t, unbounded.acceptInterfaceVersion(pdu.InterfaceVersionSMPP33))
	assert.True(t, unbounded.acceptInterfaceVersion(pdu.InterfaceVersionSMPP50))
}
