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

// Address is the recurring (ton, npi, addr) triplet carried by every SME
// and ESME address field. addr is a C-octet string whose max length
// varies slightly by field (21 bytes is the common case).
type Address struct {
	Ton  TypeOfNumber
	Npi  NumericPlanIndicator
	Addr string
}

// Len is the encoded size of a: one byte each for ton and npi plus addr
// as a C-octet string.
func (a Address) Len() int { return 2 + lenCOctetString(a.Addr) }

func readAddress(b []byte, maxAddrLen int, field string) (Address, int, error) {
	var a Address
	if len(b) < 2 {
		return a, 0, newDecodeError(KindTruncated, field, nil)
	}
	a.Ton = TypeOfNumber(b[0])
	a.Npi = NumericPlanIndicator(b[1])
	addr, n, err := readCOctetString(b[2:], 1, maxAddrLen, field+".addr")
	if err != nil {
		return a, 0, err
	}
	a.Addr = addr
	return a, 2 + n, nil
}

func (a Address) marshalBinaryTo(b []byte) int {
	b[0] = byte(a.Ton)
	b[1] = byte(a.Npi)
	n := writeCOctetString(b, 2, a.Addr)
	return 2 + n
}
