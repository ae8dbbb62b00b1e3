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

// Package smpptest holds the round-trip and arbitrary-value test
// helpers used by pdu's tests (spec.md §8): generators for random
// ASCII strings and byte slices, and a generic marshal/unmarshal
// round-trip checker that dumps both sides with go-spew on mismatch.
package smpptest

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
)

// Codec is implemented by every PDU body (and, for testing, by
// anything with the same hand-written trio).
type Codec interface {
	Len() int
	MarshalBinaryTo(b []byte) (int, error)
	UnmarshalBinary(b []byte) error
}

// RoundTrip encodes v, decodes the bytes into a fresh zero value built
// by newZero, and returns the decoded value, or an error if encoding or
// decoding fails. It does not compare the two; callers compare with reflect.DeepEqual
// or a field-by-field assert; RoundTrip only handles the codec half.
func RoundTrip(v Codec, newZero func() Codec) (Codec, error) {
	buf := make([]byte, v.Len())
	n, err := v.MarshalBinaryTo(buf)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	got := newZero()
	if err := got.UnmarshalBinary(buf[:n]); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return got, nil
}

// AssertRoundTrip fails t if encoding then decoding v doesn't produce a
// value deep-equal to v, printing a go-spew dump of both sides.
func AssertRoundTrip(t interface{ Fatalf(string, ...interface{}) }, v Codec, newZero func() Codec) {
	got, err := RoundTrip(v, newZero)
	if err != nil {
		t.Fatalf("round trip: %v", err)
		return
	}
	if !reflect.DeepEqual(v, got) {
		t.Fatalf("round trip mismatch:\nwant: %s\ngot:  %s", spew.Sdump(v), spew.Sdump(got))
	}
}

// ASCIIString returns a random printable-ASCII string of length
// [min,max), suitable as the payload for C-octet-string and
// octet-string fields under quick.Check-style generation.
func ASCIIString(r *rand.Rand, min, max int) string {
	if max <= min {
		max = min + 1
	}
	n := min + r.Intn(max-min)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(0x20 + r.Intn(0x7e-0x20))
	}
	return string(b)
}

// Bytes returns n random bytes, for fields like short_message that
// carry arbitrary octets rather than text.
func Bytes(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

// QuickConfig is a ready-to-use testing/quick.Config with a fixed seed
// so failures reproduce, mirroring the corpus's preference for
// deterministic test generators over wall-clock-seeded ones.
func QuickConfig(maxCount int) *quick.Config {
	return &quick.Config{
		MaxCount: maxCount,
		Rand:     rand.New(rand.NewSource(1)),
	}
}
