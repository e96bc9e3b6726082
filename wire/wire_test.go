/*
   Copyright 2025 The DIRPX Authors.

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

package wire_test

import (
	"bytes"
	"io"
	"math"
	"testing"
	"testing/iotest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"dirpx.dev/snap/wire"
)

func TestSink_FixedWidth(t *testing.T) {
	var buf bytes.Buffer
	s := wire.NewSink(&buf)

	require.NoError(t, s.WriteInt32(5))
	require.Equal(t, []byte{0, 0, 0, 5}, buf.Bytes())

	buf.Reset()
	require.NoError(t, s.WriteInt16(-2))
	require.Equal(t, []byte{0xff, 0xfe}, buf.Bytes())

	buf.Reset()
	require.NoError(t, s.WriteInt64(1))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, buf.Bytes())

	buf.Reset()
	require.NoError(t, s.WriteFloat32(1))
	require.Equal(t, []byte{0x3f, 0x80, 0, 0}, buf.Bytes())

	buf.Reset()
	require.NoError(t, s.WriteChar('A'))
	require.Equal(t, []byte{0, 0, 0, 'A'}, buf.Bytes())
}

func TestString_LengthIsCodeUnits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.NewSink(&buf).WriteString("hi"))
	require.Equal(t, []byte{0, 0, 0, 2, 'h', 'i'}, buf.Bytes())

	cases := []struct {
		name  string
		in    string
		units int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"two_byte", "Привет", 6},
		{"three_byte", "こんにちは", 5},
		{"surrogate_pairs", "𝄞🎵", 4},
		{"mixed", "a𝄞b", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, wire.NewSink(&buf).WriteString(tc.in))
			require.Equal(t, uint32(tc.units), wire.Order.Uint32(buf.Bytes()[:4]))
			require.Equal(t, tc.in, string(buf.Bytes()[4:]))

			got, err := wire.NewSource(&buf).ReadString()
			require.NoError(t, err)
			require.Equal(t, tc.in, got)
		})
	}
}

func TestString_InvalidUTF8IsReplaced(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.NewSink(&buf).WriteString("a\xffb"))
	got, err := wire.NewSource(&buf).ReadString()
	require.NoError(t, err)
	require.Equal(t, "a\uFFFDb", got)
}

func TestSource_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := wire.NewSink(&buf)
	require.NoError(t, s.WriteBool(true))
	require.NoError(t, s.WriteByte(0xab))
	require.NoError(t, s.WriteInt8(-7))
	require.NoError(t, s.WriteInt16(math.MinInt16))
	require.NoError(t, s.WriteInt32(math.MaxInt32))
	require.NoError(t, s.WriteInt64(math.MinInt64))
	require.NoError(t, s.WriteUint64(math.MaxUint64))
	require.NoError(t, s.WriteFloat32(float32(math.Inf(-1))))
	require.NoError(t, s.WriteFloat64(math.Pi))
	require.NoError(t, s.WriteChar(0xffff))
	require.NoError(t, s.WritePresence(false))

	// A plain io.Reader exercises the buffered path.
	src := wire.NewSource(iotest.OneByteReader(&buf))

	b, err := src.ReadBool()
	require.NoError(t, err)
	require.True(t, b)
	by, err := src.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xab), by)
	i8, err := src.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-7), i8)
	i16, err := src.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MinInt16), i16)
	i32, err := src.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MaxInt32), i32)
	i64, err := src.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), i64)
	u64, err := src.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), u64)
	f32, err := src.ReadFloat32()
	require.NoError(t, err)
	require.True(t, math.IsInf(float64(f32), -1))
	f64, err := src.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, math.Pi, f64)
	c, err := src.ReadChar()
	require.NoError(t, err)
	require.Equal(t, uint16(0xffff), c)
	p, err := src.ReadPresence()
	require.NoError(t, err)
	require.False(t, p)
}

func TestSource_Truncation(t *testing.T) {
	src := wire.NewSource(bytes.NewReader([]byte{0, 0}))
	_, err := src.ReadInt32()
	require.Error(t, err)
	require.True(t, errors.Is(err, wire.ErrStreamFault))
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.False(t, errors.Is(err, wire.ErrMalformed))

	_, err = wire.NewSource(bytes.NewReader(nil)).ReadByte()
	require.True(t, errors.Is(err, io.EOF))

	// Length says 3 code units but only two bytes follow.
	_, err = wire.NewSource(bytes.NewReader([]byte{0, 0, 0, 3, 'a', 'b'})).ReadString()
	require.True(t, errors.Is(err, wire.ErrStreamFault))
}

func TestSource_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		read func(*wire.Source) error
	}{
		{"bool", []byte{2}, func(s *wire.Source) error { _, err := s.ReadBool(); return err }},
		{"presence", []byte{9}, func(s *wire.Source) error { _, err := s.ReadPresence(); return err }},
		{"negative_len", []byte{0xff, 0xff, 0xff, 0xff}, func(s *wire.Source) error { _, err := s.ReadLen(); return err }},
		{"char_range", []byte{0, 1, 0, 0}, func(s *wire.Source) error { _, err := s.ReadChar(); return err }},
		{"bad_utf8", []byte{0, 0, 0, 1, 0xff}, func(s *wire.Source) error { _, err := s.ReadString(); return err }},
		// One code unit announced, but the rune needs two.
		{"overrun", append([]byte{0, 0, 0, 1}, []byte("𝄞")...), func(s *wire.Source) error { _, err := s.ReadString(); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(wire.NewSource(bytes.NewReader(tc.in)))
			require.Error(t, err)
			require.True(t, errors.Is(err, wire.ErrMalformed))
			require.True(t, errors.Is(err, wire.ErrStreamFault))
		})
	}
}

func TestSource_MaxLength(t *testing.T) {
	src := wire.NewSource(bytes.NewReader([]byte{0, 0, 0, 10}), wire.WithMaxLength(4))
	_, err := src.ReadLen()
	require.True(t, errors.Is(err, wire.ErrMalformed))

	src = wire.NewSource(bytes.NewReader([]byte{0, 0, 0, 4}), wire.WithMaxLength(4))
	n, err := src.ReadLen()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestSink_WriteFailure(t *testing.T) {
	s := wire.NewSink(failingWriter{})
	err := s.WriteInt64(1)
	require.True(t, errors.Is(err, wire.ErrStreamFault))
	require.True(t, errors.Is(err, io.ErrClosedPipe))

	require.True(t, errors.Is(wire.NewSink(io.Discard).WriteLen(-1), wire.ErrLengthOverflow))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
