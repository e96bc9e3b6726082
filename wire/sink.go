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

package wire

import (
	"encoding/binary"
	"io"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Order is the byte order of every multi-byte value on the wire.
var Order = binary.BigEndian

// Sink writes wire primitives to an io.Writer.
// A Sink is not safe for concurrent use.
type Sink struct {
	w       io.Writer
	scratch [8]byte
}

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) write(b []byte, what string) error {
	if _, err := s.w.Write(b); err != nil {
		return fault(err, "write "+what)
	}
	return nil
}

// WriteBool writes 1 for true and 0 for false.
func (s *Sink) WriteBool(v bool) error {
	if v {
		return s.WriteByte(1)
	}
	return s.WriteByte(0)
}

// WriteByte writes a single byte.
func (s *Sink) WriteByte(v byte) error {
	s.scratch[0] = v
	return s.write(s.scratch[:1], "byte")
}

// WriteInt8 writes a signed byte.
func (s *Sink) WriteInt8(v int8) error {
	return s.WriteByte(byte(v))
}

// WriteInt16 writes a 2-byte integer.
func (s *Sink) WriteInt16(v int16) error {
	Order.PutUint16(s.scratch[:2], uint16(v))
	return s.write(s.scratch[:2], "int16")
}

// WriteInt32 writes a 4-byte integer.
func (s *Sink) WriteInt32(v int32) error {
	return s.WriteUint32(uint32(v))
}

// WriteUint32 writes a 4-byte unsigned integer.
func (s *Sink) WriteUint32(v uint32) error {
	Order.PutUint32(s.scratch[:4], v)
	return s.write(s.scratch[:4], "int32")
}

// WriteInt64 writes an 8-byte integer.
func (s *Sink) WriteInt64(v int64) error {
	return s.WriteUint64(uint64(v))
}

// WriteUint64 writes an 8-byte unsigned integer.
func (s *Sink) WriteUint64(v uint64) error {
	Order.PutUint64(s.scratch[:8], v)
	return s.write(s.scratch[:8], "int64")
}

// WriteFloat32 writes the raw IEEE-754 bit pattern of v.
func (s *Sink) WriteFloat32(v float32) error {
	return s.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the raw IEEE-754 bit pattern of v.
func (s *Sink) WriteFloat64(v float64) error {
	return s.WriteUint64(math.Float64bits(v))
}

// WriteChar writes a UTF-16 code unit as a 4-byte integer.
func (s *Sink) WriteChar(v uint16) error {
	return s.WriteUint32(uint32(v))
}

// WriteLen writes a 4-byte length or count prefix.
func (s *Sink) WriteLen(n int) error {
	if n < 0 || n > math.MaxInt32 {
		return errors.Wrapf(ErrLengthOverflow, "snap(wire): length %d", n)
	}
	return s.WriteUint32(uint32(n))
}

// WritePresence writes the null-wrap tag: 1 when present, 0 when absent.
func (s *Sink) WritePresence(present bool) error {
	return s.WriteBool(present)
}

// WriteString writes the UTF-16 code-unit count of v followed by its UTF-8 bytes.
// Invalid UTF-8 sequences are replaced with U+FFFD so that the count and the
// payload always agree.
func (s *Sink) WriteString(v string) error {
	if !utf8.ValidString(v) {
		v = strings.ToValidUTF8(v, string(utf8.RuneError))
	}
	if err := s.WriteLen(UTF16Len(v)); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	if _, err := io.WriteString(s.w, v); err != nil {
		return fault(err, "write string")
	}
	return nil
}

// UTF16Len returns the number of UTF-16 code units needed to encode v.
func UTF16Len(v string) int {
	n := 0
	for _, r := range v {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
