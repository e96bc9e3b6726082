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
	"bufio"
	"io"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// reader is what a Source needs from its input. *bytes.Reader, *strings.Reader
// and *bufio.Reader satisfy it directly; anything else is wrapped in a bufio.Reader.
type reader interface {
	io.Reader
	io.ByteReader
	io.RuneReader
}

// Source reads wire primitives from an io.Reader.
// A Source is not safe for concurrent use. When the input does not implement
// io.RuneReader it is buffered, so the Source may consume bytes past the value
// being decoded.
type Source struct {
	r       reader
	maxLen  int
	scratch [8]byte
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithMaxLength rejects length and count prefixes greater than n.
// Zero or a negative n means no limit.
func WithMaxLength(n int) SourceOption {
	return func(s *Source) {
		if n < 0 {
			n = 0
		}
		s.maxLen = n
	}
}

// NewSource returns a Source reading from r.
func NewSource(r io.Reader, opts ...SourceOption) *Source {
	s := &Source{}
	if rr, ok := r.(reader); ok {
		s.r = rr
	} else {
		s.r = bufio.NewReader(r)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) read(n int, what string) ([]byte, error) {
	b := s.scratch[:n]
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fault(err, "read "+what)
	}
	return b, nil
}

// ReadBool reads a boolean byte. Values other than 0 and 1 are malformed.
func (s *Source) ReadBool() (bool, error) {
	b, err := s.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, Malformed("snap(wire): boolean byte %#x", b)
	}
}

// ReadByte reads a single byte.
func (s *Source) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, fault(err, "read byte")
	}
	return b, nil
}

// ReadInt8 reads a signed byte.
func (s *Source) ReadInt8() (int8, error) {
	b, err := s.ReadByte()
	return int8(b), err
}

// ReadInt16 reads a 2-byte integer.
func (s *Source) ReadInt16() (int16, error) {
	b, err := s.read(2, "int16")
	if err != nil {
		return 0, err
	}
	return int16(Order.Uint16(b)), nil
}

// ReadInt32 reads a 4-byte integer.
func (s *Source) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a 4-byte unsigned integer.
func (s *Source) ReadUint32() (uint32, error) {
	b, err := s.read(4, "int32")
	if err != nil {
		return 0, err
	}
	return Order.Uint32(b), nil
}

// ReadInt64 reads an 8-byte integer.
func (s *Source) ReadInt64() (int64, error) {
	v, err := s.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads an 8-byte unsigned integer.
func (s *Source) ReadUint64() (uint64, error) {
	b, err := s.read(8, "int64")
	if err != nil {
		return 0, err
	}
	return Order.Uint64(b), nil
}

// ReadFloat32 reads a raw IEEE-754 single.
func (s *Source) ReadFloat32() (float32, error) {
	v, err := s.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a raw IEEE-754 double.
func (s *Source) ReadFloat64() (float64, error) {
	v, err := s.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadChar reads a UTF-16 code unit stored as a 4-byte integer.
func (s *Source) ReadChar() (uint16, error) {
	v, err := s.ReadUint32()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, Malformed("snap(wire): code unit %#x out of range", v)
	}
	return uint16(v), nil
}

// ReadLen reads a 4-byte length or count prefix.
func (s *Source) ReadLen() (int, error) {
	v, err := s.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, Malformed("snap(wire): negative length %d", v)
	}
	if s.maxLen > 0 && int(v) > s.maxLen {
		return 0, Malformed("snap(wire): length %d exceeds limit %d", v, s.maxLen)
	}
	return int(v), nil
}

// ReadPresence reads the null-wrap tag.
func (s *Source) ReadPresence() (bool, error) {
	b, err := s.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, Malformed("snap(wire): presence tag %#x", b)
	}
}

// ReadString reads a string written by Sink.WriteString. The prefix counts
// UTF-16 code units, so runes are decoded until that many units are consumed.
func (s *Source) ReadString() (string, error) {
	units, err := s.ReadLen()
	if err != nil {
		return "", err
	}
	if units == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.Grow(min(units, 4096))
	for n := 0; n < units; {
		r, size, err := s.r.ReadRune()
		if err != nil {
			return "", fault(err, "read string")
		}
		if r == utf8.RuneError && size == 1 {
			return "", Malformed("snap(wire): invalid UTF-8 in string")
		}
		n += utf16.RuneLen(r)
		if n > units {
			return "", Malformed("snap(wire): string overruns its length %d", units)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
