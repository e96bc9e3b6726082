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

package converter

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/wire"
)

// Primitive returns the built-in converter for t's kind, or ErrNotPrimitive.
// Named types share the encoding of their underlying kind, and values are
// read back as t itself:
//
//	bool                  1 byte, 0 or 1
//	uint8, int8           1 byte
//	int16                 2 bytes
//	uint16                UTF-16 code unit, 4 bytes
//	int32, uint32         4 bytes
//	int64, int            8 bytes
//	uint64, uint, uintptr 8 bytes
//	float32, float64      raw IEEE-754 bits, 4 and 8 bytes
//	string                UTF-16 unit count + UTF-8 bytes
//	struct{}              0 bytes
func Primitive(t reflect.Type) (apis.Converter, error) {
	if t == nil {
		return nil, errors.Wrap(ErrNotPrimitive, "nil type")
	}
	switch t.Kind() {
	case reflect.Bool:
		return boolConverter{t}, nil
	case reflect.Uint8:
		return uintConverter{t: t, size: 1}, nil
	case reflect.Int8:
		return intConverter{t: t, size: 1}, nil
	case reflect.Int16:
		return intConverter{t: t, size: 2}, nil
	case reflect.Uint16:
		return charConverter{t}, nil
	case reflect.Int32:
		return intConverter{t: t, size: 4}, nil
	case reflect.Uint32:
		return uintConverter{t: t, size: 4}, nil
	case reflect.Int64, reflect.Int:
		return intConverter{t: t, size: 8}, nil
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return uintConverter{t: t, size: 8}, nil
	case reflect.Float32:
		return floatConverter{t: t, size: 4}, nil
	case reflect.Float64:
		return floatConverter{t: t, size: 8}, nil
	case reflect.String:
		return stringConverter{t}, nil
	case reflect.Struct:
		if t.NumField() == 0 {
			return unitConverter{t}, nil
		}
	}
	return nil, errors.Wrapf(ErrNotPrimitive, "%v", t)
}

// checkKind guards the reflect accessors below, which panic on the wrong kind.
func checkKind(v reflect.Value, t reflect.Type) error {
	if !v.IsValid() || v.Kind() != t.Kind() {
		return mismatch(v, t)
	}
	return nil
}

type boolConverter struct{ t reflect.Type }

func (c boolConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	return s.WriteBool(v.Bool())
}

func (c boolConverter) Read(s *wire.Source) (reflect.Value, error) {
	b, err := s.ReadBool()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	out.SetBool(b)
	return out, nil
}

func (c boolConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

type intConverter struct {
	t    reflect.Type
	size int
}

func (c intConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	switch c.size {
	case 1:
		return s.WriteInt8(int8(v.Int()))
	case 2:
		return s.WriteInt16(int16(v.Int()))
	case 4:
		return s.WriteInt32(int32(v.Int()))
	default:
		return s.WriteInt64(v.Int())
	}
}

func (c intConverter) Read(s *wire.Source) (reflect.Value, error) {
	var (
		n   int64
		err error
	)
	switch c.size {
	case 1:
		var x int8
		x, err = s.ReadInt8()
		n = int64(x)
	case 2:
		var x int16
		x, err = s.ReadInt16()
		n = int64(x)
	case 4:
		var x int32
		x, err = s.ReadInt32()
		n = int64(x)
	default:
		n, err = s.ReadInt64()
	}
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	if out.OverflowInt(n) {
		return reflect.Value{}, wire.Malformed("snap(converter): %d overflows %v", n, c.t)
	}
	out.SetInt(n)
	return out, nil
}

func (c intConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

type uintConverter struct {
	t    reflect.Type
	size int
}

func (c uintConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	switch c.size {
	case 1:
		return s.WriteByte(byte(v.Uint()))
	case 4:
		return s.WriteUint32(uint32(v.Uint()))
	default:
		return s.WriteUint64(v.Uint())
	}
}

func (c uintConverter) Read(s *wire.Source) (reflect.Value, error) {
	var (
		n   uint64
		err error
	)
	switch c.size {
	case 1:
		var x byte
		x, err = s.ReadByte()
		n = uint64(x)
	case 4:
		var x uint32
		x, err = s.ReadUint32()
		n = uint64(x)
	default:
		n, err = s.ReadUint64()
	}
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	if out.OverflowUint(n) {
		return reflect.Value{}, wire.Malformed("snap(converter): %d overflows %v", n, c.t)
	}
	out.SetUint(n)
	return out, nil
}

func (c uintConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

// charConverter writes a uint16 as a UTF-16 code unit held in 4 bytes.
type charConverter struct{ t reflect.Type }

func (c charConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	return s.WriteChar(uint16(v.Uint()))
}

func (c charConverter) Read(s *wire.Source) (reflect.Value, error) {
	u, err := s.ReadChar()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	out.SetUint(uint64(u))
	return out, nil
}

func (c charConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

type floatConverter struct {
	t    reflect.Type
	size int
}

func (c floatConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	if c.size == 4 {
		return s.WriteFloat32(float32(v.Float()))
	}
	return s.WriteFloat64(v.Float())
}

func (c floatConverter) Read(s *wire.Source) (reflect.Value, error) {
	var (
		f   float64
		err error
	)
	if c.size == 4 {
		var x float32
		x, err = s.ReadFloat32()
		f = float64(x)
	} else {
		f, err = s.ReadFloat64()
	}
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	out.SetFloat(f)
	return out, nil
}

func (c floatConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

type stringConverter struct{ t reflect.Type }

func (c stringConverter) Write(s *wire.Sink, v reflect.Value) error {
	if err := checkKind(v, c.t); err != nil {
		return err
	}
	return s.WriteString(v.String())
}

func (c stringConverter) Read(s *wire.Source) (reflect.Value, error) {
	str, err := s.ReadString()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(c.t).Elem()
	out.SetString(str)
	return out, nil
}

func (c stringConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }

// unitConverter handles empty structs; nothing goes on the wire.
type unitConverter struct{ t reflect.Type }

func (unitConverter) Write(*wire.Sink, reflect.Value) error { return nil }

func (c unitConverter) Read(*wire.Source) (reflect.Value, error) {
	return reflect.Zero(c.t), nil
}

func (c unitConverter) String() string { return fmt.Sprintf("Converter(%v)", c.t) }
