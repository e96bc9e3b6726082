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
	"github.com/cockroachdb/errors"
)

var (
	// ErrStreamFault marks every failure of the underlying stream.
	// The original I/O error (io.EOF, io.ErrUnexpectedEOF, ...) stays in the chain.
	ErrStreamFault = errors.New("snap(wire): stream fault")
	// ErrMalformed indicates bytes that cannot be decoded (bad tag, negative
	// length, invalid UTF-8, ...). Malformed errors are also stream faults.
	ErrMalformed = errors.New("snap(wire): malformed input")
	// ErrLengthOverflow is returned when a length does not fit the 4-byte prefix.
	ErrLengthOverflow = errors.New("snap(wire): length exceeds prefix range")
)

// fault wraps an I/O error from the underlying stream.
func fault(err error, what string) error {
	return errors.Mark(errors.Wrapf(err, "snap(wire): %s", what), ErrStreamFault)
}

// Malformed builds a decode error for corrupt input. It is exported so that
// converters can report data-level corruption (unknown enum names, length
// mismatches) with the same classification as the wire layer.
func Malformed(format string, args ...any) error {
	return errors.Mark(errors.Wrapf(ErrMalformed, format, args...), ErrStreamFault)
}
