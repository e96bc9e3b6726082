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

package apis

import "github.com/cockroachdb/errors"

var (
	// ErrUnsupportedType is returned when no factory accepts a type.
	ErrUnsupportedType = errors.New("snap: unsupported type")
	// ErrUnknownFactory is returned by ResolveAfter for a factory that is not in the chain.
	ErrUnknownFactory = errors.New("snap: unknown factory")
	// ErrMissingGeneratedConverter indicates that a type carries the Serializable
	// marker but no usable generated converter could be obtained for it.
	// This is an integration defect, not an unsupported type.
	ErrMissingGeneratedConverter = errors.New("snap: missing generated converter")
)
