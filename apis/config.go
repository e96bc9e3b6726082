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

// Config carries read-only knobs for a registry and the streams it decodes.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxDepth limits how many resolutions may be pending on one path.
	// Acts as a safety guard against infinitely expanding generic types.
	MaxDepth int

	// MaxLength limits accepted length/count prefixes when decoding.
	// Zero means no limit.
	MaxLength int
}
