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

package strategy

import (
	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/generated"
)

// Builtins returns fresh instances of the built-in factories in chain order:
// standard, collection, map, array. tab is the generated-converter table the
// standard factory consults (nil means generated.Default).
func Builtins(tab *generated.Table) []apis.Factory {
	return []apis.Factory{
		NewStandard(tab),
		NewCollection(),
		NewMap(),
		NewArray(),
	}
}
