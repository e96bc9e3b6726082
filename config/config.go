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

package config

import (
	"dirpx.dev/snap/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// Real type graphs nest far less deeply; hitting it means a type keeps
	// expanding into new types (e.g. T[A] referring to T[[]A]).
	DefaultMaxDepth = 128
	// DefaultMaxLength represents the default for MaxLength.
	// Zero disables the limit.
	DefaultMaxLength = 0
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure limits are valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxLength < 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:  DefaultMaxDepth,
		MaxLength: DefaultMaxLength,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithMaxLength sets the MaxLength option.
// A negative value resets to the default.
func WithMaxLength(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.MaxLength = DefaultMaxLength
			return
		}
		c.MaxLength = n
	}
}
