// Copyright 2026 HCert Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package godcc

import (
	"io"
	"log/slog"

	"github.com/hcertlabs/godcc/cbor"
)

type config struct {
	logger      *slog.Logger
	maxDepth    int
	maxElements int
}

// Option configures a decode call.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		// Default logger throws away everything
		cfg.logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	return cfg
}

func (c config) decodeOptions() cbor.DecodeOptions {
	return cbor.DecodeOptions{
		MaxDepth:    c.maxDepth,
		MaxElements: c.maxElements,
	}
}

// WithLogger specifies a logger for stage-level debug output. The pipeline
// performs no other I/O.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth overrides the CBOR nesting depth bound.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithMaxElements overrides the CBOR total element bound.
func WithMaxElements(elements int) Option {
	return func(c *config) {
		c.maxElements = elements
	}
}
