//  Copyright (c) 2023 Uber Technologies, Inc.
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

// Package config hosts non-user-configurable parameters for development and testing purposes
// only; none of these are meant to be exposed to end users of shapecheck.
package config

import "fmt"

// TransformFixpointRoundLimit bounds the number of rounds transform.Pipeline will run before
// giving up. Every individual transform in the pipeline is shape-preserving and should converge
// in a handful of rounds for any well-formed constraint list; exceeding this limit indicates a
// bug in one of the transforms (e.g. inline re-introducing a variable it just removed) rather
// than a property of the input, so callers should treat it as a structural contract violation.
const TransformFixpointRoundLimit = 64

// CallGraphDepthLimit bounds the number of nested call-site inlinings callinline.Inline will
// perform along any single path before concluding the summary graph has a cycle it failed to
// detect structurally. It exists purely as a backstop.
const CallGraphDepthLimit = 256

// OrchestratorConcurrencyLimit caps the number of functions shapecheck.CheckModule abstracts
// concurrently. Abstraction is CPU-bound and allocates freely, so an unbounded fan-out over a
// large module risks excessive peak memory; this is a conservative default, not a correctness
// requirement.
const OrchestratorConcurrencyLimit = 8

// SummaryCacheCompressionLevel is the zstd compression level used by package cache when
// persisting function summaries across builds.
const SummaryCacheCompressionLevel = 3

// CheckFixpointRoundLimit panics if roundCount has exceeded limit, naming the named stage for
// diagnosis. Mirrors the fixed-point sanity check used during CFG propagation: a fixpoint that
// does not stabilize within a generous, fixed bound is a programmer error, not a valid outcome.
func CheckFixpointRoundLimit(stage string, roundCount, limit int) {
	if roundCount > limit {
		panic(fmt.Sprintf("%s: did not reach a fixpoint within %d rounds", stage, limit))
	}
}
