// Package diagnostic defines the sink interface the abstract interpreter writes to when it
// abandons a function (§7 of the distilled spec: non-reducible CFG, unknown terminator,
// unresolvable assert, or any other recoverable abstraction skip). Presentation of these
// warnings - formatting, deduplication, severity mapping - is explicitly out of scope for this
// module; Sink only carries the message and the responsible location to whatever the host
// program wants to do with it.
package diagnostic

import (
	"sync"

	"go.tfp.dev/shapecheck/ir"
)

// Sink receives warnings emitted when a function must be abandoned. Implementations must be safe
// for concurrent use, since shapecheck.CheckModule abstracts functions concurrently.
type Sink interface {
	Warn(message string, loc *ir.SourceLocation)
}

// Warning is one recorded call to Sink.Warn.
type Warning struct {
	Message  string
	Location *ir.SourceLocation
}

// BufferingSink is a Sink that simply accumulates every warning it receives, in receipt order.
// It is intended for tests and for the cmd/shapecheck-dump developer tool, not as the sink a
// production host should use.
type BufferingSink struct {
	mu       sync.Mutex
	warnings []Warning
}

// NewBufferingSink returns a ready-to-use BufferingSink.
func NewBufferingSink() *BufferingSink {
	return &BufferingSink{}
}

// Warn records the warning.
func (s *BufferingSink) Warn(message string, loc *ir.SourceLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, Warning{Message: message, Location: loc})
}

// Warnings returns a copy of all warnings recorded so far.
func (s *BufferingSink) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}
