package llm

import (
	"context"
	"sync"
)

// Chunk is one streamed delta received from a provider.
type Chunk struct {
	// Raw is the provider-format JSON for the delta, suitable for
	// forwarding to a relay caller unchanged.
	Raw []byte
	// Content is the text delta carried by the chunk, possibly empty.
	Content string
}

// Sink carries streamed chunks from a producer goroutine to a single
// consumer. The producer pushes and then calls Close (or Fail); the
// consumer ranges over Chunks and checks Err afterwards. Cancellation is
// the consumer's context, honored by Push.
type Sink struct {
	ch chan Chunk

	mu     sync.Mutex
	err    error
	closed bool
}

// NewSink returns a sink with the given channel buffer.
func NewSink(buffer int) *Sink {
	return &Sink{ch: make(chan Chunk, buffer)}
}

// Push delivers one chunk, or returns the context error if the consumer is
// gone.
func (s *Sink) Push(ctx context.Context, chunk Chunk) error {
	select {
	case s.ch <- chunk:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks a natural end of stream. Safe to call once after Fail.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Fail records the terminal error and closes the stream.
func (s *Sink) Fail(err error) {
	s.mu.Lock()
	if !s.closed && s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.Close()
}

// Chunks returns the receive side of the stream.
func (s *Sink) Chunks() <-chan Chunk {
	return s.ch
}

// Err returns the terminal error, if any. Valid after Chunks is drained.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
