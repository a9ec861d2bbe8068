package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkDeliversInOrder(t *testing.T) {
	sink := NewSink(4)
	ctx := context.Background()

	go func() {
		for _, s := range []string{"a", "b", "c"} {
			_ = sink.Push(ctx, Chunk{Content: s})
		}
		sink.Close()
	}()

	var got string
	for chunk := range sink.Chunks() {
		got += chunk.Content
	}
	assert.Equal(t, "abc", got)
	assert.NoError(t, sink.Err())
}

func TestSinkFailRecordsError(t *testing.T) {
	sink := NewSink(1)
	boom := errors.New("upstream gone")

	require.NoError(t, sink.Push(context.Background(), Chunk{Content: "partial"}))
	sink.Fail(boom)

	var chunks int
	for range sink.Chunks() {
		chunks++
	}
	assert.Equal(t, 1, chunks)
	assert.ErrorIs(t, sink.Err(), boom)
}

func TestSinkCloseIsIdempotent(t *testing.T) {
	sink := NewSink(0)
	sink.Close()
	assert.NotPanics(t, sink.Close)
	assert.NotPanics(t, func() { sink.Fail(errors.New("late")) })
	assert.NoError(t, sink.Err())
}

func TestSinkPushHonorsCancellation(t *testing.T) {
	sink := NewSink(0) // unbuffered, nobody reading
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := sink.Push(ctx, Chunk{Content: "stuck"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
