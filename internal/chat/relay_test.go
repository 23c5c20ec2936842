package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

// fakeStream yields queued chunks then a terminal error (io.EOF for a clean
// end).
type fakeStream struct {
	chunks   []string
	terminal error
	pos      int
	closed   bool
}

func (f *fakeStream) Recv() (string, error) {
	if f.pos >= len(f.chunks) {
		if f.terminal == nil {
			return "", io.EOF
		}
		return "", f.terminal
	}
	chunk := f.chunks[f.pos]
	f.pos++
	return chunk, nil
}

func (f *fakeStream) Close() { f.closed = true }

type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (f *flushRecorder) Flush() { f.flushes++ }

func TestRelayForwardsChunksInOrder(t *testing.T) {
	stream := &fakeStream{chunks: []string{"Zuzalu ", "is a ", "pop-up city."}}
	var sink flushRecorder

	delivered, err := Relay(context.Background(), &sink, stream)
	if err != nil {
		t.Fatalf("relay: %v", err)
	}
	if delivered != 3 {
		t.Fatalf("expected 3 chunks delivered, got %d", delivered)
	}
	if got := sink.String(); got != "Zuzalu is a pop-up city." {
		t.Fatalf("unexpected output: %q", got)
	}
	if sink.flushes != 3 {
		t.Fatalf("expected a flush per chunk, got %d", sink.flushes)
	}
	if !stream.closed {
		t.Fatalf("stream not closed")
	}
}

func TestRelaySkipsEmptyChunks(t *testing.T) {
	stream := &fakeStream{chunks: []string{"", "a", "", "b"}}
	var sink flushRecorder

	delivered, err := Relay(context.Background(), &sink, stream)
	if err != nil {
		t.Fatalf("relay: %v", err)
	}
	if delivered != 2 || sink.String() != "ab" {
		t.Fatalf("delivered=%d output=%q", delivered, sink.String())
	}
}

func TestRelayKeepsPartialOutputOnProviderFailure(t *testing.T) {
	boom := errors.New("upstream connection reset")
	stream := &fakeStream{chunks: []string{"partial ", "answer"}, terminal: boom}
	var sink flushRecorder

	delivered, err := Relay(context.Background(), &sink, stream)
	if delivered != 2 {
		t.Fatalf("expected the 2 chunks before the failure, got %d", delivered)
	}
	if sink.String() != "partial answer" {
		t.Fatalf("partial output lost: %q", sink.String())
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if !stream.closed {
		t.Fatalf("stream not closed after failure")
	}
}

func TestRelayStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := &fakeStream{chunks: []string{"never", "sent"}}
	var sink flushRecorder

	delivered, err := Relay(ctx, &sink, stream)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if delivered != 0 || sink.Len() != 0 {
		t.Fatalf("chunks forwarded after cancellation: %d %q", delivered, sink.String())
	}
	if stream.pos != 0 {
		t.Fatalf("pulled from provider after cancellation")
	}
	if !stream.closed {
		t.Fatalf("stream not closed on cancellation")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
func (failingWriter) Flush()                    {}

func TestRelayStopsOnWriteFailure(t *testing.T) {
	stream := &fakeStream{chunks: []string{"a", "b"}}

	delivered, err := Relay(context.Background(), failingWriter{}, stream)
	if err == nil {
		t.Fatalf("expected write error")
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		t.Fatalf("write failure must not be reported as an upstream failure")
	}
	if delivered != 0 {
		t.Fatalf("expected 0 delivered, got %d", delivered)
	}
	if stream.pos != 1 {
		t.Fatalf("expected exactly one pull before stopping, got %d", stream.pos)
	}
}
