package chat

import (
	"context"
	"errors"
	"io"
)

// ChunkStream is a lazy, finite, non-restartable sequence of partial output
// text. Recv returns io.EOF after the final chunk; Close releases the
// underlying provider stream and is safe to call after any Recv result.
type ChunkStream interface {
	Recv() (string, error)
	Close()
}

// FlushWriter is the transport sink the relay forwards chunks to. Flush
// pushes buffered bytes to the client so each chunk is visible as it arrives.
type FlushWriter interface {
	io.Writer
	Flush()
}

// Relay pulls chunks from the provider stream and forwards each one
// immediately, preserving arrival order. It stops on the first of: normal
// end-of-stream, consumer cancellation, a write failure (client gone), or a
// provider failure. Chunks already forwarded are never retracted; the number
// delivered is returned alongside the terminating condition.
//
// A provider failure after partial output is reported as *UpstreamError; the
// caller decides how to end the response. Cancellation and write failures are
// returned as-is and carry no user-visible reporting obligation.
func Relay(ctx context.Context, w FlushWriter, stream ChunkStream) (int, error) {
	defer stream.Close()

	delivered := 0
	for {
		select {
		case <-ctx.Done():
			return delivered, ctx.Err()
		default:
		}

		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return delivered, nil
			}
			return delivered, &UpstreamError{Err: err}
		}
		if chunk == "" {
			continue
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return delivered, err
		}
		w.Flush()
		delivered++
	}
}
