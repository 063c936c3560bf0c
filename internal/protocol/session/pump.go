package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/rs/zerolog/log"
)

var (
	ErrTruncatedStream = errors.New("session: stream ended mid-frame")
	ErrDecode          = errors.New("session: decode failed")
)

// Decoder is the part of protocol.Handler a pump drives.
type Decoder interface {
	Append(p []byte) error
	DecodeNext() protocol.Result
	Buffered() int
}

// HandleFunc receives every Packet and Skipped result in stream order.
// Returning an error stops the pump.
type HandleFunc func(protocol.Result) error

// Stats counts what a pump consumed.
type Stats struct {
	Bytes   int
	Reads   int
	Packets int
	Skipped int
}

// Pump reads r in fragments of at most cfg.ReadChunkBytes, appends each to
// dec and drains every complete frame to fn. It returns nil at a clean end
// of stream, ErrTruncatedStream when r ends inside a frame, and an error
// wrapping ErrDecode when the decoder reports a fatal result.
func Pump(ctx context.Context, r io.Reader, dec Decoder, cfg Config, fn HandleFunc) (Stats, error) {
	if cfg.ReadChunkBytes <= 0 {
		cfg = DefaultConfig()
	}
	var stats Stats
	chunk := make([]byte, cfg.ReadChunkBytes)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		n, rerr := r.Read(chunk)
		if n > 0 {
			stats.Bytes += n
			stats.Reads++
			if err := dec.Append(chunk[:n]); err != nil {
				return stats, fmt.Errorf("session: append: %w", err)
			}
			if err := drain(dec, fn, &stats); err != nil {
				return stats, err
			}
		}
		if errors.Is(rerr, io.EOF) {
			if left := dec.Buffered(); left > 0 {
				return stats, fmt.Errorf("%w: %d bytes unread", ErrTruncatedStream, left)
			}
			log.Debug().
				Int("bytes", stats.Bytes).
				Int("packets", stats.Packets).
				Int("skipped", stats.Skipped).
				Msg("session: stream drained")
			return stats, nil
		}
		if rerr != nil {
			return stats, fmt.Errorf("session: read: %w", rerr)
		}
	}
}

func drain(dec Decoder, fn HandleFunc, stats *Stats) error {
	for {
		res := dec.DecodeNext()
		switch res.Status {
		case protocol.StatusNeedMoreData:
			return nil
		case protocol.StatusError:
			return fmt.Errorf("%w: %w", ErrDecode, res.Err)
		case protocol.StatusPacket:
			stats.Packets++
		case protocol.StatusSkipped:
			stats.Skipped++
		}
		if err := fn(res); err != nil {
			return err
		}
	}
}
