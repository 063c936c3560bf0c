package protocol

import (
	"fmt"

	"github.com/danmuck/tlvcodec/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// DecodeNext attempts to decode one frame from the buffered input.
//
// NeedMoreData and Error leave the read cursor where it was before the call,
// so every byte of the pending frame is still buffered. After an Error the
// handler is failed and keeps returning that error.
func (h *Handler) DecodeNext() Result {
	if h.err != nil {
		return Result{Status: StatusError, Err: h.err}
	}
	mark := h.in.Offset()
	res := h.decodeFrame()
	switch res.Status {
	case StatusNeedMoreData:
		_ = h.in.Seek(mark)
		h.obs.ObserveDecode(res.Status, res.ID, 0)
	case StatusError:
		_ = h.in.Seek(mark)
		h.err = res.Err
		log.Error().Err(res.Err).Uint32("id", res.ID).Uint32("length", res.Length).Msg("protocol: decode failed")
		h.obs.ObserveDecode(res.Status, res.ID, 0)
	default:
		h.obs.ObserveDecode(res.Status, res.ID, frame.HeaderLen+int(res.Length))
	}
	return res
}

func (h *Handler) decodeFrame() Result {
	if h.in.Remaining() < frame.HeaderLen {
		return Result{Status: StatusNeedMoreData}
	}
	id, _ := h.in.ReadUint32()
	length, _ := h.in.ReadUint32()
	if length > h.limits.MaxBodyBytes {
		return Result{
			Status: StatusError,
			ID:     id,
			Length: length,
			Err:    fmt.Errorf("%w: id=%d length=%d max=%d", ErrFrameTooLarge, id, length, h.limits.MaxBodyBytes),
		}
	}
	if uint64(length) > uint64(h.in.Remaining()) {
		return Result{Status: StatusNeedMoreData, ID: id, Length: length}
	}

	s, ok := h.reads.ByID(id)
	if !ok {
		_ = h.in.Skip(int(length))
		log.Debug().Uint32("id", id).Uint32("length", length).Msg("protocol: skipped unknown packet")
		return Result{Status: StatusSkipped, ID: id, Length: length}
	}

	if err := h.in.Window(int(length)); err != nil {
		return Result{Status: StatusNeedMoreData, ID: id, Length: length}
	}
	defer h.in.Unbound()

	fields := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		v, err := f.Func(h.in, f.Args)
		if err != nil {
			return Result{
				Status: StatusError,
				ID:     id,
				Length: length,
				Err:    &FieldError{Packet: s.Name, ID: id, Field: f.Name, Err: err},
			}
		}
		fields[f.Name] = v
	}
	if rest := len(h.in.Peek()); rest > 0 {
		log.Debug().Str("packet", s.Name).Int("bytes", rest).Msg("protocol: skipped trailing body bytes")
		_ = h.in.Skip(rest)
	}
	return Result{
		Status: StatusPacket,
		ID:     id,
		Length: length,
		Packet: &Packet{ID: id, Name: s.Name, Length: length, Fields: fields},
	}
}
