package protocol

import (
	"fmt"
	"strconv"

	"github.com/danmuck/tlvcodec/internal/protocol/frame"
	"github.com/danmuck/tlvcodec/internal/protocol/schema"
)

// Encode builds one frame for the write packet named nameOrID, which may
// also be the decimal form of its id. values are given in field order.
// The returned slice is owned by the caller.
func (h *Handler) Encode(nameOrID string, values ...any) ([]byte, error) {
	s, ok := h.writes.Lookup(nameOrID)
	if !ok {
		return nil, h.encodeFailed(0, &UsageError{Packet: nameOrID, Err: ErrUnknownPacket})
	}
	return h.encode(s, values)
}

// EncodeID is Encode keyed by numeric packet id.
func (h *Handler) EncodeID(id uint32, values ...any) ([]byte, error) {
	s, ok := h.writes.ByID(id)
	if !ok {
		return nil, h.encodeFailed(id, &UsageError{Packet: strconv.FormatUint(uint64(id), 10), Err: ErrUnknownPacket})
	}
	return h.encode(s, values)
}

// EncodeFields is Encode with values keyed by field name. Every field must
// be present and no other names are accepted.
func (h *Handler) EncodeFields(nameOrID string, fields map[string]any) ([]byte, error) {
	s, ok := h.writes.Lookup(nameOrID)
	if !ok {
		return nil, h.encodeFailed(0, &UsageError{Packet: nameOrID, Err: ErrUnknownPacket})
	}
	if len(fields) > len(s.Fields) {
		for name := range fields {
			if !hasField(s, name) {
				return nil, h.encodeFailed(s.ID, &UsageError{Packet: s.Name, Field: name, Err: ErrUnknownField})
			}
		}
	}
	values := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, h.encodeFailed(s.ID, &UsageError{Packet: s.Name, Field: f.Name, Err: ErrMissingField})
		}
		values[i] = v
	}
	return h.encode(s, values)
}

func hasField(s *schema.Schema[schema.WriteField], name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (h *Handler) encode(s *schema.Schema[schema.WriteField], values []any) ([]byte, error) {
	if len(values) != len(s.Fields) {
		return nil, h.encodeFailed(s.ID, &UsageError{
			Packet: s.Name,
			Err:    fmt.Errorf("%w: got %d values for %d fields", ErrArgCount, len(values), len(s.Fields)),
		})
	}

	h.out.Reset()
	h.out.WriteUint32(s.ID)
	h.out.WriteUint32(0)
	for i, f := range s.Fields {
		if err := f.Func(h.out, values[i], f.Args); err != nil {
			return nil, h.encodeFailed(s.ID, &UsageError{Packet: s.Name, Field: f.Name, Err: err})
		}
	}

	body := h.out.Len() - frame.HeaderLen
	if uint64(body) > uint64(h.limits.MaxBodyBytes) {
		return nil, h.encodeFailed(s.ID, &UsageError{
			Packet: s.Name,
			Err:    fmt.Errorf("%w: length=%d max=%d", ErrFrameTooLarge, body, h.limits.MaxBodyBytes),
		})
	}
	if err := h.out.PutUint32At(frame.LengthOffset, uint32(body)); err != nil {
		return nil, h.encodeFailed(s.ID, err)
	}
	out := h.out.Snapshot()
	h.out.Reset()
	h.obs.ObserveEncode(s.ID, len(out), nil)
	return out, nil
}

// encodeFailed empties the output buffer so no partial frame survives.
func (h *Handler) encodeFailed(id uint32, err error) error {
	h.out.Reset()
	h.obs.ObserveEncode(id, 0, err)
	return err
}
