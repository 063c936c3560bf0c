package protocol

import (
	"github.com/danmuck/tlvcodec/internal/protocol/buffer"
	"github.com/danmuck/tlvcodec/internal/protocol/frame"
	"github.com/danmuck/tlvcodec/internal/protocol/schema"
	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
	"github.com/rs/zerolog/log"
)

// Options configures a Handler.
type Options struct {
	ReadPackets         []schema.Packet
	WritePackets        []schema.Packet
	ExtraReadFunctions  []tlv.ReadExtension
	ExtraWriteFunctions []tlv.WriteExtension
	// Limits defaults to frame.DefaultLimits when zero.
	Limits   frame.Limits
	Observer Observer
}

// Handler encodes and decodes frames for one connection. It owns its input
// and output buffers and is not safe for concurrent use.
type Handler struct {
	reads  *schema.Registry[schema.ReadField]
	writes *schema.Registry[schema.WriteField]
	in     *buffer.Reader
	out    *buffer.Writer
	limits frame.Limits
	obs    Observer
	err    error
}

// NewHandler builds the type tables and registries. Any schema naming an
// unregistered type fails here.
func NewHandler(opts Options) (*Handler, error) {
	limits := opts.Limits
	if limits == (frame.Limits{}) {
		limits = frame.DefaultLimits()
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	readTable, err := tlv.NewReadTable(opts.ExtraReadFunctions...)
	if err != nil {
		return nil, err
	}
	writeTable, err := tlv.NewWriteTable(opts.ExtraWriteFunctions...)
	if err != nil {
		return nil, err
	}
	reads, err := schema.NewReadRegistry(readTable, opts.ReadPackets)
	if err != nil {
		return nil, err
	}
	writes, err := schema.NewWriteRegistry(writeTable, opts.WritePackets)
	if err != nil {
		return nil, err
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log.Debug().
		Int("read_packets", reads.Len()).
		Int("write_packets", writes.Len()).
		Uint32("max_body_bytes", limits.MaxBodyBytes).
		Msg("protocol: handler ready")
	return &Handler{
		reads:  reads,
		writes: writes,
		in:     buffer.NewReader(limits.MaxBufferedBytes),
		out:    buffer.NewWriter(0, limits.RetainWriteBytes),
		limits: limits,
		obs:    obs,
	}, nil
}

// Append adds newly arrived bytes after the unread input. It returns
// buffer.ErrOverflow, appending nothing, when the input cap would be
// exceeded, and the handler's fatal error once decoding has failed.
func (h *Handler) Append(p []byte) error {
	if h.err != nil {
		return h.err
	}
	return h.in.Append(p)
}

// Buffered returns the number of unread input bytes.
func (h *Handler) Buffered() int {
	return h.in.Remaining()
}

// Err returns the fatal decode error, if any.
func (h *Handler) Err() error {
	return h.err
}

func (h *Handler) ReadSchemas() []*schema.Schema[schema.ReadField] {
	return h.reads.List()
}

func (h *Handler) WriteSchemas() []*schema.Schema[schema.WriteField] {
	return h.writes.List()
}

// LookupWrite resolves a write schema by name, then by decimal id.
func (h *Handler) LookupWrite(nameOrID string) (*schema.Schema[schema.WriteField], bool) {
	return h.writes.Lookup(nameOrID)
}
