package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderLen is the fixed header size: packet id then body length.
const HeaderLen = 8

// LengthOffset is where the body length sits inside the header.
const LengthOffset = 4

var (
	ErrShortHeader  = errors.New("frame: short header")
	ErrBodyTooLarge = errors.New("frame: body too large")
)

// Header is the fixed wire header. Both fields are little-endian u32.
type Header struct {
	ID     uint32
	Length uint32
}

// Frame is one complete wire message.
type Frame struct {
	Header Header
	Body   []byte
}

// Limits constrains codec memory use.
type Limits struct {
	// MaxBodyBytes bounds the declared body length of one frame.
	MaxBodyBytes uint32
	// MaxBufferedBytes bounds unread input; Append beyond it is rejected.
	MaxBufferedBytes int
	// RetainWriteBytes is the largest output backing array kept between encodes.
	RetainWriteBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxBodyBytes:     8 * 1024 * 1024,
		MaxBufferedBytes: 16 * 1024 * 1024,
		RetainWriteBytes: 64 * 1024,
	}
}

// Validate reports limits that can never admit a frame.
func (l Limits) Validate() error {
	if l.MaxBodyBytes == 0 {
		return fmt.Errorf("frame: max body bytes must be positive")
	}
	if l.MaxBufferedBytes > 0 && uint64(l.MaxBufferedBytes) < uint64(l.MaxBodyBytes)+HeaderLen {
		return fmt.Errorf("frame: max buffered bytes %d cannot hold a %d byte body", l.MaxBufferedBytes, l.MaxBodyBytes)
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	binary.LittleEndian.PutUint32(buf[0:4], h.ID)
	binary.LittleEndian.PutUint32(buf[4:8], h.Length)
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	return Header{
		ID:     binary.LittleEndian.Uint32(b[0:4]),
		Length: binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// ReadFrame reads one raw frame from r without interpreting the body.
// Returns io.EOF when r is exhausted cleanly before a header.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}
	h, err := DecodeHeader(hdr[:])
	if err != nil {
		return Frame{}, err
	}
	if limits.MaxBodyBytes > 0 && h.Length > limits.MaxBodyBytes {
		return Frame{}, fmt.Errorf("%w: %d", ErrBodyTooLarge, h.Length)
	}
	body := make([]byte, h.Length)
	if h.Length > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return Frame{}, fmt.Errorf("frame: read body: %w", err)
		}
	}
	return Frame{Header: h, Body: body}, nil
}

// WriteFrame writes f to w, setting the header length from the body.
func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	if uint64(len(f.Body)) > uint64(^uint32(0)) ||
		(limits.MaxBodyBytes > 0 && uint32(len(f.Body)) > limits.MaxBodyBytes) {
		return fmt.Errorf("%w: %d", ErrBodyTooLarge, len(f.Body))
	}
	h := f.Header
	h.Length = uint32(len(f.Body))
	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if len(f.Body) > 0 {
		if _, err := w.Write(f.Body); err != nil {
			return err
		}
	}
	return nil
}
