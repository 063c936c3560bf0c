package buffer

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrShortBuffer is returned when fewer bytes are available than a read needs.
	ErrShortBuffer = errors.New("buffer: insufficient data")
	// ErrOverflow is returned by Append when the unread bytes would exceed the cap.
	ErrOverflow = errors.New("buffer: unread bytes exceed maximum")
	// ErrMalformedVarint is returned for a varint longer than 5 bytes or wider than 32 bits.
	ErrMalformedVarint = errors.New("buffer: malformed varint")
	// ErrInvalidSeek is returned when a cursor move falls outside the buffered bytes.
	ErrInvalidSeek = errors.New("buffer: offset out of range")
)

// MaxVarintLen32 is the longest encoding of a 32-bit varint.
const MaxVarintLen32 = 5

// Reader is the input accumulation buffer. It owns every unread byte and the
// read cursor. All multi-byte integers are little-endian.
//
// Offsets handed out by Offset stay valid until the next Append, which may
// discard consumed bytes.
type Reader struct {
	data  []byte
	off   int
	limit int
	max   int
}

// NewReader returns a Reader that holds at most max unread bytes.
// A max of zero or less disables the cap.
func NewReader(max int) *Reader {
	return &Reader{limit: -1, max: max}
}

// Append adds p after the buffered bytes. The next unread byte is unchanged.
// When the cap would be exceeded nothing is appended and ErrOverflow is returned.
func (r *Reader) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if r.max > 0 && r.Remaining()+len(p) > r.max {
		return ErrOverflow
	}
	if r.off > 0 {
		n := copy(r.data, r.data[r.off:])
		r.data = r.data[:n]
		if r.limit >= 0 {
			r.limit -= r.off
		}
		r.off = 0
	}
	r.data = append(r.data, p...)
	return nil
}

// Offset returns the read cursor.
func (r *Reader) Offset() int {
	return r.off
}

// Seek moves the read cursor to off. It is how a failed decode rolls back.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return ErrInvalidSeek
	}
	r.off = off
	return nil
}

// Remaining returns the number of unread bytes, ignoring any window.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Window bounds reads to the next n bytes. Reads past the bound fail with
// ErrShortBuffer until Unbound is called.
func (r *Reader) Window(n int) error {
	if n < 0 || n > r.Remaining() {
		return ErrShortBuffer
	}
	r.limit = r.off + n
	return nil
}

// Unbound removes the window set by Window.
func (r *Reader) Unbound() {
	r.limit = -1
}

// Peek returns the unread bytes without moving the cursor. The slice aliases
// the buffer and is only valid until the next Append.
func (r *Reader) Peek() []byte {
	return r.data[r.off:r.end()]
}

func (r *Reader) end() int {
	if r.limit >= 0 {
		return r.limit
	}
	return len(r.data)
}

// need checks that at least n bytes remain and returns the current offset.
func (r *Reader) need(n int) (int, error) {
	if n < 0 || r.off+n > r.end() {
		return 0, ErrShortBuffer
	}
	off := r.off
	r.off += n
	return off, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.need(n)
	return err
}

// Next returns a copy of the next n bytes.
func (r *Reader) Next(n int) ([]byte, error) {
	off, err := r.need(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[off:off+n])
	return out, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	off, err := r.need(1)
	if err != nil {
		return 0, err
	}
	return r.data[off], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	off, err := r.need(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.data[off:]), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	off, err := r.need(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.data[off:]), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	off, err := r.need(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.data[off:]), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadVarint32 reads an unsigned LEB128 value of at most 32 bits.
// A truncated varint is ErrShortBuffer; an overlong one is ErrMalformedVarint.
func (r *Reader) ReadVarint32() (uint32, error) {
	p := r.Peek()
	v, n := binary.Uvarint(p)
	switch {
	case n == 0 && len(p) >= MaxVarintLen32:
		return 0, ErrMalformedVarint
	case n == 0:
		return 0, ErrShortBuffer
	case n < 0, n > MaxVarintLen32, v > math.MaxUint32:
		return 0, ErrMalformedVarint
	}
	r.off += n
	return uint32(v), nil
}
