package buffer

import (
	"encoding/binary"
	"math"
)

// Writer is the output staging buffer. All multi-byte integers are
// written in little-endian byte order.
type Writer struct {
	data   []byte
	retain int
}

// NewWriter returns a Writer pre-allocated with the given capacity. After
// Reset, a backing array that grew past retain bytes is released.
func NewWriter(cap, retain int) *Writer {
	return &Writer{data: make([]byte, 0, cap), retain: retain}
}

// Bytes returns the written bytes. The slice aliases the buffer.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.data)
}

// Snapshot returns an independent copy of the written bytes.
func (w *Writer) Snapshot() []byte {
	out := make([]byte, len(w.data))
	copy(out, w.data)
	return out
}

// Reset empties the buffer for the next frame.
func (w *Writer) Reset() {
	if w.retain > 0 && cap(w.data) > w.retain {
		w.data = nil
		return
	}
	w.data = w.data[:0]
}

// grow ensures room for n additional bytes, returning the write offset.
func (w *Writer) grow(n int) int {
	off := len(w.data)
	need := off + n
	if need <= cap(w.data) {
		w.data = w.data[:need]
		return off
	}
	newCap := cap(w.data) * 2
	if newCap < need {
		newCap = need
	}
	tmp := make([]byte, need, newCap)
	copy(tmp, w.data)
	w.data = tmp
	return off
}

func (w *Writer) WriteUint8(v uint8) {
	off := w.grow(1)
	w.data[off] = v
}

func (w *Writer) WriteUint16(v uint16) {
	off := w.grow(2)
	binary.LittleEndian.PutUint16(w.data[off:], v)
}

func (w *Writer) WriteUint32(v uint32) {
	off := w.grow(4)
	binary.LittleEndian.PutUint32(w.data[off:], v)
}

func (w *Writer) WriteUint64(v uint64) {
	off := w.grow(8)
	binary.LittleEndian.PutUint64(w.data[off:], v)
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteVarint32 appends v as unsigned LEB128.
func (w *Writer) WriteVarint32(v uint32) {
	w.data = binary.AppendUvarint(w.data, uint64(v))
}

// WriteRaw appends p unchanged.
func (w *Writer) WriteRaw(p []byte) {
	off := w.grow(len(p))
	copy(w.data[off:], p)
}

// PutUint32At overwrites four already-written bytes at off. It is used to
// backpatch a header field once the body size is known.
func (w *Writer) PutUint32At(off int, v uint32) error {
	if off < 0 || off+4 > len(w.data) {
		return ErrInvalidSeek
	}
	binary.LittleEndian.PutUint32(w.data[off:], v)
	return nil
}
