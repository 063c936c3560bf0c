package buffer

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/tlvcodec/internal/testutil/testlog"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	testlog.Start(t)
	w := NewWriter(4, 0)
	w.WriteUint8(0xAB)
	w.WriteInt16(-2)
	w.WriteUint16(0xFFFF)
	w.WriteInt32(-70000)
	w.WriteUint32(0xDEADBEEF)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-math.Pi)
	w.WriteVarint32(300)

	r := NewReader(0)
	if err := r.Append(w.Bytes()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if v, err := r.ReadUint8(); err != nil || v != 0xAB {
		t.Fatalf("u8 got=%d err=%v", v, err)
	}
	if v, err := r.ReadInt16(); err != nil || v != -2 {
		t.Fatalf("i16 got=%d err=%v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0xFFFF {
		t.Fatalf("u16 got=%d err=%v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != -70000 {
		t.Fatalf("i32 got=%d err=%v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("u32 got=%d err=%v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 1.5 {
		t.Fatalf("f32 got=%v err=%v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -math.Pi {
		t.Fatalf("f64 got=%v err=%v", v, err)
	}
	if v, err := r.ReadVarint32(); err != nil || v != 300 {
		t.Fatalf("varint got=%d err=%v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected drained reader, remaining=%d", r.Remaining())
	}
}

func TestLittleEndianLayout(t *testing.T) {
	testlog.Start(t)
	w := NewWriter(0, 0)
	w.WriteUint32(0x01020304)
	if !bytes.Equal(w.Bytes(), []byte{4, 3, 2, 1}) {
		t.Fatalf("unexpected layout: %v", w.Bytes())
	}
}

func TestAppendPreservesUnreadBytes(t *testing.T) {
	testlog.Start(t)
	r := NewReader(0)
	if err := r.Append([]byte{1, 2, 3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := r.ReadUint8(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := r.Append([]byte{4}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !bytes.Equal(r.Peek(), []byte{2, 3, 4}) {
		t.Fatalf("unexpected unread bytes: %v", r.Peek())
	}
}

func TestSeekRollsBackCursor(t *testing.T) {
	testlog.Start(t)
	r := NewReader(0)
	_ = r.Append([]byte{1, 0, 0, 0, 9})
	mark := r.Offset()
	if _, err := r.ReadUint32(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if err := r.Seek(mark); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if r.Remaining() != 5 {
		t.Fatalf("rollback lost bytes, remaining=%d", r.Remaining())
	}
	if err := r.Seek(99); !errors.Is(err, ErrInvalidSeek) {
		t.Fatalf("expected ErrInvalidSeek, got %v", err)
	}
}

func TestAppendRejectsOverflow(t *testing.T) {
	testlog.Start(t)
	r := NewReader(4)
	if err := r.Append([]byte{1, 2, 3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := r.Append([]byte{4, 5}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if r.Remaining() != 3 {
		t.Fatalf("rejected append changed buffer, remaining=%d", r.Remaining())
	}
	_ = r.Skip(2)
	if err := r.Append([]byte{4, 5}); err != nil {
		t.Fatalf("append after consume: %v", err)
	}
}

func TestWindowBoundsReads(t *testing.T) {
	testlog.Start(t)
	r := NewReader(0)
	_ = r.Append([]byte{1, 2, 3, 4, 5, 6})
	if err := r.Window(2); err != nil {
		t.Fatalf("window: %v", err)
	}
	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer inside window, got %v", err)
	}
	if _, err := r.ReadUint16(); err != nil {
		t.Fatalf("read inside window: %v", err)
	}
	r.Unbound()
	if _, err := r.ReadUint32(); err != nil {
		t.Fatalf("read after unbound: %v", err)
	}
	if err := r.Window(1); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected window past end to fail, got %v", err)
	}
}

func TestReadVarint32Malformed(t *testing.T) {
	testlog.Start(t)
	r := NewReader(0)
	_ = r.Append([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := r.ReadVarint32(); !errors.Is(err, ErrMalformedVarint) {
		t.Fatalf("expected ErrMalformedVarint, got %v", err)
	}

	r = NewReader(0)
	_ = r.Append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x1F})
	if _, err := r.ReadVarint32(); !errors.Is(err, ErrMalformedVarint) {
		t.Fatalf("expected 35-bit varint to be malformed, got %v", err)
	}

	r = NewReader(0)
	_ = r.Append([]byte{0x80, 0x80})
	if _, err := r.ReadVarint32(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer for truncated varint, got %v", err)
	}
	if r.Offset() != 0 {
		t.Fatalf("failed varint moved cursor to %d", r.Offset())
	}
}

func TestWriterBackpatchSnapshotReset(t *testing.T) {
	testlog.Start(t)
	w := NewWriter(0, 16)
	w.WriteUint32(7)
	w.WriteUint32(0)
	w.WriteRaw([]byte("body"))
	if err := w.PutUint32At(4, uint32(w.Len()-8)); err != nil {
		t.Fatalf("backpatch: %v", err)
	}
	snap := w.Snapshot()
	want := []byte{7, 0, 0, 0, 4, 0, 0, 0, 'b', 'o', 'd', 'y'}
	if !bytes.Equal(snap, want) {
		t.Fatalf("snapshot=%v want=%v", snap, want)
	}
	w.Reset()
	if w.Len() != 0 {
		t.Fatalf("reset left %d bytes", w.Len())
	}
	if snap[0] != 7 {
		t.Fatalf("snapshot aliased writer storage")
	}
	if err := w.PutUint32At(0, 1); !errors.Is(err, ErrInvalidSeek) {
		t.Fatalf("expected ErrInvalidSeek on empty writer, got %v", err)
	}
}

func TestWriterResetReleasesLargeBacking(t *testing.T) {
	testlog.Start(t)
	w := NewWriter(0, 8)
	w.WriteRaw(make([]byte, 64))
	w.Reset()
	if cap(w.Bytes()) != 0 {
		t.Fatalf("expected backing array released, cap=%d", cap(w.Bytes()))
	}
}
