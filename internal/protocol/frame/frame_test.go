package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/tlvcodec/internal/testutil/testlog"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := Frame{Header: Header{ID: 42}, Body: []byte("payload")}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if buf.Len() != HeaderLen+len(in.Body) {
		t.Fatalf("unexpected frame size %d", buf.Len())
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Header.ID != 42 || out.Header.Length != uint32(len(in.Body)) {
		t.Fatalf("header mismatch: %+v", out.Header)
	}
	if !bytes.Equal(out.Body, in.Body) {
		t.Fatalf("body mismatch")
	}
	if _, err := ReadFrame(&buf, DefaultLimits()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last frame, got %v", err)
	}
}

func TestHeaderLayoutLittleEndian(t *testing.T) {
	testlog.Start(t)
	b := EncodeHeader(Header{ID: 0x01020304, Length: 5})
	want := []byte{4, 3, 2, 1, 5, 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("header=%v want=%v", b, want)
	}
	h, err := DecodeHeader(b)
	if err != nil || h.ID != 0x01020304 || h.Length != 5 {
		t.Fatalf("decode header: %+v %v", h, err)
	}
}

func TestReadFrameMalformedHeaderIsDeterministic(t *testing.T) {
	testlog.Start(t)
	_, err := ReadFrame(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits())
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
	if _, err := DecodeHeader([]byte{1}); !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReadFrameBodyTooLarge(t *testing.T) {
	testlog.Start(t)
	limits := Limits{MaxBodyBytes: 4}
	buf := EncodeHeader(Header{ID: 1, Length: 5})
	_, err := ReadFrame(bytes.NewReader(buf), limits)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
	if err := WriteFrame(io.Discard, Frame{Body: make([]byte, 5)}, limits); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge on write, got %v", err)
	}
}

func TestLimitsValidate(t *testing.T) {
	testlog.Start(t)
	if err := DefaultLimits().Validate(); err != nil {
		t.Fatalf("default limits invalid: %v", err)
	}
	if err := (Limits{}).Validate(); err == nil {
		t.Fatalf("expected zero body limit to be rejected")
	}
	if err := (Limits{MaxBodyBytes: 100, MaxBufferedBytes: 50}).Validate(); err == nil {
		t.Fatalf("expected buffer smaller than a frame to be rejected")
	}
}

func TestReadFrameTruncatedBodyIsNotEOF(t *testing.T) {
	testlog.Start(t)
	buf := EncodeHeader(Header{ID: 1, Length: 4})
	_, err := ReadFrame(bytes.NewReader(buf), DefaultLimits())
	if !errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}
