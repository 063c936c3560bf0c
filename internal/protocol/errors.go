package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField marks a body that can never decode. It is fatal.
	ErrMalformedField = errors.New("protocol: malformed field")
	// ErrFrameTooLarge marks a frame whose body exceeds the configured limit.
	ErrFrameTooLarge = errors.New("protocol: frame too large")
	// ErrUsage marks a caller mistake on the encode path.
	ErrUsage         = errors.New("protocol: usage error")
	ErrUnknownPacket = errors.New("protocol: unknown packet")
	ErrArgCount      = errors.New("protocol: argument count mismatch")
	ErrMissingField  = errors.New("protocol: missing field value")
	ErrUnknownField  = errors.New("protocol: unknown field")
)

// FieldError reports a field that failed to decode.
type FieldError struct {
	Packet string
	ID     uint32
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("protocol: packet=%q id=%d field=%q: %v", e.Packet, e.ID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrMalformedField, e.Err}
}

// UsageError reports an encode call that cannot produce a frame. No bytes
// are left in the output buffer when it is returned.
type UsageError struct {
	Packet string
	Field  string
	Err    error
}

func (e *UsageError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("protocol: encode packet=%q: %v", e.Packet, e.Err)
	}
	return fmt.Sprintf("protocol: encode packet=%q field=%q: %v", e.Packet, e.Field, e.Err)
}

func (e *UsageError) Unwrap() []error {
	return []error{ErrUsage, e.Err}
}
