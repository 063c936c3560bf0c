package tlv

import (
	"errors"

	"github.com/danmuck/tlvcodec/internal/protocol/buffer"
)

// Type is the tag a schema field uses to select a primitive codec.
type Type string

// Builtin type tags.
const (
	TypeBool    Type = "bool"
	TypeByte    Type = "byte"
	TypeShort   Type = "short"
	TypeUShort  Type = "ushort"
	TypeInt     Type = "int"
	TypeUInt    Type = "uint"
	TypeFloat   Type = "float"
	TypeDouble  Type = "double"
	TypeVarint  Type = "varint"
	TypeIString Type = "istring"
	TypeArray   Type = "array"
)

// DefaultArrayLength is the count type used when an array names only its element type.
const DefaultArrayLength = TypeUInt

var (
	ErrUnknownType  = errors.New("tlv: unknown type")
	ErrBadExtension = errors.New("tlv: invalid extension")
	ErrValueType    = errors.New("tlv: value type mismatch")
	ErrValueRange   = errors.New("tlv: value out of range")
	ErrInvalidBool  = errors.New("tlv: invalid bool value")
	ErrInvalidUTF8  = errors.New("tlv: invalid utf-8 string")
	ErrArrayArgs    = errors.New("tlv: array needs length and element types")
)

// ReadFunc decodes one value from r. args carries the field's extra
// arguments, already resolved against the read table.
type ReadFunc func(r *buffer.Reader, args []ReadArg) (any, error)

// WriteFunc encodes v into w. args carries the field's extra arguments,
// already resolved against the write table.
type WriteFunc func(w *buffer.Writer, v any, args []WriteArg) error

// ReadArg is one resolved extra argument: a function for a type reference,
// or a literal value passed through unchanged.
type ReadArg struct {
	Func  ReadFunc
	Value any
}

// IsRef reports whether the argument is a resolved type reference.
func (a ReadArg) IsRef() bool { return a.Func != nil }

// WriteArg is the write-direction counterpart of ReadArg.
type WriteArg struct {
	Func  WriteFunc
	Value any
}

// IsRef reports whether the argument is a resolved type reference.
func (a WriteArg) IsRef() bool { return a.Func != nil }

// ReadExtension registers Func under Type in a read table. Name identifies
// the function in logs and errors.
type ReadExtension struct {
	Name string
	Type Type
	Func ReadFunc
}

// WriteExtension registers Func under Type in a write table.
type WriteExtension struct {
	Name string
	Type Type
	Func WriteFunc
}
