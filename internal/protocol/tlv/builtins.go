package tlv

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/danmuck/tlvcodec/internal/protocol/buffer"
)

var builtinReads = map[Type]ReadFunc{
	TypeBool:    readBool,
	TypeByte:    readByte,
	TypeShort:   readShort,
	TypeUShort:  readUShort,
	TypeInt:     readInt,
	TypeUInt:    readUInt,
	TypeFloat:   readFloat,
	TypeDouble:  readDouble,
	TypeVarint:  readVarint,
	TypeIString: readIString,
	TypeArray:   readArray,
}

var builtinWrites = map[Type]WriteFunc{
	TypeBool:    writeBool,
	TypeByte:    writeByte,
	TypeShort:   writeShort,
	TypeUShort:  writeUShort,
	TypeInt:     writeInt,
	TypeUInt:    writeUInt,
	TypeFloat:   writeFloat,
	TypeDouble:  writeDouble,
	TypeVarint:  writeVarint,
	TypeIString: writeIString,
	TypeArray:   writeArray,
}

func readBool(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidBool, v)
	}
}

func readByte(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readShort(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readUShort(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readInt(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readUInt(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readFloat(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readDouble(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readVarint(r *buffer.Reader, _ []ReadArg) (any, error) {
	v, err := r.ReadVarint32()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// readIString reads a uint32 length followed by that many UTF-8 bytes.
func readIString(r *buffer.Reader, _ []ReadArg) (any, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Remaining()) {
		return nil, buffer.ErrShortBuffer
	}
	b, err := r.Next(int(n))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	return string(b), nil
}

func writeBool(w *buffer.Writer, v any, _ []WriteArg) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: bool got %T", ErrValueType, v)
	}
	if b {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	return nil
}

func writeByte(w *buffer.Writer, v any, _ []WriteArg) error {
	u, err := AsUint(v, math.MaxUint8)
	if err != nil {
		return err
	}
	w.WriteUint8(uint8(u))
	return nil
}

func writeShort(w *buffer.Writer, v any, _ []WriteArg) error {
	i, err := AsInt(v, math.MinInt16, math.MaxInt16)
	if err != nil {
		return err
	}
	w.WriteInt16(int16(i))
	return nil
}

func writeUShort(w *buffer.Writer, v any, _ []WriteArg) error {
	u, err := AsUint(v, math.MaxUint16)
	if err != nil {
		return err
	}
	w.WriteUint16(uint16(u))
	return nil
}

func writeInt(w *buffer.Writer, v any, _ []WriteArg) error {
	i, err := AsInt(v, math.MinInt32, math.MaxInt32)
	if err != nil {
		return err
	}
	w.WriteInt32(int32(i))
	return nil
}

func writeUInt(w *buffer.Writer, v any, _ []WriteArg) error {
	u, err := AsUint(v, math.MaxUint32)
	if err != nil {
		return err
	}
	w.WriteUint32(uint32(u))
	return nil
}

func writeFloat(w *buffer.Writer, v any, _ []WriteArg) error {
	f, err := AsFloat(v)
	if err != nil {
		return err
	}
	w.WriteFloat32(float32(f))
	return nil
}

func writeDouble(w *buffer.Writer, v any, _ []WriteArg) error {
	f, err := AsFloat(v)
	if err != nil {
		return err
	}
	w.WriteFloat64(f)
	return nil
}

func writeVarint(w *buffer.Writer, v any, _ []WriteArg) error {
	u, err := AsUint(v, math.MaxUint32)
	if err != nil {
		return err
	}
	w.WriteVarint32(uint32(u))
	return nil
}

func writeIString(w *buffer.Writer, v any, _ []WriteArg) error {
	var b []byte
	switch s := v.(type) {
	case string:
		b = []byte(s)
	case []byte:
		b = s
	default:
		return fmt.Errorf("%w: istring got %T", ErrValueType, v)
	}
	if uint64(len(b)) > math.MaxUint32 {
		return fmt.Errorf("%w: istring length %d", ErrValueRange, len(b))
	}
	if !utf8.Valid(b) {
		return ErrInvalidUTF8
	}
	w.WriteUint32(uint32(len(b)))
	w.WriteRaw(b)
	return nil
}
