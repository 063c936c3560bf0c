package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/tlvcodec/internal/protocol/schema"
	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
)

// parseFields converts command-line strings into values in field order.
func parseFields(p schema.Packet, raw []string) ([]any, error) {
	if len(raw) != len(p.Fields) {
		return nil, fmt.Errorf("%s takes %d values, got %d", p.Name, len(p.Fields), len(raw))
	}
	values := make([]any, len(raw))
	for i, f := range p.Fields {
		v, err := parseField(f, raw[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseField parses one value. Arrays are comma-separated lists of their
// element type; an empty string is an empty array.
func parseField(f schema.Field, raw string) (any, error) {
	if f.Type != tlv.TypeArray {
		return parseValue(f.Type, raw)
	}
	if len(f.Args) == 0 {
		return nil, fmt.Errorf("array without element type")
	}
	elem := f.Args[len(f.Args)-1].Type
	if elem == tlv.TypeArray {
		return nil, fmt.Errorf("nested arrays cannot be given on the command line")
	}
	if strings.TrimSpace(raw) == "" {
		return []any{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]any, len(parts))
	for i, part := range parts {
		v, err := parseValue(elem, strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseValue(t tlv.Type, raw string) (any, error) {
	switch t {
	case tlv.TypeBool:
		return strconv.ParseBool(raw)
	case tlv.TypeByte:
		v, err := strconv.ParseUint(raw, 0, 8)
		return uint8(v), err
	case tlv.TypeShort:
		v, err := strconv.ParseInt(raw, 0, 16)
		return int16(v), err
	case tlv.TypeUShort:
		v, err := strconv.ParseUint(raw, 0, 16)
		return uint16(v), err
	case tlv.TypeInt:
		v, err := strconv.ParseInt(raw, 0, 32)
		return int32(v), err
	case tlv.TypeUInt, tlv.TypeVarint:
		v, err := strconv.ParseUint(raw, 0, 32)
		return uint32(v), err
	case tlv.TypeFloat:
		v, err := strconv.ParseFloat(raw, 32)
		return float32(v), err
	case tlv.TypeDouble:
		return strconv.ParseFloat(raw, 64)
	case tlv.TypeIString:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %s", tlv.ErrUnknownType, t)
	}
}
