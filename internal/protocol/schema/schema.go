package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
)

var (
	ErrDuplicate   = errors.New("schema: duplicate key")
	ErrMissingName = errors.New("schema: missing name")
	ErrBadArgs     = errors.New("schema: invalid extra arguments")
)

// ArgKind tags an extra argument as a type reference or a literal. The
// choice is made when the schema is declared, never by probing a table.
type ArgKind uint8

const (
	ArgLiteral ArgKind = iota
	ArgRef
)

// Arg is one extra argument of a field.
type Arg struct {
	Kind  ArgKind
	Type  tlv.Type
	Value any
}

// Ref declares an argument that resolves through the type table.
func Ref(t tlv.Type) Arg {
	return Arg{Kind: ArgRef, Type: t}
}

// Lit declares an argument passed to the primitive unchanged.
func Lit(v any) Arg {
	return Arg{Kind: ArgLiteral, Value: v}
}

// Field describes one field of a packet.
type Field struct {
	Name string
	Type tlv.Type
	Args []Arg
}

// Packet is an ordered field list keyed by a unique name and a unique id.
type Packet struct {
	Name   string
	ID     uint32
	Fields []Field
}

// ConfigError reports a schema that cannot be bound or registered.
type ConfigError struct {
	Packet string
	Field  string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: packet=%q: %v", e.Packet, e.Err)
	}
	return fmt.Sprintf("schema: packet=%q field=%q: %v", e.Packet, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Schema is a packet with every field bound to a direction's functions.
type Schema[F any] struct {
	Name   string
	ID     uint32
	Fields []F
	Packet Packet
}

// ReadField is a field bound to the read table.
type ReadField struct {
	Name string
	Type tlv.Type
	Func tlv.ReadFunc
	Args []tlv.ReadArg
}

// WriteField is a field bound to the write table.
type WriteField struct {
	Name string
	Type tlv.Type
	Func tlv.WriteFunc
	Args []tlv.WriteArg
}

// BindRead resolves every field function and type reference of p against t.
func BindRead(t *tlv.ReadTable, p Packet) (*Schema[ReadField], error) {
	return bind(p, func(f Field, args []Arg) (ReadField, error) {
		fn, err := t.Resolve(f.Type)
		if err != nil {
			return ReadField{}, err
		}
		if err := checkNestedArray(f, t.Builtin); err != nil {
			return ReadField{}, err
		}
		bound := make([]tlv.ReadArg, len(args))
		for i, a := range args {
			if a.Kind == ArgLiteral {
				bound[i] = tlv.ReadArg{Value: a.Value}
				continue
			}
			ref, err := t.Resolve(a.Type)
			if err != nil {
				return ReadField{}, fmt.Errorf("arg[%d]: %w", i, err)
			}
			bound[i] = tlv.ReadArg{Func: ref}
		}
		return ReadField{Name: f.Name, Type: f.Type, Func: fn, Args: bound}, nil
	})
}

// BindWrite resolves every field function and type reference of p against t.
func BindWrite(t *tlv.WriteTable, p Packet) (*Schema[WriteField], error) {
	return bind(p, func(f Field, args []Arg) (WriteField, error) {
		fn, err := t.Resolve(f.Type)
		if err != nil {
			return WriteField{}, err
		}
		if err := checkNestedArray(f, t.Builtin); err != nil {
			return WriteField{}, err
		}
		bound := make([]tlv.WriteArg, len(args))
		for i, a := range args {
			if a.Kind == ArgLiteral {
				bound[i] = tlv.WriteArg{Value: a.Value}
				continue
			}
			ref, err := t.Resolve(a.Type)
			if err != nil {
				return WriteField{}, fmt.Errorf("arg[%d]: %w", i, err)
			}
			bound[i] = tlv.WriteArg{Func: ref}
		}
		return WriteField{Name: f.Name, Type: f.Type, Func: fn, Args: bound}, nil
	})
}

func bind[F any](p Packet, bindField func(Field, []Arg) (F, error)) (*Schema[F], error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, &ConfigError{Packet: fmt.Sprintf("#%d", p.ID), Err: ErrMissingName}
	}
	seen := make(map[string]struct{}, len(p.Fields))
	out := &Schema[F]{Name: p.Name, ID: p.ID, Fields: make([]F, 0, len(p.Fields)), Packet: p}
	for i, f := range p.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return nil, &ConfigError{Packet: p.Name, Field: fmt.Sprintf("#%d", i), Err: ErrMissingName}
		}
		if _, dup := seen[f.Name]; dup {
			return nil, &ConfigError{Packet: p.Name, Field: f.Name, Err: ErrDuplicate}
		}
		seen[f.Name] = struct{}{}
		args, err := normalizeArgs(f)
		if err != nil {
			return nil, &ConfigError{Packet: p.Name, Field: f.Name, Err: err}
		}
		bf, err := bindField(f, args)
		if err != nil {
			return nil, &ConfigError{Packet: p.Name, Field: f.Name, Err: err}
		}
		out.Fields = append(out.Fields, bf)
	}
	return out, nil
}

// checkNestedArray rejects a builtin array used as the length or element
// type of a builtin array. The inner codec would run without arguments.
func checkNestedArray(f Field, builtin func(tlv.Type) bool) error {
	if f.Type != tlv.TypeArray || !builtin(tlv.TypeArray) {
		return nil
	}
	for i, a := range f.Args {
		if a.Kind == ArgRef && a.Type == tlv.TypeArray {
			return fmt.Errorf("%w: array arg[%d] cannot be a builtin array", ErrBadArgs, i)
		}
	}
	return nil
}

// normalizeArgs checks array arguments and fills in the default length type.
func normalizeArgs(f Field) ([]Arg, error) {
	if f.Type != tlv.TypeArray {
		return f.Args, nil
	}
	for i, a := range f.Args {
		if a.Kind != ArgRef {
			return nil, fmt.Errorf("%w: array arg[%d] must be a type reference", ErrBadArgs, i)
		}
	}
	switch len(f.Args) {
	case 1:
		return []Arg{Ref(tlv.DefaultArrayLength), f.Args[0]}, nil
	case 2:
		return f.Args, nil
	default:
		return nil, fmt.Errorf("%w: array takes [length] element, got %d args", ErrBadArgs, len(f.Args))
	}
}
