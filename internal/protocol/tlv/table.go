package tlv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadTable maps type tags to read functions. It is immutable once built.
type ReadTable struct {
	funcs    map[Type]ReadFunc
	replaced map[Type]struct{}
}

// WriteTable maps type tags to write functions. It is immutable once built.
type WriteTable struct {
	funcs    map[Type]WriteFunc
	replaced map[Type]struct{}
}

// NewReadTable returns the builtin read functions extended with ext.
// Later extensions override earlier ones and builtins.
func NewReadTable(ext ...ReadExtension) (*ReadTable, error) {
	t := &ReadTable{
		funcs:    make(map[Type]ReadFunc, len(builtinReads)+len(ext)),
		replaced: make(map[Type]struct{}),
	}
	for tag, fn := range builtinReads {
		t.funcs[tag] = fn
	}
	for i, e := range ext {
		if err := checkExtension(e.Name, e.Type, e.Func == nil); err != nil {
			return nil, fmt.Errorf("read extension[%d]: %w", i, err)
		}
		log.Debug().Str("name", e.Name).Str("type", string(e.Type)).Msg("tlv: read extension registered")
		t.funcs[e.Type] = e.Func
		t.replaced[e.Type] = struct{}{}
	}
	return t, nil
}

// NewWriteTable returns the builtin write functions extended with ext.
func NewWriteTable(ext ...WriteExtension) (*WriteTable, error) {
	t := &WriteTable{
		funcs:    make(map[Type]WriteFunc, len(builtinWrites)+len(ext)),
		replaced: make(map[Type]struct{}),
	}
	for tag, fn := range builtinWrites {
		t.funcs[tag] = fn
	}
	for i, e := range ext {
		if err := checkExtension(e.Name, e.Type, e.Func == nil); err != nil {
			return nil, fmt.Errorf("write extension[%d]: %w", i, err)
		}
		log.Debug().Str("name", e.Name).Str("type", string(e.Type)).Msg("tlv: write extension registered")
		t.funcs[e.Type] = e.Func
		t.replaced[e.Type] = struct{}{}
	}
	return t, nil
}

func checkExtension(name string, tag Type, nilFunc bool) error {
	if strings.TrimSpace(string(tag)) == "" {
		return fmt.Errorf("%w: %q missing type", ErrBadExtension, name)
	}
	if nilFunc {
		return fmt.Errorf("%w: %q has no function", ErrBadExtension, name)
	}
	return nil
}

// Resolve returns the read function for tag.
func (t *ReadTable) Resolve(tag Type) (ReadFunc, error) {
	fn, ok := t.funcs[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return fn, nil
}

// Has reports whether tag is registered.
func (t *ReadTable) Has(tag Type) bool {
	_, ok := t.funcs[tag]
	return ok
}

// Builtin reports whether tag resolves to a builtin no extension replaced.
func (t *ReadTable) Builtin(tag Type) bool {
	_, ok := builtinReads[tag]
	_, replaced := t.replaced[tag]
	return ok && !replaced
}

// Types returns the registered tags in sorted order.
func (t *ReadTable) Types() []Type {
	return sortedTypes(t.funcs)
}

// Resolve returns the write function for tag.
func (t *WriteTable) Resolve(tag Type) (WriteFunc, error) {
	fn, ok := t.funcs[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return fn, nil
}

// Builtin reports whether tag resolves to a builtin no extension replaced.
func (t *WriteTable) Builtin(tag Type) bool {
	_, ok := builtinWrites[tag]
	_, replaced := t.replaced[tag]
	return ok && !replaced
}

// Types returns the registered tags in sorted order.
func (t *WriteTable) Types() []Type {
	return sortedTypes(t.funcs)
}

func sortedTypes[F any](m map[Type]F) []Type {
	out := make([]Type, 0, len(m))
	for tag := range m {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}
