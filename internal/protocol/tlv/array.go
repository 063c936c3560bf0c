package tlv

import (
	"fmt"
	"math"
	"reflect"

	"github.com/danmuck/tlvcodec/internal/protocol/buffer"
)

// readArray reads a count with args[0] and then that many elements with
// args[1]. Both arguments must be type references.
func readArray(r *buffer.Reader, args []ReadArg) (any, error) {
	if len(args) != 2 || !args[0].IsRef() || !args[1].IsRef() {
		return nil, ErrArrayArgs
	}
	raw, err := args[0].Func(r, nil)
	if err != nil {
		return nil, err
	}
	n, err := AsUint(raw, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, min(int(n), r.Remaining()))
	for i := 0; i < int(n); i++ {
		v, err := args[1].Func(r, nil)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// writeArray writes the element count with args[0], then each element of
// the slice v with args[1].
func writeArray(w *buffer.Writer, v any, args []WriteArg) error {
	if len(args) != 2 || !args[0].IsRef() || !args[1].IsRef() {
		return ErrArrayArgs
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("%w: array got %T", ErrValueType, v)
	}
	if err := args[0].Func(w, rv.Len(), nil); err != nil {
		return fmt.Errorf("array length: %w", err)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := args[1].Func(w, rv.Index(i).Interface(), nil); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	return nil
}
