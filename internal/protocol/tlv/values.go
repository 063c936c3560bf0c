package tlv

import (
	"fmt"
	"math"
)

// AsUint converts any Go integer to uint64, rejecting negative values and
// values above max.
func AsUint(v any, max uint64) (uint64, error) {
	var u uint64
	switch n := v.(type) {
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case uint:
		u = uint64(n)
	default:
		i, ok := signed(v)
		if !ok {
			return 0, fmt.Errorf("%w: integer got %T", ErrValueType, v)
		}
		if i < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrValueRange, i)
		}
		u = uint64(i)
	}
	if u > max {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrValueRange, u, max)
	}
	return u, nil
}

// AsInt converts any Go integer to int64 within [lo, hi].
func AsInt(v any, lo, hi int64) (int64, error) {
	i, ok := signed(v)
	if !ok {
		u, err := AsUint(v, math.MaxInt64)
		if err != nil {
			return 0, err
		}
		i = int64(u)
	}
	if i < lo || i > hi {
		return 0, fmt.Errorf("%w: %d outside [%d, %d]", ErrValueRange, i, lo, hi)
	}
	return i, nil
}

// AsFloat converts a float or integer to float64.
func AsFloat(v any) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	}
	if i, ok := signed(v); ok {
		return float64(i), nil
	}
	u, err := AsUint(v, math.MaxUint64)
	if err != nil {
		return 0, fmt.Errorf("%w: float got %T", ErrValueType, v)
	}
	return float64(u), nil
}

func signed(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}
