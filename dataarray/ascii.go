package dataarray

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/internal/pool"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

// nextField returns the next whitespace separated token of s starting at pos
// and the position right after it. The token is empty once s is exhausted.
func nextField(s string, pos int) (string, int) {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	start := pos
	for pos < len(s) && !isSpace(s[pos]) {
		pos++
	}

	return s[start:pos], pos
}

// parseText fills dst from the first len(dst) tokens of text. Tokens beyond
// len(dst) are ignored. declared is the on-disk type named by the document,
// TypeUnknown when the element carries none.
func parseText[T array.Number](name, text string, dst []T, declared format.ElementType) error {
	parse := parserFor[T](declared)

	pos := 0
	for i := range dst {
		var tok string
		tok, pos = nextField(text, pos)
		if tok == "" {
			return fmt.Errorf("%w: <%s> holds %d values, %d expected", errs.ErrMalformedArray, name, i, len(dst))
		}

		v, err := parse(tok)
		if err != nil {
			return fmt.Errorf("%w: <%s> value %d: %q is not a number", errs.ErrMalformedArray, name, i, tok)
		}
		dst[i] = v
	}

	return nil
}

// parserFor returns the token parser for target type T.
//
// Integers are parsed as integers first so that 64-bit values survive, then
// as floats so that "1.0" or "1e3" still decode into integer buffers. When the
// declared type is 8-bit the value is clamped to its range before the cast.
func parserFor[T array.Number](declared format.ElementType) func(string) (T, error) {
	target := array.TypeOf[T]()
	lo, hi, clamp := rangeOf(declared)

	clampFloat := func(f float64) float64 {
		if clamp {
			f = math.Max(lo, math.Min(hi, f))
		}
		return f
	}

	switch {
	case target.IsFloat():
		bitSize := target.Size() * 8
		return func(tok string) (T, error) {
			f, err := parseFloat(tok, bitSize)
			if err != nil {
				return 0, err
			}

			return T(clampFloat(f)), nil
		}
	case target.IsSigned():
		return func(tok string) (T, error) {
			if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
				if clamp {
					i = int64(clampFloat(float64(i)))
				}

				return T(i), nil
			}
			f, err := parseFloat(tok, 64)
			if err != nil {
				return 0, err
			}

			return T(clampFloat(f)), nil
		}
	default:
		return func(tok string) (T, error) {
			if u, err := strconv.ParseUint(tok, 10, 64); err == nil {
				if clamp {
					u = uint64(clampFloat(float64(u)))
				}

				return T(u), nil
			}
			if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
				if clamp {
					i = int64(clampFloat(float64(i)))
				}

				return T(i), nil
			}
			f, err := parseFloat(tok, 64)
			if err != nil {
				return 0, err
			}

			return T(clampFloat(f)), nil
		}
	}
}

// parseFloat saturates out-of-range tokens: overflow gives ±Inf and underflow
// gives ±0 instead of an error.
func parseFloat(tok string, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(tok, bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}

	return f, nil
}

// rangeOf returns the value range of the 8-bit types. Wider types are not clamped.
func rangeOf(t format.ElementType) (float64, float64, bool) {
	switch t { //nolint: exhaustive
	case format.TypeInt8:
		return math.MinInt8, math.MaxInt8, true
	case format.TypeUInt8:
		return 0, math.MaxUint8, true
	default:
		return 0, 0, false
	}
}

// appendText formats every value of data as decimal text. A newline follows
// every perLine values when perLine > 0; otherwise values are separated by a
// single space.
func appendText(bb *pool.ByteBuffer, data array.AnyArray, perLine int) error {
	switch data.Type() {
	case format.TypeInt8:
		v, _ := array.Values[int8](data)
		appendInts(bb, v, perLine)
	case format.TypeUInt8:
		v, _ := array.Values[uint8](data)
		appendUints(bb, v, perLine)
	case format.TypeInt16:
		v, _ := array.Values[int16](data)
		appendInts(bb, v, perLine)
	case format.TypeUInt16:
		v, _ := array.Values[uint16](data)
		appendUints(bb, v, perLine)
	case format.TypeInt32:
		v, _ := array.Values[int32](data)
		appendInts(bb, v, perLine)
	case format.TypeUInt32:
		v, _ := array.Values[uint32](data)
		appendUints(bb, v, perLine)
	case format.TypeInt64:
		v, _ := array.Values[int64](data)
		appendInts(bb, v, perLine)
	case format.TypeUInt64:
		v, _ := array.Values[uint64](data)
		appendUints(bb, v, perLine)
	case format.TypeFloat32:
		v, _ := array.Values[float32](data)
		appendFloats(bb, v, 32, perLine)
	case format.TypeFloat64:
		v, _ := array.Values[float64](data)
		appendFloats(bb, v, 64, perLine)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnknownType, data.Type())
	}

	return nil
}

func appendSeparator(bb *pool.ByteBuffer, i, perLine int) {
	if i == 0 {
		return
	}
	if perLine > 0 && i%perLine == 0 {
		bb.B = append(bb.B, '\n')
		return
	}
	bb.B = append(bb.B, ' ')
}

func appendInts[S int8 | int16 | int32 | int64](bb *pool.ByteBuffer, values []S, perLine int) {
	bb.Grow(len(values) * 4)
	for i, v := range values {
		appendSeparator(bb, i, perLine)
		bb.B = strconv.AppendInt(bb.B, int64(v), 10)
	}
}

func appendUints[S uint8 | uint16 | uint32 | uint64](bb *pool.ByteBuffer, values []S, perLine int) {
	bb.Grow(len(values) * 4)
	for i, v := range values {
		appendSeparator(bb, i, perLine)
		bb.B = strconv.AppendUint(bb.B, uint64(v), 10)
	}
}

func appendFloats[S float32 | float64](bb *pool.ByteBuffer, values []S, bitSize int, perLine int) {
	bb.Grow(len(values) * 8)
	for i, v := range values {
		appendSeparator(bb, i, perLine)
		bb.B = strconv.AppendFloat(bb.B, float64(v), 'g', -1, bitSize)
	}
}
