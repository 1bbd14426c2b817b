package array

import (
	"fmt"
	"math"

	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
)

// storage is implemented by slice[T] for every Number type. It lets AnyArray
// dispatch once per call instead of switching on the type tag per element.
type storage interface {
	elementType() format.ElementType
	length() int
	bytes() []byte
	clone() storage
	float64At(i int) float64
}

type slice[T Number] []T

func (s slice[T]) elementType() format.ElementType { return TypeOf[T]() }
func (s slice[T]) length() int                     { return len(s) }
func (s slice[T]) bytes() []byte                   { return sliceBytes([]T(s)) }
func (s slice[T]) float64At(i int) float64         { return float64(s[i]) }

func (s slice[T]) clone() storage {
	c := make(slice[T], len(s))
	copy(c, s)

	return c
}

// AnyArray is a buffer whose element type is resolved at run time.
// The zero value is an empty buffer of TypeUnknown.
type AnyArray struct {
	s storage
}

// NewAny allocates n zeroed elements of typ.
func NewAny(typ format.ElementType, n int) (AnyArray, error) {
	var a AnyArray
	switch typ {
	case format.TypeInt8:
		AllocateAs[int8](&a, n)
	case format.TypeUInt8:
		AllocateAs[uint8](&a, n)
	case format.TypeInt16:
		AllocateAs[int16](&a, n)
	case format.TypeUInt16:
		AllocateAs[uint16](&a, n)
	case format.TypeInt32:
		AllocateAs[int32](&a, n)
	case format.TypeUInt32:
		AllocateAs[uint32](&a, n)
	case format.TypeInt64:
		AllocateAs[int64](&a, n)
	case format.TypeUInt64:
		AllocateAs[uint64](&a, n)
	case format.TypeFloat32:
		AllocateAs[float32](&a, n)
	case format.TypeFloat64:
		AllocateAs[float64](&a, n)
	default:
		return AnyArray{}, fmt.Errorf("%w: %d", errs.ErrUnknownType, typ)
	}

	return a, nil
}

// WrapAny returns an AnyArray backed by values without copying.
func WrapAny[T Number](values []T) AnyArray {
	return AnyArray{s: slice[T](values)}
}

// AllocateAs re-types a to T and allocates n elements.
func AllocateAs[T Number](a *AnyArray, n int) {
	a.s = make(slice[T], n)
}

// Values returns the typed backing slice if a holds elements of type T.
// An empty AnyArray yields a nil slice of any type.
func Values[T Number](a AnyArray) ([]T, bool) {
	if a.s == nil {
		return nil, true
	}
	s, ok := a.s.(slice[T])

	return s, ok
}

// As returns a typed view sharing a's storage if a holds elements of type T.
// An empty AnyArray converts to an empty Array of any type.
func As[T Number](a AnyArray) (Array[T], bool) {
	if a.s == nil {
		return Array[T]{}, true
	}
	s, ok := a.s.(slice[T])
	if !ok {
		return Array[T]{}, false
	}

	return Array[T]{data: s}, true
}

// Convert returns a copy of a cast element-wise to T.
func Convert[T Number](a AnyArray) Array[T] {
	switch s := a.s.(type) {
	case nil:
		return Array[T]{}
	case slice[int8]:
		return convertSlice[T](s)
	case slice[uint8]:
		return convertSlice[T](s)
	case slice[int16]:
		return convertSlice[T](s)
	case slice[uint16]:
		return convertSlice[T](s)
	case slice[int32]:
		return convertSlice[T](s)
	case slice[uint32]:
		return convertSlice[T](s)
	case slice[int64]:
		return convertSlice[T](s)
	case slice[uint64]:
		return convertSlice[T](s)
	case slice[float32]:
		return convertSlice[T](s)
	case slice[float64]:
		return convertSlice[T](s)
	default:
		return Array[T]{}
	}
}

func convertSlice[T, S Number](src slice[S]) Array[T] {
	dst := make([]T, len(src))
	for i, v := range src {
		dst[i] = T(v)
	}

	return Array[T]{data: dst}
}

// Type returns the current element type, TypeUnknown when empty.
func (a AnyArray) Type() format.ElementType {
	if a.s == nil {
		return format.TypeUnknown
	}

	return a.s.elementType()
}

// Len returns the number of elements.
func (a AnyArray) Len() int {
	if a.s == nil {
		return 0
	}

	return a.s.length()
}

// ByteSize returns Len() times the element width.
func (a AnyArray) ByteSize() int {
	return a.Len() * a.Type().Size()
}

// IsEmpty reports whether a holds no elements.
func (a AnyArray) IsEmpty() bool {
	return a.Len() == 0
}

// Bytes returns the storage as native-order bytes without copying.
func (a AnyArray) Bytes() []byte {
	if a.s == nil {
		return nil
	}

	return a.s.bytes()
}

// Clone returns an independent deep copy.
func (a AnyArray) Clone() AnyArray {
	if a.s == nil {
		return AnyArray{}
	}

	return AnyArray{s: a.s.clone()}
}

// Float64At returns element i widened to float64. Intended for inspection;
// 64-bit integers beyond 2^53 lose precision.
func (a AnyArray) Float64At(i int) float64 {
	return a.s.float64At(i)
}

// MinMax returns the smallest and largest element as float64.
// It returns NaN for both when a is empty.
func (a AnyArray) MinMax() (float64, float64) {
	n := a.Len()
	if n == 0 {
		return math.NaN(), math.NaN()
	}

	lo, hi := a.s.float64At(0), a.s.float64At(0)
	for i := 1; i < n; i++ {
		v := a.s.float64At(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}
