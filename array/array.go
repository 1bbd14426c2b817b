// Package array provides the typed buffers exchanged between the KVSML codec
// and the object model.
//
// Array[T] holds elements of a type known at compile time. AnyArray holds
// elements whose type is only known at run time, e.g. the field values of a
// volume whose element type comes from the file's `type` attribute. An AnyArray
// never converts implicitly: callers read it through Values[T] or As[T] after
// checking Type().
//
// Both buffers alias their storage on plain assignment. Use Clone for an
// independent copy.
package array

import (
	"unsafe"

	"github.com/arloliu/kvsml/format"
)

// Number is the closed set of element types a buffer can hold.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// TypeOf returns the element type tag for T.
func TypeOf[T Number]() format.ElementType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return format.TypeInt8
	case uint8:
		return format.TypeUInt8
	case int16:
		return format.TypeInt16
	case uint16:
		return format.TypeUInt16
	case int32:
		return format.TypeInt32
	case uint32:
		return format.TypeUInt32
	case int64:
		return format.TypeInt64
	case uint64:
		return format.TypeUInt64
	case float32:
		return format.TypeFloat32
	case float64:
		return format.TypeFloat64
	default:
		return format.TypeUnknown
	}
}

// Array is a one-dimensional buffer of a fixed element type.
type Array[T Number] struct {
	data []T
}

// New returns an Array with n zeroed elements.
func New[T Number](n int) Array[T] {
	return Array[T]{data: make([]T, n)}
}

// Wrap returns an Array backed by values without copying.
func Wrap[T Number](values []T) Array[T] {
	return Array[T]{data: values}
}

// Of returns an Array holding a copy of values.
func Of[T Number](values ...T) Array[T] {
	data := make([]T, len(values))
	copy(data, values)

	return Array[T]{data: data}
}

// Allocate replaces the storage with room for n elements.
// Previous contents are discarded.
func (a *Array[T]) Allocate(n int) {
	a.data = make([]T, n)
}

// Release drops the storage.
func (a *Array[T]) Release() {
	a.data = nil
}

// Len returns the number of elements, 0 if never allocated.
func (a Array[T]) Len() int {
	return len(a.data)
}

// Type returns the element type tag.
func (a Array[T]) Type() format.ElementType {
	return TypeOf[T]()
}

// ByteSize returns Len() times the element width.
func (a Array[T]) ByteSize() int {
	return len(a.data) * TypeOf[T]().Size()
}

// At returns element i.
func (a Array[T]) At(i int) T {
	return a.data[i]
}

// Set assigns element i. The write is visible through every alias of a.
func (a Array[T]) Set(i int, v T) {
	a.data[i] = v
}

// Values returns the backing slice.
func (a Array[T]) Values() []T {
	return a.data
}

// Clone returns an Array with an independent copy of the storage.
func (a Array[T]) Clone() Array[T] {
	if a.data == nil {
		return Array[T]{}
	}

	return Of(a.data...)
}

// Bytes returns the storage as native-order bytes without copying.
func (a Array[T]) Bytes() []byte {
	return sliceBytes(a.data)
}

// Any returns a dynamically typed view sharing a's storage.
func (a Array[T]) Any() AnyArray {
	if a.data == nil {
		return AnyArray{}
	}

	return AnyArray{s: slice[T](a.data)}
}

// sliceBytes reinterprets a numeric slice as its raw memory.
func sliceBytes[T Number](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(data[0]))

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*size)
}
