package array

import (
	"math"
	"testing"
	"unsafe"

	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	require.Equal(t, format.TypeInt8, TypeOf[int8]())
	require.Equal(t, format.TypeUInt8, TypeOf[uint8]())
	require.Equal(t, format.TypeInt16, TypeOf[int16]())
	require.Equal(t, format.TypeUInt16, TypeOf[uint16]())
	require.Equal(t, format.TypeInt32, TypeOf[int32]())
	require.Equal(t, format.TypeUInt32, TypeOf[uint32]())
	require.Equal(t, format.TypeInt64, TypeOf[int64]())
	require.Equal(t, format.TypeUInt64, TypeOf[uint64]())
	require.Equal(t, format.TypeFloat32, TypeOf[float32]())
	require.Equal(t, format.TypeFloat64, TypeOf[float64]())
}

func TestArray_Allocate(t *testing.T) {
	var a Array[uint16]
	require.Equal(t, 0, a.Len())
	require.Equal(t, 0, a.ByteSize())
	require.Nil(t, a.Bytes())

	a.Allocate(5)
	require.Equal(t, 5, a.Len())
	require.Equal(t, 10, a.ByteSize())
	require.Equal(t, format.TypeUInt16, a.Type())

	a.Set(4, 7)
	require.Equal(t, uint16(7), a.At(4))

	a.Allocate(2)
	require.Equal(t, 2, a.Len())
	require.Equal(t, uint16(0), a.At(1))

	a.Release()
	require.Equal(t, 0, a.Len())
}

func TestArray_AtOutOfRange(t *testing.T) {
	a := New[float32](3)
	require.Panics(t, func() { _ = a.At(3) })
	require.Panics(t, func() { a.Set(-1, 1) })
}

func TestArray_CloneAndAlias(t *testing.T) {
	a := Of[int32](1, 2, 3)

	alias := a
	alias.Set(0, 10)
	require.Equal(t, int32(10), a.At(0), "plain assignment shares storage")

	clone := a.Clone()
	clone.Set(1, 20)
	require.Equal(t, int32(2), a.At(1), "clone is independent")
	require.Equal(t, []int32{10, 20, 3}, clone.Values())

	var empty Array[int32]
	require.Equal(t, 0, empty.Clone().Len())
}

func TestArray_Of_Copies(t *testing.T) {
	src := []float64{1, 2}
	a := Of(src...)
	src[0] = 99
	require.Equal(t, 1.0, a.At(0))

	w := Wrap(src)
	src[1] = 42
	require.Equal(t, 42.0, w.At(1))
}

func TestArray_Bytes(t *testing.T) {
	a := Of[uint32](0x01020304, 0xA0B0C0D0)
	b := a.Bytes()
	require.Len(t, b, 8)
	require.Equal(t, unsafe.Pointer(&a.Values()[0]), unsafe.Pointer(&b[0]))

	b[0] ^= 0xFF
	require.NotEqual(t, uint32(0x01020304), a.At(0), "bytes alias the storage")
}

func TestAnyArray_NewAny(t *testing.T) {
	for _, typ := range format.ElementTypes {
		t.Run(typ.String(), func(t *testing.T) {
			a, err := NewAny(typ, 4)
			require.NoError(t, err)
			require.Equal(t, typ, a.Type())
			require.Equal(t, 4, a.Len())
			require.Equal(t, 4*typ.Size(), a.ByteSize())
			require.Len(t, a.Bytes(), 4*typ.Size())
		})
	}

	_, err := NewAny(format.TypeUnknown, 1)
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestAnyArray_Empty(t *testing.T) {
	var a AnyArray
	require.Equal(t, format.TypeUnknown, a.Type())
	require.True(t, a.IsEmpty())
	require.Nil(t, a.Bytes())
	require.True(t, a.Clone().IsEmpty())

	v, ok := Values[float32](a)
	require.True(t, ok)
	require.Nil(t, v)

	typed, ok := As[uint8](a)
	require.True(t, ok)
	require.Equal(t, 0, typed.Len())

	lo, hi := a.MinMax()
	require.True(t, math.IsNaN(lo))
	require.True(t, math.IsNaN(hi))
}

func TestAnyArray_AllocateAs(t *testing.T) {
	var a AnyArray
	AllocateAs[int16](&a, 3)
	require.Equal(t, format.TypeInt16, a.Type())

	AllocateAs[float64](&a, 2)
	require.Equal(t, format.TypeFloat64, a.Type())
	require.Equal(t, 2, a.Len())

	_, ok := Values[int16](a)
	require.False(t, ok, "no implicit cross-type access")

	v, ok := Values[float64](a)
	require.True(t, ok)
	v[1] = 2.5
	require.Equal(t, 2.5, a.Float64At(1))
}

func TestAnyArray_TypedViews(t *testing.T) {
	a := Of[uint8](1, 2, 3).Any()
	require.Equal(t, format.TypeUInt8, a.Type())

	typed, ok := As[uint8](a)
	require.True(t, ok)
	typed.Set(0, 9)
	require.Equal(t, 9.0, a.Float64At(0))

	_, ok = As[int8](a)
	require.False(t, ok)

	clone := a.Clone()
	typed.Set(1, 100)
	require.Equal(t, 2.0, clone.Float64At(1))
}

func TestAnyArray_Convert(t *testing.T) {
	a := WrapAny([]int32{-1, 2, 300})

	f := Convert[float32](a)
	require.Equal(t, []float32{-1, 2, 300}, f.Values())

	u := Convert[int16](a)
	require.Equal(t, []int16{-1, 2, 300}, u.Values())

	require.Equal(t, 0, Convert[float64](AnyArray{}).Len())
}

func TestAnyArray_MinMax(t *testing.T) {
	a := WrapAny([]float64{3, -2.5, 7, 0})
	lo, hi := a.MinMax()
	require.Equal(t, -2.5, lo)
	require.Equal(t, 7.0, hi)
}
