package format

import (
	"testing"

	"github.com/arloliu/kvsml/errs"
	"github.com/stretchr/testify/require"
)

func TestElementType_String(t *testing.T) {
	tests := []struct {
		typ  ElementType
		name string
		size int
	}{
		{TypeInt8, "char", 1},
		{TypeUInt8, "uchar", 1},
		{TypeInt16, "short", 2},
		{TypeUInt16, "ushort", 2},
		{TypeInt32, "int", 4},
		{TypeUInt32, "uint", 4},
		{TypeInt64, "long", 8},
		{TypeUInt64, "ulong", 8},
		{TypeFloat32, "float", 4},
		{TypeFloat64, "double", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.typ.String())
			require.Equal(t, tt.size, tt.typ.Size())
			require.True(t, tt.typ.Valid())

			parsed, err := ParseElementType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.typ, parsed)
		})
	}

	require.Len(t, ElementTypes, len(tests))
}

func TestElementType_Unknown(t *testing.T) {
	require.Equal(t, "unknown", TypeUnknown.String())
	require.Equal(t, "unknown", ElementType(0x42).String())
	require.Zero(t, TypeUnknown.Size())
	require.False(t, ElementType(0x42).Valid())

	_, err := ParseElementType("int128")
	require.ErrorIs(t, err, errs.ErrUnknownType)

	_, err = ParseElementType("unknown")
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestElementType_Classes(t *testing.T) {
	require.True(t, TypeFloat32.IsFloat())
	require.True(t, TypeFloat64.IsFloat())
	require.False(t, TypeInt32.IsFloat())

	require.True(t, TypeInt8.IsSigned())
	require.True(t, TypeFloat64.IsSigned())
	require.False(t, TypeUInt8.IsSigned())
	require.False(t, TypeUInt64.IsSigned())
}

func TestEncoding(t *testing.T) {
	for _, enc := range []Encoding{EncodingInline, EncodingExternalAscii, EncodingExternalBinary} {
		parsed, err := ParseEncoding(enc.String())
		require.NoError(t, err)
		require.Equal(t, enc, parsed)
	}

	require.False(t, EncodingInline.IsExternal())
	require.True(t, EncodingExternalAscii.IsExternal())
	require.True(t, EncodingExternalBinary.IsExternal())

	_, err := ParseEncoding("hex")
	require.ErrorIs(t, err, errs.ErrUnknownFormat)

	enc, err := ParseDataFormat("binary")
	require.NoError(t, err)
	require.Equal(t, EncodingExternalBinary, enc)

	_, err = ParseDataFormat("inline")
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestCompressionType(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		parsed, err := ParseCompressionType(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	parsed, err := ParseCompressionType("")
	require.NoError(t, err)
	require.Equal(t, CompressionNone, parsed)

	require.Equal(t, "unknown", CompressionType(0x7F).String())

	_, err = ParseCompressionType("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}
