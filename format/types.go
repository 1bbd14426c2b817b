package format

import (
	"fmt"

	"github.com/arloliu/kvsml/errs"
)

type (
	ElementType     uint8
	Encoding        uint8
	CompressionType uint8
)

const (
	TypeUnknown ElementType = 0x0 // TypeUnknown is the zero value and never valid in a buffer.
	TypeInt8    ElementType = 0x1 // TypeInt8 is a signed 8-bit integer ("char").
	TypeUInt8   ElementType = 0x2 // TypeUInt8 is an unsigned 8-bit integer ("uchar").
	TypeInt16   ElementType = 0x3 // TypeInt16 is a signed 16-bit integer ("short").
	TypeUInt16  ElementType = 0x4 // TypeUInt16 is an unsigned 16-bit integer ("ushort").
	TypeInt32   ElementType = 0x5 // TypeInt32 is a signed 32-bit integer ("int").
	TypeUInt32  ElementType = 0x6 // TypeUInt32 is an unsigned 32-bit integer ("uint").
	TypeInt64   ElementType = 0x7 // TypeInt64 is a signed 64-bit integer ("long").
	TypeUInt64  ElementType = 0x8 // TypeUInt64 is an unsigned 64-bit integer ("ulong").
	TypeFloat32 ElementType = 0x9 // TypeFloat32 is an IEEE 754 single precision float ("float").
	TypeFloat64 ElementType = 0xA // TypeFloat64 is an IEEE 754 double precision float ("double").

	EncodingInline         Encoding = 0x1 // EncodingInline stores values as text inside the element.
	EncodingExternalAscii  Encoding = 0x2 // EncodingExternalAscii stores values as decimal text in a sibling file.
	EncodingExternalBinary Encoding = 0x3 // EncodingExternalBinary stores values as a raw memory dump in a sibling file.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// ElementTypes lists every valid element type in table order.
var ElementTypes = []ElementType{
	TypeInt8, TypeUInt8, TypeInt16, TypeUInt16, TypeInt32,
	TypeUInt32, TypeInt64, TypeUInt64, TypeFloat32, TypeFloat64,
}

var elementTypeNames = [...]string{
	TypeUnknown: "unknown",
	TypeInt8:    "char",
	TypeUInt8:   "uchar",
	TypeInt16:   "short",
	TypeUInt16:  "ushort",
	TypeInt32:   "int",
	TypeUInt32:  "uint",
	TypeInt64:   "long",
	TypeUInt64:  "ulong",
	TypeFloat32: "float",
	TypeFloat64: "double",
}

var elementTypeSizes = [...]int{
	TypeInt8:    1,
	TypeUInt8:   1,
	TypeInt16:   2,
	TypeUInt16:  2,
	TypeInt32:   4,
	TypeUInt32:  4,
	TypeInt64:   8,
	TypeUInt64:  8,
	TypeFloat32: 4,
	TypeFloat64: 8,
}

// String returns the KVSML type name written to the `type` attribute.
// Types outside the closed set map to "unknown".
func (t ElementType) String() string {
	if !t.Valid() {
		return elementTypeNames[TypeUnknown]
	}

	return elementTypeNames[t]
}

// Valid reports whether t is one of the ten element types.
func (t ElementType) Valid() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

// Size returns the width of one element in bytes, or 0 for an invalid type.
func (t ElementType) Size() int {
	if !t.Valid() {
		return 0
	}

	return elementTypeSizes[t]
}

// IsFloat reports whether t is a floating point type.
func (t ElementType) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// IsSigned reports whether t can hold negative values.
func (t ElementType) IsSigned() bool {
	switch t { //nolint: exhaustive
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
		return true
	default:
		return false
	}
}

// ParseElementType maps a KVSML type name back to its ElementType.
func ParseElementType(name string) (ElementType, error) {
	for _, t := range ElementTypes {
		if elementTypeNames[t] == name {
			return t, nil
		}
	}

	return TypeUnknown, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
}

func (e Encoding) String() string {
	switch e {
	case EncodingInline:
		return "inline"
	case EncodingExternalAscii:
		return "ascii"
	case EncodingExternalBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// IsExternal reports whether the encoding writes a sibling data file.
func (e Encoding) IsExternal() bool {
	return e == EncodingExternalAscii || e == EncodingExternalBinary
}

// ParseEncoding accepts "inline", "ascii" and "binary".
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "inline":
		return EncodingInline, nil
	case "ascii":
		return EncodingExternalAscii, nil
	case "binary":
		return EncodingExternalBinary, nil
	default:
		return 0, fmt.Errorf("%w: encoding %q", errs.ErrUnknownFormat, name)
	}
}

// ParseDataFormat maps the `format` attribute of an external array to its encoding.
func ParseDataFormat(value string) (Encoding, error) {
	switch value {
	case "ascii":
		return EncodingExternalAscii, nil
	case "binary":
		return EncodingExternalBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, value)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// ParseCompressionType accepts the names produced by CompressionType.String.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name)
	}
}
