package dataarray

import (
	"fmt"
	"strings"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/xmltree"
)

// Decode reads nelements values from loc into a new buffer of the target type.
//
// On success the result holds exactly nelements elements. On failure no buffer
// is returned. nelements == 0 yields an empty buffer without touching the file.
func Decode(loc Location, nelements int, target format.ElementType) (array.AnyArray, error) {
	switch target {
	case format.TypeInt8:
		return decodeAny[int8](loc, nelements)
	case format.TypeUInt8:
		return decodeAny[uint8](loc, nelements)
	case format.TypeInt16:
		return decodeAny[int16](loc, nelements)
	case format.TypeUInt16:
		return decodeAny[uint16](loc, nelements)
	case format.TypeInt32:
		return decodeAny[int32](loc, nelements)
	case format.TypeUInt32:
		return decodeAny[uint32](loc, nelements)
	case format.TypeInt64:
		return decodeAny[int64](loc, nelements)
	case format.TypeUInt64:
		return decodeAny[uint64](loc, nelements)
	case format.TypeFloat32:
		return decodeAny[float32](loc, nelements)
	case format.TypeFloat64:
		return decodeAny[float64](loc, nelements)
	default:
		return array.AnyArray{}, fmt.Errorf("%w: decode <%s> into %d", errs.ErrUnknownType, loc.Name, target)
	}
}

func decodeAny[T array.Number](loc Location, nelements int) (array.AnyArray, error) {
	a, err := DecodeAs[T](loc, nelements)
	if err != nil {
		return array.AnyArray{}, err
	}

	return a.Any(), nil
}

// DecodeAs is Decode for a target type known at compile time.
func DecodeAs[T array.Number](loc Location, nelements int) (array.Array[T], error) {
	if nelements < 0 {
		return array.Array[T]{}, fmt.Errorf("%w: <%s> negative element count %d", errs.ErrMalformedArray, loc.Name, nelements)
	}
	if nelements == 0 {
		return array.New[T](0), nil
	}

	out := array.New[T](nelements)

	var err error
	switch loc.Source {
	case SourceInline:
		err = decodeInline(loc, out.Values())
	case SourceExternal:
		err = decodeExternal(loc, out.Values())
	default:
		err = fmt.Errorf("%w: <%s> has no array source", errs.ErrMalformedArray, loc.Name)
	}
	if err != nil {
		return array.Array[T]{}, err
	}

	return out, nil
}

func decodeInline[T array.Number](loc Location, dst []T) error {
	if strings.TrimSpace(loc.Text) == "" {
		return fmt.Errorf("%w: <%s> has no values", errs.ErrMalformedArray, loc.Name)
	}

	return parseText(loc.Name, loc.Text, dst, loc.Type)
}

func decodeExternal[T array.Number](loc Location, dst []T) error {
	switch loc.Format { //nolint: exhaustive
	case format.EncodingExternalAscii:
		data, err := readExternal(loc.Path)
		if err != nil {
			return err
		}

		return parseText(loc.Name, string(data), dst, loc.Type)
	case format.EncodingExternalBinary:
		if !loc.Type.Valid() {
			return fmt.Errorf("%w: <%s file=%q>", errs.ErrUnknownType, loc.Name, loc.Path)
		}

		return decodeBinary(loc, dst)
	default:
		return fmt.Errorf("%w: <%s> format %s", errs.ErrUnknownFormat, loc.Name, loc.Format)
	}
}

// Read locates and decodes the array element node in one step.
func Read(documentPath string, node *xmltree.Node, nelements int, target format.ElementType) (array.AnyArray, error) {
	loc, err := Locate(documentPath, node)
	if err != nil {
		return array.AnyArray{}, err
	}

	return Decode(loc, nelements, target)
}
