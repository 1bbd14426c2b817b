package dataarray

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/compress"
	"github.com/arloliu/kvsml/endian"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
)

func openExternal(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return f, nil
}

func readExternal(path string) ([]byte, error) {
	f, err := openExternal(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrIO, path, err)
	}

	return data, nil
}

// readExact fills buf from the head of the file at path.
func readExact(path string, buf []byte) error {
	f, err := openExternal(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if n, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("%w: %s: read %d of %d bytes: %w", errs.ErrIO, path, n, len(buf), err)
	}

	return nil
}

// readPayload returns the first size bytes of the decoded binary payload.
func readPayload(loc Location, size int) ([]byte, error) {
	if loc.Compression == format.CompressionNone {
		buf := make([]byte, size)
		if err := readExact(loc.Path, buf); err != nil {
			return nil, err
		}

		return buf, nil
	}

	codec, err := compress.GetCodec(loc.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := readExternal(loc.Path)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s payload: %w", errs.ErrIO, loc.Path, loc.Compression, err)
	}
	if len(payload) < size {
		return nil, fmt.Errorf("%w: %s: read %d of %d bytes", errs.ErrIO, loc.Path, len(payload), size)
	}

	return payload[:size], nil
}

// decodeBinary fills dst from an external binary file whose elements are of
// the declared type. Equal types are copied as raw memory; otherwise every
// element is cast to T.
func decodeBinary[T array.Number](loc Location, dst []T) error {
	declared := loc.Type
	target := array.TypeOf[T]()
	size := len(dst) * declared.Size()

	if declared == target && loc.Compression == format.CompressionNone {
		return readExact(loc.Path, array.Wrap(dst).Bytes())
	}

	payload, err := readPayload(loc, size)
	if err != nil {
		return err
	}

	if declared == target {
		copy(array.Wrap(dst).Bytes(), payload)
		return nil
	}

	castBinary(dst, payload, declared, endian.NativeEngine())

	return nil
}

// castBinary converts len(dst) elements of type from in src into dst.
func castBinary[T array.Number](dst []T, src []byte, from format.ElementType, engine endian.EndianEngine) {
	switch from { //nolint: exhaustive
	case format.TypeInt8:
		for i := range dst {
			dst[i] = T(int8(src[i]))
		}
	case format.TypeUInt8:
		for i := range dst {
			dst[i] = T(src[i])
		}
	case format.TypeInt16:
		for i := range dst {
			dst[i] = T(int16(engine.Uint16(src[i*2:])))
		}
	case format.TypeUInt16:
		for i := range dst {
			dst[i] = T(engine.Uint16(src[i*2:]))
		}
	case format.TypeInt32:
		for i := range dst {
			dst[i] = T(int32(engine.Uint32(src[i*4:])))
		}
	case format.TypeUInt32:
		for i := range dst {
			dst[i] = T(engine.Uint32(src[i*4:]))
		}
	case format.TypeInt64:
		for i := range dst {
			dst[i] = T(int64(engine.Uint64(src[i*8:])))
		}
	case format.TypeUInt64:
		for i := range dst {
			dst[i] = T(engine.Uint64(src[i*8:]))
		}
	case format.TypeFloat32:
		for i := range dst {
			dst[i] = T(math.Float32frombits(engine.Uint32(src[i*4:])))
		}
	case format.TypeFloat64:
		for i := range dst {
			dst[i] = T(math.Float64frombits(engine.Uint64(src[i*8:])))
		}
	}
}
