package dataarray

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/compress"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/internal/options"
	"github.com/arloliu/kvsml/internal/pool"
	"github.com/arloliu/kvsml/xmltree"
)

// EncodeConfig holds the optional settings of Encode.
type EncodeConfig struct {
	compression format.CompressionType
	logger      log.Logger
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression compresses external binary payloads. It has no effect on
// inline or ascii arrays. CompressionNone keeps the raw memory dump.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *EncodeConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithLogger sets the logger receiving a debug line per external file written.
func WithLogger(logger log.Logger) EncodeOption {
	return options.NoError(func(cfg *EncodeConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// Encode appends the array element for data to parent.
//
//   - Empty data writes nothing.
//   - Exactly one record (data.Len() == elementsPerRecord) is written as an
//     inline <DataValue> carrying a type attribute, whatever enc says.
//   - Otherwise a <DataArray> is written. External encodings write the values to
//     externalFile and record its base name in the `file` attribute.
func Encode(parent *xmltree.Node, enc format.Encoding, data array.AnyArray, elementsPerRecord int, externalFile string, opts ...EncodeOption) error {
	cfg := &EncodeConfig{compression: format.CompressionNone, logger: log.NewNopLogger()}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	if data.IsEmpty() {
		return nil
	}
	if !data.Type().Valid() {
		return fmt.Errorf("%w: <%s>", errs.ErrUnknownType, parent.Name)
	}
	if elementsPerRecord <= 0 {
		return fmt.Errorf("%w: <%s> elements per record %d", errs.ErrMalformedArray, parent.Name, elementsPerRecord)
	}

	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	if data.Len() == elementsPerRecord {
		if err := appendText(bb, data, 0); err != nil {
			return err
		}
		node := parent.AddChild(TagDataValue)
		node.SetAttr(AttrType, data.Type().String())
		node.SetText(bb.String())

		return nil
	}

	switch enc {
	case format.EncodingInline:
		if err := appendText(bb, data, 0); err != nil {
			return err
		}
		node := parent.AddChild(TagDataArray)
		node.SetAttr(AttrType, data.Type().String())
		node.SetText(bb.String())

		return nil
	case format.EncodingExternalAscii:
		if err := appendText(bb, data, elementsPerRecord); err != nil {
			return err
		}
		bb.B = append(bb.B, '\n')

		return writeExternal(parent, enc, data.Type(), bb.Bytes(), externalFile, format.CompressionNone, cfg.logger)
	case format.EncodingExternalBinary:
		payload := data.Bytes()
		if cfg.compression != format.CompressionNone {
			codec, err := compress.GetCodec(cfg.compression)
			if err != nil {
				return err
			}
			if payload, err = codec.Compress(payload); err != nil {
				return fmt.Errorf("%w: <%s> %s: %w", errs.ErrIO, parent.Name, cfg.compression, err)
			}
		}

		return writeExternal(parent, enc, data.Type(), payload, externalFile, cfg.compression, cfg.logger)
	default:
		return fmt.Errorf("%w: <%s> encoding %d", errs.ErrUnknownFormat, parent.Name, enc)
	}
}

func writeExternal(parent *xmltree.Node, enc format.Encoding, typ format.ElementType, payload []byte,
	externalFile string, compression format.CompressionType, logger log.Logger,
) error {
	if externalFile == "" {
		return fmt.Errorf("%w: <%s> %s array needs an external file", errs.ErrMissingAttribute, parent.Name, enc)
	}

	if err := os.WriteFile(externalFile, payload, 0o644); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	level.Debug(logger).Log("msg", "wrote external array", "tag", parent.Name, "file", externalFile,
		"format", enc, "type", typ, "bytes", len(payload))

	node := parent.AddChild(TagDataArray)
	node.SetAttr(AttrType, typ.String())
	node.SetAttr(AttrFormat, enc.String())
	node.SetAttr(AttrFile, filepath.Base(externalFile))
	if compression != format.CompressionNone {
		node.SetAttr(AttrCompression, compression.String())
	}

	return nil
}
